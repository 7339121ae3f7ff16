package display

import (
	"fmt"
	"io"

	"github.com/backmassage/captioner/internal/term"
)

// PrintBanner writes the ASCII art banner and version; magenta when colors
// are enabled.
func PrintBanner(w io.Writer, version string) {
	fmt.Fprint(w, term.Magenta)
	fmt.Fprint(w, `  ____            _   _
 / ___|__ _ _ __ | |_(_) ___  _ __   ___ _ __
| |   / _`+"`"+` | '_ \| __| |/ _ \| '_ \ / _ \ '__|
| |__| (_| | |_) | |_| | (_) | | | |  __/ |
 \____\__,_| .__/ \__|_|\___/|_| |_|\___|_|
           |_|
`)
	fmt.Fprint(w, term.NC)
	if version != "" {
		fmt.Fprintf(w, "%sv%s%s\n", term.Dim, version, term.NC)
	}
}
