// Package term provides ANSI color state, terminal detection and the
// outcome glyphs used on per-job status lines.
//
// Colors are package-level variables because logging and display both
// format with them. [Configure] sets them once during startup; when colors
// are disabled the variables are empty strings, making concatenation a no-op.
package term

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/backmassage/captioner/internal/config"
)

// ANSI color codes. Empty when colors are disabled.
var (
	Red     = ""
	Green   = ""
	Yellow  = ""
	Blue    = ""
	Cyan    = ""
	Magenta = ""
	Dim     = ""
	NC      = "" // Reset sequence.
)

// Outcome glyphs for quiet-mode job lines.
const (
	GlyphOK   = "✓"
	GlyphFail = "✗"
	GlyphSkip = "–"
)

// Configure resolves the color mode and sets the package-level ANSI
// variables. Call once during startup (from [logging.NewLogger]).
func Configure(mode config.ColorMode) {
	if resolve(mode) {
		Red = "\033[1;91m"
		Green = "\033[1;92m"
		Yellow = "\033[1;93m"
		Blue = "\033[1;94m"
		Cyan = "\033[1;96m"
		Magenta = "\033[1;95m"
		Dim = "\033[2m"
		NC = "\033[0m"
	} else {
		Red, Green, Yellow, Blue, Cyan, Magenta, Dim, NC = "", "", "", "", "", "", "", ""
	}
}

// Enabled reports whether ANSI colors are currently active.
func Enabled() bool { return NC != "" }

// OK, Fail and Skip return the outcome glyph wrapped in its color.
func OK() string   { return Green + GlyphOK + NC }
func Fail() string { return Red + GlyphFail + NC }
func Skip() string { return Yellow + GlyphSkip + NC }

// resolve reports whether colors should be on. Auto mode requires a TTY on
// stdout, no NO_COLOR (https://no-color.org) and a TERM other than "dumb".
func resolve(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" || strings.EqualFold(os.Getenv("TERM"), "dumb") {
		return false
	}
	return IsTerminal(os.Stdout)
}

// IsTerminal reports whether f is attached to a terminal, including
// Cygwin/MSYS pseudo-terminals.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
