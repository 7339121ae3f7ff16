package display

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/backmassage/captioner/internal/term"
)

// FormatBytes returns a human-readable size (B, KiB, MiB, GiB, TiB, PiB).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	if exp >= len(suffixes) {
		exp = len(suffixes) - 1
		div = 1
		for i := 0; i <= exp; i++ {
			div *= unit
		}
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}

// FormatElapsed renders a wall-clock duration: "850ms", "12.3s", "4m 05s"
// or "1h 02m 09s".
func FormatElapsed(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Hour:
		d = d.Round(time.Second)
		return fmt.Sprintf("%dm %02ds", int(d/time.Minute), int(d%time.Minute/time.Second))
	default:
		d = d.Round(time.Second)
		return fmt.Sprintf("%dh %02dm %02ds",
			int(d/time.Hour), int(d%time.Hour/time.Minute), int(d%time.Minute/time.Second))
	}
}

// Outcome is the result shown on a quiet-mode job line.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeFail
	OutcomeSkip
)

func (o Outcome) glyph() string {
	switch o {
	case OutcomeFail:
		return term.Fail()
	case OutcomeSkip:
		return term.Skip()
	}
	return term.OK()
}

// JobLine formats the one-line status for a job:
//
//	[2/5] ✓ clip1.mp4 → clip1_text.mp4
//
// note, when set, is appended in parentheses. total <= 0 omits the counter
// denominator for streamed manifests.
func JobLine(o Outcome, index, total int, input, output, note string) string {
	counter := fmt.Sprintf("[%d]", index)
	if total > 0 {
		counter = fmt.Sprintf("[%d/%d]", index, total)
	}
	line := fmt.Sprintf("%s %s %s", counter, o.glyph(), filepath.Base(input))
	if output != "" {
		line += " → " + filepath.Base(output)
	}
	if note != "" {
		line += " " + term.Dim + "(" + note + ")" + term.NC
	}
	return line
}
