package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/backmassage/captioner/internal/term"
)

// SummaryView is what the end-of-run box shows.
type SummaryView struct {
	RunID     string
	Mode      string
	DryRun    bool
	Succeeded int
	Failed    int
	Skipped   int
	Elapsed   string
}

// RenderSummary draws the end-of-run summary in a rounded box.
func RenderSummary(v SummaryView) string {
	title := "Summary"
	if v.DryRun {
		title = "Summary (dry run)"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s%s%s\n", term.Cyan, title, term.NC)
	fmt.Fprintf(&b, "Run:       %s\n", v.RunID)
	if v.Mode != "" {
		fmt.Fprintf(&b, "Mode:      %s\n", v.Mode)
	}
	fmt.Fprintf(&b, "Succeeded: %s%d%s\n", term.Green, v.Succeeded, term.NC)
	fmt.Fprintf(&b, "Failed:    %s%d%s\n", failColor(v.Failed), v.Failed, term.NC)
	fmt.Fprintf(&b, "Skipped:   %d\n", v.Skipped)
	fmt.Fprintf(&b, "Elapsed:   %s", v.Elapsed)

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if term.Enabled() {
		color := lipgloss.Color("10")
		if v.Failed > 0 {
			color = lipgloss.Color("9")
		}
		style = style.BorderForeground(color)
	}
	return style.Render(b.String())
}

func failColor(n int) string {
	if n > 0 {
		return term.Red
	}
	return ""
}
