package pipeline

import (
	"time"

	"github.com/backmassage/captioner/internal/config"
	"github.com/backmassage/captioner/internal/display"
)

// Summary tracks the outcome of a run. Total is 0 for manifests, which are
// streamed and not counted up front.
type Summary struct {
	RunID            string
	Mode             config.Mode
	DryRun           bool
	Total            int
	Current          int
	Succeeded        int
	Failed           int
	Skipped          int
	TotalOutputBytes int64
	Started          time.Time
	Finished         time.Time
}

// Elapsed returns the wall-clock duration of the run.
func (s *Summary) Elapsed() time.Duration {
	if s.Finished.IsZero() {
		return time.Since(s.Started)
	}
	return s.Finished.Sub(s.Started)
}

// View converts the summary for display.
func (s *Summary) View() display.SummaryView {
	return display.SummaryView{
		RunID:     s.RunID,
		Mode:      string(s.Mode),
		DryRun:    s.DryRun,
		Succeeded: s.Succeeded,
		Failed:    s.Failed,
		Skipped:   s.Skipped,
		Elapsed:   display.FormatElapsed(s.Elapsed()),
	}
}
