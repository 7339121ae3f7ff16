package pipeline

import "fmt"

// TimingWindowError reports a job whose end time does not exceed its start
// time, or whose start is negative.
type TimingWindowError struct {
	Line       int
	Start, End float64
}

func (e *TimingWindowError) Error() string {
	if e.Start < 0 {
		return fmt.Sprintf("start time %g is negative", e.Start)
	}
	return fmt.Sprintf("end time %g must exceed start time %g", e.End, e.Start)
}

// NoFilesFoundError reports an input directory with no .mp4 or .mov files.
type NoFilesFoundError struct {
	Dir string
}

func (e *NoFilesFoundError) Error() string {
	return fmt.Sprintf("no .mp4 or .mov files found in %s", e.Dir)
}
