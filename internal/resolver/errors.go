package resolver

import "fmt"

// InputNotFoundError reports a job whose input file does not exist.
type InputNotFoundError struct {
	Line int
	Path string
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("input not found: %s", e.Path)
}

// TimingError reports a start or end time that is not a number.
type TimingError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *TimingError) Error() string {
	return fmt.Sprintf("invalid %s %q: not a number of seconds", e.Field, e.Value)
}

func (e *TimingError) Unwrap() error { return e.Err }

// OutputPathError reports an output path that would land outside the
// output directory, e.g. a FILENAME_OUTPUT of "../x.mp4".
type OutputPathError struct {
	Path      string
	OutputDir string
}

func (e *OutputPathError) Error() string {
	return fmt.Sprintf("output %s escapes output directory %s", e.Path, e.OutputDir)
}
