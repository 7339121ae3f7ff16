package manifest

import (
	"fmt"
	"strings"
)

// NotFoundError reports a manifest path that cannot be opened.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("manifest not found: %s: %v", e.Path, e.Err)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// SchemaError reports required columns missing from the header. Found lists
// the header names that were present, for diagnostics.
type SchemaError struct {
	Missing []string
	Found   []string
}

func (e *SchemaError) Error() string {
	found := "none"
	if len(e.Found) > 0 {
		found = strings.Join(e.Found, ", ")
	}
	return fmt.Sprintf("manifest missing required columns: %s (found: %s)",
		strings.Join(e.Missing, ", "), found)
}

// RowValidationError reports a data row with empty required values.
type RowValidationError struct {
	Line  int
	Empty []string
}

func (e *RowValidationError) Error() string {
	return fmt.Sprintf("line %d: empty required fields: %s", e.Line, strings.Join(e.Empty, ", "))
}
