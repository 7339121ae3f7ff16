package manifest

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"
)

// Header names.
const (
	ColFilename = "filename"
	ColStart    = "START_TIME"
	ColEnd      = "END_TIME"
	ColText     = "TEXT"
	ColWidth    = "VIDEO_WIDTH"
	ColHeight   = "VIDEO_HEIGHT"
	ColOutput   = "FILENAME_OUTPUT"
)

// RequiredColumns lists the headers every manifest must carry, in report order.
var RequiredColumns = []string{ColFilename, ColStart, ColEnd, ColText}

const maxLineBytes = 1 << 20

// Columns maps header names to zero-based field indices. Optional columns
// that are absent hold -1.
type Columns struct {
	Filename int
	Start    int
	End      int
	Text     int
	Width    int
	Height   int
	Output   int
}

// RawJob is one manifest row as written: values are trimmed but otherwise
// untouched. Line is the 1-based line number in the file (the header is 1).
type RawJob struct {
	Line     int
	Filename string
	Start    string
	End      string
	Text     string
	Width    string
	Height   string
	Output   string
}

// Manifest is an opened manifest positioned after its header.
type Manifest struct {
	closer  io.Closer
	sc      *bufio.Scanner
	cols    Columns
	headers []string
	line    int
	started bool
	err     error
}

// Open opens the manifest at path and resolves its header.
func Open(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &NotFoundError{Path: path, Err: err}
	}
	m, err := New(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	m.closer = f
	return m, nil
}

// New reads the header line from r and resolves the column indices.
func New(r io.Reader) (*Manifest, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	m := &Manifest{sc: sc}
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read manifest header: %w", err)
		}
		return nil, &SchemaError{Missing: RequiredColumns}
	}
	m.line = 1

	header := strings.TrimPrefix(sc.Text(), "\ufeff")
	m.headers = splitRow(header)
	cols, err := ResolveColumns(m.headers)
	if err != nil {
		return nil, err
	}
	m.cols = cols
	return m, nil
}

// ResolveColumns maps header names to indices. When a name repeats, the
// first occurrence wins.
func ResolveColumns(headers []string) (Columns, error) {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		if _, seen := idx[h]; !seen {
			idx[h] = i
		}
	}
	lookup := func(name string) int {
		if i, ok := idx[name]; ok {
			return i
		}
		return -1
	}

	cols := Columns{
		Filename: lookup(ColFilename),
		Start:    lookup(ColStart),
		End:      lookup(ColEnd),
		Text:     lookup(ColText),
		Width:    lookup(ColWidth),
		Height:   lookup(ColHeight),
		Output:   lookup(ColOutput),
	}

	var missing []string
	for _, name := range RequiredColumns {
		if lookup(name) < 0 {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		var found []string
		for _, h := range headers {
			if h != "" {
				found = append(found, h)
			}
		}
		return Columns{}, &SchemaError{Missing: missing, Found: found}
	}
	return cols, nil
}

// Columns returns the resolved column indices.
func (m *Manifest) Columns() Columns { return m.cols }

// Headers returns the trimmed header names as they appeared.
func (m *Manifest) Headers() []string { return m.headers }

// Jobs streams the data rows. Blank lines are skipped. A row missing a
// required value yields a *RowValidationError and iteration continues; a
// read failure yields the error and stops. The sequence can be consumed
// once: later calls yield nothing.
func (m *Manifest) Jobs() iter.Seq2[RawJob, error] {
	return func(yield func(RawJob, error) bool) {
		if m.started {
			return
		}
		m.started = true

		for m.sc.Scan() {
			m.line++
			text := strings.TrimRight(m.sc.Text(), "\r")
			if strings.TrimSpace(text) == "" {
				continue
			}

			job := m.extract(splitRow(text))
			if err := validate(job); err != nil {
				if !yield(RawJob{}, err) {
					return
				}
				continue
			}
			if !yield(job, nil) {
				return
			}
		}
		if err := m.sc.Err(); err != nil {
			m.err = fmt.Errorf("read manifest line %d: %w", m.line+1, err)
			yield(RawJob{}, m.err)
		}
	}
}

// Err returns the read error that ended iteration, if any.
func (m *Manifest) Err() error { return m.err }

// Close releases the underlying file when the manifest came from [Open].
func (m *Manifest) Close() error {
	if m.closer == nil {
		return nil
	}
	err := m.closer.Close()
	m.closer = nil
	return err
}

func (m *Manifest) extract(fields []string) RawJob {
	at := func(i int) string {
		if i < 0 || i >= len(fields) {
			return ""
		}
		return fields[i]
	}
	return RawJob{
		Line:     m.line,
		Filename: at(m.cols.Filename),
		Start:    at(m.cols.Start),
		End:      at(m.cols.End),
		Text:     at(m.cols.Text),
		Width:    at(m.cols.Width),
		Height:   at(m.cols.Height),
		Output:   at(m.cols.Output),
	}
}

func validate(job RawJob) error {
	var empty []string
	for _, f := range []struct {
		name, value string
	}{
		{ColFilename, job.Filename},
		{ColStart, job.Start},
		{ColEnd, job.End},
		{ColText, job.Text},
	} {
		if f.value == "" {
			empty = append(empty, f.name)
		}
	}
	if len(empty) > 0 {
		return &RowValidationError{Line: job.Line, Empty: empty}
	}
	return nil
}

// splitRow strips a trailing carriage return, splits on every comma and
// trims each field.
func splitRow(line string) []string {
	fields := strings.Split(strings.TrimRight(line, "\r"), ",")
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}
