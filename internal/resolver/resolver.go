// Package resolver turns a raw caption job into a fully resolved one:
// input path, output path, decoded text, frame dimensions and timing.
package resolver

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/backmassage/captioner/internal/manifest"
	"github.com/backmassage/captioner/internal/naming"
)

// DimSource records where a job's frame dimensions came from.
type DimSource string

const (
	DimFromManifest DimSource = "manifest"
	DimFromProbe    DimSource = "probe"
	DimFromDefault  DimSource = "default"
)

// ProbeFunc returns the display dimensions of the video at path. ok is
// false when they cannot be determined.
type ProbeFunc func(ctx context.Context, path string) (width, height int, ok bool)

// Options carries the run-wide inputs to [Resolve].
type Options struct {
	BasePath      string // Joined before each filename when non-empty.
	OutputDir     string
	Suffix        string
	DefaultWidth  int
	DefaultHeight int
	Probe         ProbeFunc // Optional; nil skips probing.
}

// Job is a caption job ready to build and render.
type Job struct {
	Line      int // Manifest line, 0 outside manifest mode.
	Input     string
	Output    string
	Text      string
	Width     int
	Height    int
	DimSource DimSource
	Start     float64
	End       float64
}

// Resolve resolves raw against opts. The input must exist; that is checked
// before probing. The caller validates that End exceeds Start.
func Resolve(ctx context.Context, raw manifest.RawJob, opts Options) (Job, error) {
	job := Job{Line: raw.Line, Text: DecodeText(raw.Text)}

	var err error
	if job.Start, err = parseSeconds(raw, manifest.ColStart, raw.Start); err != nil {
		return Job{}, err
	}
	if job.End, err = parseSeconds(raw, manifest.ColEnd, raw.End); err != nil {
		return Job{}, err
	}

	job.Input = InputPath(opts.BasePath, raw.Filename)
	if _, err := os.Stat(job.Input); err != nil {
		return Job{}, &InputNotFoundError{Line: raw.Line, Path: job.Input}
	}

	job.Output = naming.OutputPath(job.Input, opts.OutputDir, opts.Suffix, raw.Output)
	if !naming.Within(opts.OutputDir, job.Output) {
		return Job{}, &OutputPathError{Path: job.Output, OutputDir: opts.OutputDir}
	}

	job.Width, job.Height, job.DimSource = dimensions(ctx, raw, job.Input, opts)
	return job, nil
}

// InputPath joins base and filename, or returns filename unchanged when
// base is empty.
func InputPath(base, filename string) string {
	if base == "" {
		return filename
	}
	return filepath.Join(base, filename)
}

// DecodeText turns the escaped line-break markers "\n" and "\\n" into real
// newlines. The doubled form is replaced first so it does not leave a stray
// backslash behind.
func DecodeText(s string) string {
	s = strings.ReplaceAll(s, `\\n`, "\n")
	return strings.ReplaceAll(s, `\n`, "\n")
}

// ManifestDimensions parses the VIDEO_WIDTH/VIDEO_HEIGHT pair. ok is false
// unless both are positive integers.
func ManifestDimensions(raw manifest.RawJob) (width, height int, ok bool) {
	if raw.Width == "" || raw.Height == "" {
		return 0, 0, false
	}
	w, errW := strconv.Atoi(raw.Width)
	h, errH := strconv.Atoi(raw.Height)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

// dimensions applies the manifest > probe > default priority. Both axes
// always come from the same source.
func dimensions(ctx context.Context, raw manifest.RawJob, input string, opts Options) (int, int, DimSource) {
	if w, h, ok := ManifestDimensions(raw); ok {
		return w, h, DimFromManifest
	}
	if opts.Probe != nil {
		if w, h, ok := opts.Probe(ctx, input); ok && w > 0 && h > 0 {
			return w, h, DimFromProbe
		}
	}
	return opts.DefaultWidth, opts.DefaultHeight, DimFromDefault
}

func parseSeconds(raw manifest.RawJob, field, value string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err == nil && (math.IsNaN(f) || math.IsInf(f, 0)) {
		err = strconv.ErrSyntax
	}
	if err != nil {
		return 0, &TimingError{Line: raw.Line, Field: field, Value: value, Err: err}
	}
	return f, nil
}

// FormatSeconds renders seconds the way a manifest would carry them.
func FormatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}

// Describe returns a one-line summary of job for verbose logs.
func (j Job) Describe() string {
	return fmt.Sprintf("%s -> %s [%dx%d %s, %ss-%ss]",
		j.Input, j.Output, j.Width, j.Height, j.DimSource,
		FormatSeconds(j.Start), FormatSeconds(j.End))
}
