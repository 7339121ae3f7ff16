// Package config holds runtime configuration: defaults, CLI flag parsing,
// style file and environment layering, and validation. A Config is built
// once during startup and treated as read-only afterwards.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Mode selects where caption jobs come from.
type Mode string

const (
	ModeNone      Mode = ""          // No input selected.
	ModeSingle    Mode = "single"    // One video from --input.
	ModeDirectory Mode = "directory" // Every .mp4/.mov in --input-dir, one shared caption.
	ModeManifest  Mode = "manifest"  // One job per CSV row from --csv.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// layered by [ParseFlags] and then passed by pointer to every package that
// needs it. Nothing mutates it once the job loop starts.
type Config struct {
	// Input selection. Exactly one of ManifestPath, InputFile, InputDir is set.
	ManifestPath string
	BasePath     string // Prefix for manifest filenames; empty means use them verbatim.
	InputFile    string
	InputDir     string

	// Output.
	OutputDir    string // Default: "./output".
	OutputSuffix string // Default: "_text". Appended to derived output stems.

	// Shared caption for single and directory modes.
	Text       string
	Start      float64
	End        float64
	OutputName string // Single mode only; same rules as FILENAME_OUTPUT.
	Width      int    // Single mode override; 0 = unset.
	Height     int    // Single mode override; 0 = unset.

	// Fallback frame size when neither the job nor the probe supplies one.
	DefaultWidth  int // Default: 1080.
	DefaultHeight int // Default: 1920.

	// Caption styling, resolved from defaults, style file, environment and flags.
	Style     Style
	StyleFile string
	EnvFile   string // Default: ".env". Missing file is ignored.

	// Encoding.
	VideoCodec string // Default: "libx264".
	Preset     string // Default: "medium".
	CRF        int    // Default: 18.

	// Behavior flags.
	DryRun       bool
	SkipExisting bool

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string
	CheckOnly bool
}

// DefaultConfig returns a Config with every default applied. Used as the
// base before [ParseFlags] layers user settings on top.
func DefaultConfig() Config {
	return Config{
		OutputDir:     "./output",
		OutputSuffix:  "_text",
		DefaultWidth:  1080,
		DefaultHeight: 1920,
		Style:         DefaultStyle(),
		EnvFile:       ".env",
		VideoCodec:    "libx264",
		Preset:        "medium",
		CRF:           18,
		ColorMode:     ColorAuto,
	}
}

// Mode reports which input mode the configuration selects. When more than
// one input is set the first match wins; [Config.Validate] rejects that case.
func (c *Config) Mode() Mode {
	switch {
	case c.ManifestPath != "":
		return ModeManifest
	case c.InputDir != "":
		return ModeDirectory
	case c.InputFile != "":
		return ModeSingle
	}
	return ModeNone
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields, numeric ranges and input selection. CheckOnly
// skips the input requirements.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if err := c.Style.Validate(); err != nil {
		return err
	}

	if c.DefaultWidth <= 0 || c.DefaultHeight <= 0 {
		return fmt.Errorf("default dimensions must be positive (got %dx%d)", c.DefaultWidth, c.DefaultHeight)
	}
	if c.Width < 0 || c.Height < 0 {
		return errors.New("width and height must not be negative")
	}
	if c.CRF < 0 || c.CRF > 51 {
		return fmt.Errorf("crf must be between 0 and 51 (got %d)", c.CRF)
	}
	if c.VideoCodec == "" {
		return errors.New("video codec must not be empty")
	}

	if c.CheckOnly {
		return nil
	}

	selected := 0
	for _, s := range []string{c.ManifestPath, c.InputFile, c.InputDir} {
		if s != "" {
			selected++
		}
	}
	if selected != 1 {
		return errors.New("select exactly one input: --csv, --input or --input-dir")
	}
	if c.OutputDir == "" {
		return errors.New("output directory must not be empty")
	}

	if c.Mode() == ModeManifest {
		return nil
	}
	if c.Text == "" {
		return errors.New("--text is required with --input and --input-dir")
	}
	if c.Start < 0 {
		return fmt.Errorf("start time must not be negative (got %g)", c.Start)
	}
	if c.End <= c.Start {
		return fmt.Errorf("end time (%g) must exceed start time (%g)", c.End, c.Start)
	}
	if c.Mode() == ModeDirectory && c.OutputName != "" {
		return errors.New("--output-name only applies to a single --input")
	}
	return nil
}

// ValidatePaths ensures the resolved output directory differs from the
// resolved input directory, so a rerun of directory mode never picks up its
// own outputs. Subdirectories are fine because discovery is not recursive.
// Both arguments must be absolute, symlink-resolved paths.
func (c *Config) ValidatePaths(inputAbs, outputAbs string) error {
	if filepath.Clean(outputAbs) == filepath.Clean(inputAbs) {
		return errors.New("output directory must differ from input directory")
	}
	return nil
}
