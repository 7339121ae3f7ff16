package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into input, caption, style, behavior, display and utility.
// Style flags are parsed into a scratch Style and only the ones the user passed
// are copied over the file/environment layers, so precedence stays
// defaults < style file < environment < flags.

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

// ErrVersion is returned by [ParseArgs] after printing the version.
var ErrVersion = errors.New("version requested")

// ParseFlags parses os.Args into cfg. On --help or --version it prints and exits.
// On error it returns non-nil (e.g. unknown flag, unreadable style file).
func ParseFlags(cfg *Config, version string) error {
	err := ParseArgs(cfg, version, os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) || errors.Is(err, ErrVersion) {
		os.Exit(0)
	}
	return err
}

// ParseArgs is [ParseFlags] over an explicit argument list. Usage and
// version text go to out. Returns flag.ErrHelp or ErrVersion when the
// caller should exit successfully without running.
func ParseArgs(cfg *Config, version string, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("captioner", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { printUsage(out, version) }

	// Negated/override flags: we capture bools then apply to cfg after Parse,
	// so that defaults from DefaultConfig() hold unless the user passes the flag.
	var negated negatedFlags
	flagStyle := cfg.Style

	defineInputFlags(fs, cfg)
	defineCaptionFlags(fs, cfg)
	defineStyleFlags(fs, cfg, &flagStyle, &negated)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, &negated)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	if negated.showHelp {
		printUsage(out, version)
		return flag.ErrHelp
	}
	if negated.showVersion {
		fmt.Fprintln(out, "captioner v"+version)
		return ErrVersion
	}

	applyNegatedFlags(cfg, &negated)
	cfg.OutputDir = NormalizeDirArg(cfg.OutputDir)
	cfg.InputDir = NormalizeDirArg(cfg.InputDir)
	cfg.BasePath = NormalizeDirArg(cfg.BasePath)

	return layerStyle(fs, cfg, &flagStyle, &negated)
}

// negatedFlags holds boolean flags that are applied after Parse.
// These either invert a default (e.g. noShadow -> Style.Shadow=false) or trigger exit (showHelp, showVersion).
type negatedFlags struct {
	noShadow    bool
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineInputFlags registers the three input modes, base path and output directory.
func defineInputFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.ManifestPath, "csv", "", "CSV manifest with one caption job per row")
	fs.StringVar(&cfg.ManifestPath, "c", "", "Same as --csv")
	fs.StringVar(&cfg.BasePath, "base-path", "", "Directory prepended to manifest filenames")
	fs.StringVar(&cfg.BasePath, "b", "", "Same as --base-path")
	fs.StringVar(&cfg.InputFile, "input", "", "Single input video")
	fs.StringVar(&cfg.InputFile, "i", "", "Same as --input")
	fs.StringVar(&cfg.InputDir, "input-dir", "", "Caption every .mp4/.mov in this directory")
	fs.StringVar(&cfg.OutputDir, "output", cfg.OutputDir, "Output directory")
	fs.StringVar(&cfg.OutputDir, "o", cfg.OutputDir, "Same as --output")
	fs.StringVar(&cfg.OutputSuffix, "suffix", cfg.OutputSuffix, "Suffix for derived output names")
}

// defineCaptionFlags registers the shared caption used by --input and --input-dir.
func defineCaptionFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Text, "text", "", `Caption text ("\n" for line breaks)`)
	fs.Float64Var(&cfg.Start, "start", 0, "Caption start time in seconds")
	fs.Float64Var(&cfg.End, "end", 0, "Caption end time in seconds")
	fs.StringVar(&cfg.OutputName, "output-name", "", "Custom output file name (single input only)")
	fs.IntVar(&cfg.Width, "width", 0, "Frame width override (needs --height)")
	fs.IntVar(&cfg.Height, "height", 0, "Frame height override (needs --width)")
	fs.IntVar(&cfg.DefaultWidth, "default-width", cfg.DefaultWidth, "Width used when probing fails")
	fs.IntVar(&cfg.DefaultHeight, "default-height", cfg.DefaultHeight, "Height used when probing fails")
}

// defineStyleFlags registers style overrides into the scratch style s.
func defineStyleFlags(fs *flag.FlagSet, cfg *Config, s *Style, n *negatedFlags) {
	fs.StringVar(&cfg.StyleFile, "style", "", "YAML style file")
	fs.StringVar(&cfg.EnvFile, "env-file", cfg.EnvFile, "Dotenv file with CAPTIONER_* style variables")
	fs.StringVar(&s.FontFile, "font", s.FontFile, "Font file path")
	fs.IntVar(&s.FontSize, "font-size", s.FontSize, "Font size in pixels")
	fs.StringVar(&s.FontColor, "font-color", s.FontColor, "Font color (name or 0xRRGGBB)")
	fs.Float64Var(&s.Opacity, "opacity", s.Opacity, "Constant text opacity 0-1")
	fs.Var(&alignValue{&s.Align}, "align", "Horizontal position: left | center | right")
	fs.Var(&alignValue{&s.TextAlign}, "text-align", "Multi-line alignment: left | center | right")
	fs.IntVar(&s.BottomMargin, "bottom-margin", s.BottomMargin, "Distance from the bottom edge")
	fs.IntVar(&s.LeftMargin, "left-margin", s.LeftMargin, "Side margin for left/right alignment")
	fs.IntVar(&s.LineSpacing, "line-spacing", s.LineSpacing, "Extra pixels between lines")
	fs.Var(&effectValue{&s.Effect}, "effect", "Animation: none | slide | fade")
	fs.Float64Var(&s.FadeDuration, "fade", s.FadeDuration, "Fade in/out duration in seconds")
	fs.BoolVar(&s.Box, "box", s.Box, "Draw a background box")
	fs.StringVar(&s.BoxColor, "box-color", s.BoxColor, "Background box color")
	fs.BoolVar(&n.noShadow, "no-shadow", false, "Disable the drop shadow")
	fs.BoolVar(&s.Border, "border", s.Border, "Draw a text outline")
	fs.IntVar(&s.BorderWidth, "border-width", s.BorderWidth, "Outline width")
	fs.Float64Var(&s.Duration, "duration", s.Duration, "Trim outputs to this many seconds")
}

// defineBehaviorFlags registers dry-run and skip-existing.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Resolve paths and print the plan; do not render")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
	fs.BoolVar(&cfg.SkipExisting, "skip-existing", false, "Skip jobs whose output already exists")
	fs.StringVar(&cfg.VideoCodec, "codec", cfg.VideoCodec, "Video encoder")
	fs.StringVar(&cfg.Preset, "preset", cfg.Preset, "Encoder preset")
	fs.IntVar(&cfg.CRF, "crf", cfg.CRF, "Encoder CRF")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, n *negatedFlags) {
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies the color toggles into cfg.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// layerStyle builds cfg.Style from defaults, then the style file, then the
// environment, then whichever style flags were explicitly passed.
func layerStyle(fs *flag.FlagSet, cfg *Config, flagStyle *Style, n *negatedFlags) error {
	style := cfg.Style
	if cfg.StyleFile != "" {
		if err := LoadStyleFile(cfg.StyleFile, &style); err != nil {
			return err
		}
	}
	if err := LoadEnv(cfg.EnvFile, &style); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if copyField, ok := styleFlagFields[f.Name]; ok {
			copyField(&style, flagStyle)
		}
	})
	if n.noShadow {
		style.Shadow = false
	}
	cfg.Style = style
	return nil
}

// styleFlagFields copies one flag-backed field from src to dst.
var styleFlagFields = map[string]func(dst, src *Style){
	"font":          func(d, s *Style) { d.FontFile = s.FontFile },
	"font-size":     func(d, s *Style) { d.FontSize = s.FontSize },
	"font-color":    func(d, s *Style) { d.FontColor = s.FontColor },
	"opacity":       func(d, s *Style) { d.Opacity = s.Opacity },
	"align":         func(d, s *Style) { d.Align = s.Align },
	"text-align":    func(d, s *Style) { d.TextAlign = s.TextAlign },
	"bottom-margin": func(d, s *Style) { d.BottomMargin = s.BottomMargin },
	"left-margin":   func(d, s *Style) { d.LeftMargin = s.LeftMargin },
	"line-spacing":  func(d, s *Style) { d.LineSpacing = s.LineSpacing },
	"effect":        func(d, s *Style) { d.Effect = s.Effect },
	"fade":          func(d, s *Style) { d.FadeDuration = s.FadeDuration },
	"box":           func(d, s *Style) { d.Box = s.Box },
	"box-color":     func(d, s *Style) { d.BoxColor = s.BoxColor },
	"border":        func(d, s *Style) { d.Border = s.Border },
	"border-width":  func(d, s *Style) { d.BorderWidth = s.BorderWidth },
	"duration":      func(d, s *Style) { d.Duration = s.Duration },
}

// printUsage writes the help text. Column-aligned for readability.
func printUsage(out io.Writer, version string) {
	const col1 = 30 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "Captioner v" + version + " - timed text captions for video batches"},
		{"", ""},
		{"  captioner [OPTIONS] --csv <manifest.csv>", ""},
		{"  captioner [OPTIONS] --input <video> --text <text> --start <s> --end <s>", ""},
		{"  captioner [OPTIONS] --input-dir <dir> --text <text> --start <s> --end <s>", ""},
		{"", ""},
		{"Input", ""},
		{"  -c, --csv <path>", "Manifest: filename,START_TIME,END_TIME,TEXT[,VIDEO_WIDTH,VIDEO_HEIGHT,FILENAME_OUTPUT]"},
		{"  -b, --base-path <dir>", "Prepended to manifest filenames"},
		{"  -i, --input <path>", "Single input video"},
		{"  --input-dir <dir>", "Every .mp4/.mov in dir (not recursive)"},
		{"  -o, --output <dir>", "Output directory (default: ./output)"},
		{"  --suffix <text>", "Derived output suffix (default: _text)"},
		{"", ""},
		{"Caption (--input / --input-dir)", ""},
		{"  --text <text>", `Caption text; "\n" breaks lines`},
		{"  --start <s>, --end <s>", "Visibility window in seconds"},
		{"  --output-name <name>", "Custom output name (single input)"},
		{"  --width <px> --height <px>", "Frame size override"},
		{"  --default-width/-height <px>", "Fallback when probing fails (default: 1080x1920)"},
		{"", ""},
		{"Style", ""},
		{"  --style <path>", "YAML style file"},
		{"  --env-file <path>", "Dotenv with CAPTIONER_* variables (default: .env)"},
		{"  --font <path>", "Font file"},
		{"  --font-size <px>", "Font size (default: 64)"},
		{"  --font-color <color>", "Font color (default: white)"},
		{"  --opacity <0-1>", "Constant opacity (default: 1)"},
		{"  --align <left|center|right>", "Horizontal position (default: center)"},
		{"  --text-align <l|c|r>", "Multi-line alignment (default: center)"},
		{"  --bottom-margin <px>", "Distance from bottom (default: 200)"},
		{"  --left-margin <px>", "Side margin (default: 40)"},
		{"  --line-spacing <px>", "Line spacing (default: 12)"},
		{"  --effect <none|slide|fade>", "Animation (default: none)"},
		{"  --fade <s>", "Fade duration (default: 0.5)"},
		{"  --box, --box-color <color>", "Background box"},
		{"  --border, --border-width <px>", "Text outline"},
		{"  --no-shadow", "Disable drop shadow"},
		{"  --duration <s>", "Trim outputs"},
		{"", ""},
		{"Output & behavior", ""},
		{"  -d, --dry-run", "Print the plan; do not render"},
		{"  --skip-existing", "Skip jobs whose output exists"},
		{"  --codec, --preset, --crf", "Encoder settings (default: libx264, medium, 18)"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  --check", "System diagnostics (ffmpeg, ffprobe, drawtext)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(out)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(out, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(out, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(out, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapters so we can use enum types (Align, Effect) with flag.Var.

type alignValue struct{ p *Align }

func (a *alignValue) String() string {
	if a.p == nil {
		return ""
	}
	return string(*a.p)
}
func (a *alignValue) Set(s string) error {
	v, err := ParseAlign(s)
	if err != nil {
		return err
	}
	*a.p = v
	return nil
}

type effectValue struct{ p *Effect }

func (e *effectValue) String() string {
	if e.p == nil {
		return ""
	}
	return string(*e.p)
}
func (e *effectValue) Set(s string) error {
	v, err := ParseEffect(s)
	if err != nil {
		return err
	}
	*e.p = v
	return nil
}
