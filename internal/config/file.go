package config

// This file layers a YAML style file and CAPTIONER_* environment variables
// over the default style. Flags are applied on top in flags.go.

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every style environment variable.
const EnvPrefix = "CAPTIONER_"

// LoadStyleFile decodes a YAML style file over s. Keys missing from the file
// keep their current value; unknown keys are an error so typos surface.
func LoadStyleFile(path string, s *Style) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read style file: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse style file %s: %w", path, err)
	}
	return nil
}

// LoadEnv reads style overrides from the dotenv file at path (skipped when
// empty or missing) and from the process environment, which wins.
func LoadEnv(path string, s *Style) error {
	vars := map[string]string{}
	if path != "" {
		fileVars, err := godotenv.Read(path)
		switch {
		case err == nil:
			vars = fileVars
		case errors.Is(err, fs.ErrNotExist):
			// optional
		default:
			return fmt.Errorf("failed to read env file %s: %w", path, err)
		}
	}
	for key := range envSetters {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			vars[EnvPrefix+key] = v
		}
	}
	return ApplyEnv(s, vars)
}

// ApplyEnv applies every CAPTIONER_* entry in vars to s. Keys without the
// prefix are ignored; unknown prefixed keys are an error. Keys are applied in
// sorted order so the first reported error is deterministic.
func ApplyEnv(s *Style, vars map[string]string) error {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		if strings.HasPrefix(k, EnvPrefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		name := strings.TrimPrefix(k, EnvPrefix)
		set, ok := envSetters[name]
		if !ok {
			return fmt.Errorf("unknown style variable %s", k)
		}
		if err := set(s, strings.TrimSpace(vars[k])); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
	}
	return nil
}

// envSetters maps the suffix after EnvPrefix to the Style field it sets.
var envSetters = map[string]func(*Style, string) error{
	"FONT_FILE":       func(s *Style, v string) error { s.FontFile = v; return nil },
	"FONT_SIZE":       intSetter(func(s *Style) *int { return &s.FontSize }),
	"FONT_COLOR":      func(s *Style, v string) error { s.FontColor = v; return nil },
	"OPACITY":         floatSetter(func(s *Style) *float64 { return &s.Opacity }),
	"LINE_SPACING":    intSetter(func(s *Style) *int { return &s.LineSpacing }),
	"TEXT_ALIGN":      func(s *Style, v string) error { s.TextAlign = Align(v); return nil },
	"ALIGN":           func(s *Style, v string) error { s.Align = Align(v); return nil },
	"BOTTOM_MARGIN":   intSetter(func(s *Style) *int { return &s.BottomMargin }),
	"LEFT_MARGIN":     intSetter(func(s *Style) *int { return &s.LeftMargin }),
	"BOX":             boolSetter(func(s *Style) *bool { return &s.Box }),
	"BOX_COLOR":       func(s *Style, v string) error { s.BoxColor = v; return nil },
	"BOX_BORDER":      intSetter(func(s *Style) *int { return &s.BoxBorder }),
	"SHADOW":          boolSetter(func(s *Style) *bool { return &s.Shadow }),
	"SHADOW_X":        intSetter(func(s *Style) *int { return &s.ShadowX }),
	"SHADOW_Y":        intSetter(func(s *Style) *int { return &s.ShadowY }),
	"SHADOW_COLOR":    func(s *Style, v string) error { s.ShadowColor = v; return nil },
	"BORDER":          boolSetter(func(s *Style) *bool { return &s.Border }),
	"BORDER_WIDTH":    intSetter(func(s *Style) *int { return &s.BorderWidth }),
	"BORDER_COLOR":    func(s *Style, v string) error { s.BorderColor = v; return nil },
	"EFFECT":          func(s *Style, v string) error { s.Effect = Effect(v); return nil },
	"ANIMATION_SPEED": floatSetter(func(s *Style) *float64 { return &s.AnimationSpeed }),
	"FADE_DURATION":   floatSetter(func(s *Style) *float64 { return &s.FadeDuration }),
	"DURATION":        floatSetter(func(s *Style) *float64 { return &s.Duration }),
}

func intSetter(field func(*Style) *int) func(*Style, string) error {
	return func(s *Style, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("must be a whole number (got %q)", v)
		}
		*field(s) = n
		return nil
	}
}

func floatSetter(field func(*Style) *float64) func(*Style, string) error {
	return func(s *Style, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("must be a number (got %q)", v)
		}
		*field(s) = f
		return nil
	}
}

func boolSetter(field func(*Style) *bool) func(*Style, string) error {
	return func(s *Style, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("must be true or false (got %q)", v)
		}
		*field(s) = b
		return nil
	}
}
