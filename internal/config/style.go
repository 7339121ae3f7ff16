package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Align positions the caption horizontally (Style.Align) or aligns the
// lines of a multi-line block against each other (Style.TextAlign).
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center" // Default.
	AlignRight  Align = "right"
)

// Effect selects the caption animation.
type Effect string

const (
	EffectNone  Effect = "none" // Default.
	EffectSlide Effect = "slide"
	EffectFade  Effect = "fade"
)

// Style is the caption styling shared by every job in a run. The yaml tags
// are the keys accepted by a --style file.
type Style struct {
	// Text.
	FontFile     string  `yaml:"font_file"`
	FontSize     int     `yaml:"font_size"`
	FontColor    string  `yaml:"font_color"`
	Opacity      float64 `yaml:"opacity"` // Constant alpha; ignored when Effect is fade.
	LineSpacing  int     `yaml:"line_spacing"`
	TextAlign    Align   `yaml:"text_align"`
	Align        Align   `yaml:"align"`
	BottomMargin int     `yaml:"bottom_margin"`
	LeftMargin   int     `yaml:"left_margin"` // Also the right margin for right alignment.

	// Background box.
	Box       bool   `yaml:"box"`
	BoxColor  string `yaml:"box_color"`
	BoxBorder int    `yaml:"box_border"`

	// Drop shadow.
	Shadow      bool   `yaml:"shadow"`
	ShadowX     int    `yaml:"shadow_x"`
	ShadowY     int    `yaml:"shadow_y"`
	ShadowColor string `yaml:"shadow_color"`

	// Outline.
	Border      bool   `yaml:"border"`
	BorderWidth int    `yaml:"border_width"`
	BorderColor string `yaml:"border_color"`

	// Animation. The slide ramp is a fixed 1s; AnimationSpeed is reported
	// with the style but does not change it.
	Effect         Effect  `yaml:"effect"`
	AnimationSpeed float64 `yaml:"animation_speed"`
	FadeDuration   float64 `yaml:"fade_duration"`

	// Duration trims every output to this many seconds; 0 keeps full length.
	Duration float64 `yaml:"duration"`
}

// DefaultStyle returns the built-in caption style: bold white text centered
// near the bottom of a vertical frame with a soft drop shadow.
func DefaultStyle() Style {
	return Style{
		FontFile:       "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
		FontSize:       64,
		FontColor:      "white",
		Opacity:        1.0,
		LineSpacing:    12,
		TextAlign:      AlignCenter,
		Align:          AlignCenter,
		BottomMargin:   200,
		LeftMargin:     40,
		Box:            false,
		BoxColor:       "black@0.5",
		BoxBorder:      20,
		Shadow:         true,
		ShadowX:        2,
		ShadowY:        2,
		ShadowColor:    "black",
		Border:         false,
		BorderWidth:    3,
		BorderColor:    "black",
		Effect:         EffectNone,
		AnimationSpeed: 1.0,
		FadeDuration:   0.5,
	}
}

// ParseAlign maps a case-insensitive name to an Align.
func ParseAlign(s string) (Align, error) {
	switch a := Align(strings.ToLower(strings.TrimSpace(s))); a {
	case AlignLeft, AlignCenter, AlignRight:
		return a, nil
	}
	return "", fmt.Errorf("invalid alignment %q (use 'left', 'center' or 'right')", s)
}

// ParseEffect maps a case-insensitive name to an Effect.
func ParseEffect(s string) (Effect, error) {
	switch e := Effect(strings.ToLower(strings.TrimSpace(s))); e {
	case EffectNone, EffectSlide, EffectFade:
		return e, nil
	}
	return "", fmt.Errorf("invalid effect %q (use 'none', 'slide' or 'fade')", s)
}

// Validate checks enums and numeric ranges. It normalizes enum case so
// values from YAML or the environment compare cleanly.
func (s *Style) Validate() error {
	var err error
	if s.Align, err = ParseAlign(string(s.Align)); err != nil {
		return err
	}
	if s.TextAlign, err = ParseAlign(string(s.TextAlign)); err != nil {
		return fmt.Errorf("text_align: %w", err)
	}
	if s.Effect, err = ParseEffect(string(s.Effect)); err != nil {
		return err
	}

	for _, f := range []struct {
		name  string
		value float64
	}{
		{"opacity", s.Opacity},
		{"fade duration", s.FadeDuration},
		{"animation speed", s.AnimationSpeed},
		{"duration", s.Duration},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%s must be a finite number (got %g)", f.name, f.value)
		}
	}

	if s.FontSize <= 0 {
		return fmt.Errorf("font size must be positive (got %d)", s.FontSize)
	}
	if s.FontColor == "" {
		return errors.New("font color must not be empty")
	}
	if s.Opacity < 0 || s.Opacity > 1 {
		return fmt.Errorf("opacity must be between 0 and 1 (got %g)", s.Opacity)
	}
	if s.BottomMargin < 0 || s.LeftMargin < 0 || s.LineSpacing < 0 {
		return errors.New("margins and line spacing must not be negative")
	}
	if s.Box && s.BoxBorder < 0 {
		return fmt.Errorf("box border must not be negative (got %d)", s.BoxBorder)
	}
	if s.Border && s.BorderWidth <= 0 {
		return fmt.Errorf("border width must be positive (got %d)", s.BorderWidth)
	}
	if s.AnimationSpeed <= 0 {
		return fmt.Errorf("animation speed must be positive (got %g)", s.AnimationSpeed)
	}
	if s.Effect == EffectFade && s.FadeDuration <= 0 {
		return fmt.Errorf("fade duration must be positive (got %g)", s.FadeDuration)
	}
	if s.Duration < 0 {
		return fmt.Errorf("duration must not be negative (got %g)", s.Duration)
	}
	return nil
}
