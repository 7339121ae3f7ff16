package drawtext

import (
	"strings"

	"github.com/backmassage/captioner/internal/config"
	"github.com/backmassage/captioner/internal/resolver"
)

// SlideRamp is the duration of the slide-in animation in seconds.
const SlideRamp = 1.0

// Expression is a complete drawtext filter. Build it with [Build]; it is not
// modified afterwards.
type Expression struct {
	Clauses []Clause
}

// String renders the filter for -vf.
func (e Expression) String() string {
	var b strings.Builder
	b.WriteString("drawtext=")
	first := true
	for _, c := range e.Clauses {
		for _, o := range c.Options() {
			if !first {
				b.WriteByte(':')
			}
			first = false
			b.WriteString(o.Key)
			b.WriteByte('=')
			b.WriteString(o.Value)
		}
	}
	return b.String()
}

// Clause returns the first clause of kind k.
func (e Expression) Clause(k Kind) (Clause, bool) {
	for _, c := range e.Clauses {
		if c.Kind() == k {
			return c, true
		}
	}
	return nil, false
}

// Kinds lists the clause kinds in emission order.
func (e Expression) Kinds() []Kind {
	kinds := make([]Kind, len(e.Clauses))
	for i, c := range e.Clauses {
		kinds[i] = c.Kind()
	}
	return kinds
}

// Build assembles the drawtext filter for job under style. Clause order is
// base, border, shadow, fade or constant alpha, box, and the visibility
// window last. Build does no I/O.
func Build(job resolver.Job, style config.Style) Expression {
	base := BaseClause{
		FontFile:    style.FontFile,
		Text:        job.Text,
		FontSize:    style.FontSize,
		FontColor:   style.FontColor,
		X:           XPosition(job, style),
		Y:           Num(float64(job.Height - style.BottomMargin)),
		LineSpacing: style.LineSpacing,
		TextAlign:   textAlign(style.TextAlign),
	}
	clauses := []Clause{base}

	if style.Border {
		clauses = append(clauses, BorderClause{Width: style.BorderWidth, Color: style.BorderColor})
	}
	if style.Shadow {
		clauses = append(clauses, ShadowClause{X: style.ShadowX, Y: style.ShadowY, Color: style.ShadowColor})
	}
	switch {
	case style.Effect == config.EffectFade:
		clauses = append(clauses, FadeClause{Alpha: FadeAlpha(job.Start, job.End, style.FadeDuration)})
	case style.Opacity < 1:
		clauses = append(clauses, AlphaClause{Value: style.Opacity})
	}
	if style.Box {
		clauses = append(clauses, BoxClause{Color: style.BoxColor, Border: style.BoxBorder})
	}
	clauses = append(clauses, EnableClause{Window: Window(job.Start, job.End)})

	return Expression{Clauses: clauses}
}

// BaseX returns the resting horizontal position for the alignment.
// Unknown alignments center the text.
func BaseX(align config.Align, width, leftMargin int) Expr {
	w := Num(float64(width))
	switch align {
	case config.AlignLeft:
		return Num(float64(leftMargin))
	case config.AlignRight:
		return Sub(Sub(w, VarTextW), Num(float64(leftMargin)))
	default:
		return Div(Sub(w, VarTextW), Num(2))
	}
}

// XPosition returns the horizontal position, animated when the style
// slides the caption in.
func XPosition(job resolver.Job, style config.Style) Expr {
	base := BaseX(style.Align, job.Width, style.LeftMargin)
	if style.Effect != config.EffectSlide {
		return base
	}
	return Slide(base, job.Width, job.Start)
}

// Slide holds the text one frame width off the left edge before start,
// moves it linearly to base over [SlideRamp] seconds and then rests there.
func Slide(base Expr, width int, start float64) Expr {
	off := Num(-float64(width))
	s := Num(start)
	progress := Div(Mul(Add(base, Num(float64(width))), Sub(VarT, s)), Num(SlideRamp))
	return If{
		Cond: Lt{VarT, s},
		Then: off,
		Else: If{
			Cond: Lt{VarT, Num(start + SlideRamp)},
			Then: Add(off, progress),
			Else: base,
		},
	}
}

// FadeAlpha returns the opacity curve for a fade between start and end.
// When the ramps fit (2*fade <= end-start) the curve is 0 before start,
// rises to 1 over fade seconds, holds, falls to 0 over the last fade
// seconds and is 0 after end. When they overlap the two ramps cross at the
// midpoint and the peak stays below 1.
func FadeAlpha(start, end, fade float64) Expr {
	s, e, fd := Num(start), Num(end), Num(fade)
	rise := Div(Sub(VarT, s), fd)
	fall := Div(Sub(e, VarT), fd)

	if 2*fade > end-start {
		return If{
			Cond: Between{VarT, s, e},
			Then: Min{rise, fall},
			Else: Num(0),
		}
	}
	return If{
		Cond: Lt{VarT, s},
		Then: Num(0),
		Else: If{
			Cond: Lt{VarT, Num(start + fade)},
			Then: rise,
			Else: If{
				Cond: Lt{VarT, Num(end - fade)},
				Then: Num(1),
				Else: If{
					Cond: Lt{VarT, e},
					Then: fall,
					Else: Num(0),
				},
			},
		},
	}
}

// Window is the visibility test start <= t <= end.
func Window(start, end float64) Expr {
	return Between{VarT, Num(start), Num(end)}
}

func textAlign(a config.Align) string {
	switch a {
	case config.AlignLeft, config.AlignRight:
		return string(a)
	}
	return string(config.AlignCenter)
}
