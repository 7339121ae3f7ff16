package drawtext

import "strconv"

// Kind identifies a clause of a drawtext filter.
type Kind int

const (
	KindBase Kind = iota
	KindBorder
	KindShadow
	KindFade
	KindAlpha
	KindBox
	KindEnable
)

var kindNames = [...]string{"base", "border", "shadow", "fade", "alpha", "box", "enable"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Option is one key=value pair of the filter. Value is already escaped or
// quoted for the filtergraph.
type Option struct {
	Key   string
	Value string
}

// Clause is a group of drawtext options that are emitted together.
type Clause interface {
	Kind() Kind
	Options() []Option
}

// BaseClause draws the text: font, size, color, position, line spacing and
// multi-line alignment.
type BaseClause struct {
	FontFile    string
	Text        string
	FontSize    int
	FontColor   string
	X, Y        Expr
	LineSpacing int
	TextAlign   string
}

func (BaseClause) Kind() Kind { return KindBase }

func (c BaseClause) Options() []Option {
	return []Option{
		{"fontfile", EscapeValue(c.FontFile)},
		{"text", EscapeValue(c.Text)},
		{"fontsize", strconv.Itoa(c.FontSize)},
		{"fontcolor", EscapeValue(c.FontColor)},
		{"x", QuoteExpr(c.X)},
		{"y", QuoteExpr(c.Y)},
		{"line_spacing", strconv.Itoa(c.LineSpacing)},
		{"text_align", c.TextAlign},
		{"expansion", "none"},
	}
}

// BorderClause outlines the glyphs.
type BorderClause struct {
	Width int
	Color string
}

func (BorderClause) Kind() Kind { return KindBorder }

func (c BorderClause) Options() []Option {
	return []Option{
		{"borderw", strconv.Itoa(c.Width)},
		{"bordercolor", EscapeValue(c.Color)},
	}
}

// ShadowClause draws an offset drop shadow.
type ShadowClause struct {
	X, Y  int
	Color string
}

func (ShadowClause) Kind() Kind { return KindShadow }

func (c ShadowClause) Options() []Option {
	return []Option{
		{"shadowx", strconv.Itoa(c.X)},
		{"shadowy", strconv.Itoa(c.Y)},
		{"shadowcolor", EscapeValue(c.Color)},
	}
}

// FadeClause animates opacity over time.
type FadeClause struct {
	Alpha Expr
}

func (FadeClause) Kind() Kind { return KindFade }

func (c FadeClause) Options() []Option {
	return []Option{{"alpha", QuoteExpr(c.Alpha)}}
}

// AlphaClause applies a constant opacity.
type AlphaClause struct {
	Value float64
}

func (AlphaClause) Kind() Kind { return KindAlpha }

func (c AlphaClause) Options() []Option {
	return []Option{{"alpha", FormatNumber(c.Value)}}
}

// BoxClause fills a background box behind the text.
type BoxClause struct {
	Color  string
	Border int
}

func (BoxClause) Kind() Kind { return KindBox }

func (c BoxClause) Options() []Option {
	return []Option{
		{"box", "1"},
		{"boxcolor", EscapeValue(c.Color)},
		{"boxborderw", strconv.Itoa(c.Border)},
	}
}

// EnableClause limits drawing to the visibility window.
type EnableClause struct {
	Window Expr
}

func (EnableClause) Kind() Kind { return KindEnable }

func (c EnableClause) Options() []Option {
	return []Option{{"enable", QuoteExpr(c.Window)}}
}
