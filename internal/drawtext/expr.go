package drawtext

import (
	"math"
	"strconv"
)

// Expr is a node in an ffmpeg expression. String renders it in ffmpeg's
// expression syntax; Eval computes it against a frame environment.
type Expr interface {
	String() string
	Eval(env Env) float64
}

// Env holds the drawtext variables an expression may reference.
type Env struct {
	T     float64 // t: timestamp in seconds
	TextW float64 // text_w: rendered text width
	TextH float64 // text_h: rendered text height
}

// Num is a numeric literal.
type Num float64

func (n Num) String() string   { return FormatNumber(float64(n)) }
func (n Num) Eval(Env) float64 { return float64(n) }
func (n Num) precedence() int  { return precLeaf }
func (n Num) isNegative() bool { return n < 0 }

// Var is a drawtext variable reference.
type Var string

const (
	VarT     Var = "t"
	VarTextW Var = "text_w"
	VarTextH Var = "text_h"
)

func (v Var) String() string  { return string(v) }
func (v Var) precedence() int { return precLeaf }

func (v Var) Eval(env Env) float64 {
	switch v {
	case VarT:
		return env.T
	case VarTextW:
		return env.TextW
	case VarTextH:
		return env.TextH
	}
	return math.NaN()
}

const (
	precAdd = iota + 1
	precMul
	precLeaf
)

type ranked interface{ precedence() int }

func precOf(e Expr) int {
	if r, ok := e.(ranked); ok {
		return r.precedence()
	}
	return precLeaf
}

// Binary is an arithmetic operation: one of + - * /.
type Binary struct {
	Op   byte
	L, R Expr
}

func Add(l, r Expr) Expr { return Binary{'+', l, r} }
func Sub(l, r Expr) Expr { return Binary{'-', l, r} }
func Mul(l, r Expr) Expr { return Binary{'*', l, r} }
func Div(l, r Expr) Expr { return Binary{'/', l, r} }

func (b Binary) precedence() int {
	if b.Op == '*' || b.Op == '/' {
		return precMul
	}
	return precAdd
}

func (b Binary) String() string {
	p := b.precedence()
	l := b.L.String()
	if precOf(b.L) < p {
		l = "(" + l + ")"
	}
	// Right operands of - and / bind tighter: a-(b-c), a/(b*c).
	r := b.R.String()
	rp := precOf(b.R)
	if rp < p || (rp == p && (b.Op == '-' || b.Op == '/')) || negativeLiteral(b.R) {
		r = "(" + r + ")"
	}
	return l + string(b.Op) + r
}

func (b Binary) Eval(env Env) float64 {
	l, r := b.L.Eval(env), b.R.Eval(env)
	switch b.Op {
	case '+':
		return l + r
	case '-':
		return l - r
	case '*':
		return l * r
	case '/':
		return l / r
	}
	return math.NaN()
}

func negativeLiteral(e Expr) bool {
	n, ok := e.(Num)
	return ok && n.isNegative()
}

// If is if(cond, then, else): then when cond is non-zero.
type If struct {
	Cond, Then, Else Expr
}

func (i If) String() string {
	return "if(" + i.Cond.String() + "," + i.Then.String() + "," + i.Else.String() + ")"
}

func (i If) Eval(env Env) float64 {
	if i.Cond.Eval(env) != 0 {
		return i.Then.Eval(env)
	}
	return i.Else.Eval(env)
}

// Lt is lt(a, b): 1 when a < b, else 0.
type Lt struct {
	A, B Expr
}

func (l Lt) String() string { return "lt(" + l.A.String() + "," + l.B.String() + ")" }

func (l Lt) Eval(env Env) float64 { return boolNum(l.A.Eval(env) < l.B.Eval(env)) }

// Between is between(x, lo, hi): 1 when lo <= x <= hi, else 0.
type Between struct {
	X, Lo, Hi Expr
}

func (b Between) String() string {
	return "between(" + b.X.String() + "," + b.Lo.String() + "," + b.Hi.String() + ")"
}

func (b Between) Eval(env Env) float64 {
	x := b.X.Eval(env)
	return boolNum(x >= b.Lo.Eval(env) && x <= b.Hi.Eval(env))
}

// Min is min(a, b).
type Min struct {
	A, B Expr
}

func (m Min) String() string { return "min(" + m.A.String() + "," + m.B.String() + ")" }

func (m Min) Eval(env Env) float64 { return math.Min(m.A.Eval(env), m.B.Eval(env)) }

func boolNum(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// FormatNumber renders f in the shortest decimal form ffmpeg accepts.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
