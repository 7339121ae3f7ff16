// Package drawtext builds the ffmpeg drawtext filter that renders a caption.
//
// Positions, the slide animation, the fade curve and the visibility window
// are kept as typed expression trees ([Expr]) rather than strings, so tests
// can evaluate them at chosen timestamps with [Expr.Eval] and the serialized
// form is produced in one place. Literal values (caption text, font path,
// colors) go through [EscapeValue]; expressions are single-quoted.
//
// Fade overlap: when twice the fade duration exceeds the window, the rise
// and fall ramps are combined with min() inside the window, so opacity
// peaks at (end-start)/(2*fade) at the midpoint instead of snapping to 0.
package drawtext
