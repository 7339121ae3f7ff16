package drawtext

import "strings"

var (
	// Option values are split on ':' and may be quoted with '.
	optionEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, `:`, `\:`)
	// The filtergraph parser reserves these on top of the option level.
	graphEscaper = strings.NewReplacer(
		`\`, `\\`, `'`, `\'`, `[`, `\[`, `]`, `\]`, `,`, `\,`, `;`, `\;`,
	)
)

// EscapeValue escapes a literal option value, such as caption text or a
// font path, for use inside a filtergraph passed to -vf. Both escaping
// levels are applied: first for the drawtext option parser, then for the
// filtergraph parser.
func EscapeValue(s string) string {
	return graphEscaper.Replace(optionEscaper.Replace(s))
}

// QuoteExpr wraps an expression in single quotes so the filtergraph parser
// keeps its commas. Expressions contain no quotes or colons.
func QuoteExpr(e Expr) string {
	return "'" + e.String() + "'"
}
