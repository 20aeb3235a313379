package airtable

import "strings"

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// Quote renders s as a single-quoted formula string literal. Every character
// that could terminate the literal is escaped.
func Quote(s string) string {
	return "'" + literalEscaper.Replace(s) + "'"
}

// Eq renders an equality test between a field and a string literal. Field
// names are trusted constants and are not escaped.
func Eq(field, value string) string {
	return "{" + field + "}=" + Quote(value)
}

func And(terms ...string) string {
	return "AND(" + strings.Join(terms, ",") + ")"
}
