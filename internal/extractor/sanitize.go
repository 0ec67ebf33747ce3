package extractor

import (
	"strings"
	"unicode/utf8"
)

// typographic maps typographic punctuation to plain ASCII. No replacement
// contains a key, which keeps Sanitize idempotent.
var typographic = strings.NewReplacer(
	"\u201c", `"`,
	"\u201d", `"`,
	"\u201e", `"`,
	"\u2018", "'",
	"\u2019", "'",
	"\u201a", "'",
	"\u2014", "-", // em dash
	"\u2013", "-", // en dash
	"\u2026", "...",
	"\u00a0", " ",
	"\ufeff", "",
)

// Sanitize replaces malformed UTF-8 with a space and normalizes curly quotes,
// dashes and the ellipsis to their ASCII equivalents.
func Sanitize(s string) string {
	if s == "" {
		return s
	}
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, " ")
	}
	return typographic.Replace(s)
}
