package salience

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type token struct {
	word       string // lower-cased
	start, end int    // byte offsets in the source text
}

// IsWordRune reports whether r belongs to a word. Underscores count, so the
// blank marker never sits inside a matchable word.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func isTokenRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// tokenize splits text into runs of letters and digits.
func tokenize(text string) []token {
	var tokens []token
	start := -1
	for i, r := range text {
		if isTokenRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, token{word: strings.ToLower(text[start:i]), start: start, end: i})
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, token{word: strings.ToLower(text[start:]), start: start, end: len(text)})
	}
	return tokens
}

// onlySpace reports whether s is non-empty and made entirely of whitespace.
func onlySpace(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// terms returns the candidate unigrams and bigrams of one document, in order,
// with stop words and terms shorter than minRunes removed.
func terms(doc string, stop wordSet, minRunes int) []string {
	tokens := tokenize(doc)
	out := make([]string, 0, len(tokens)*2)
	for i, tok := range tokens {
		if stop.has(tok.word) {
			continue
		}
		if utf8.RuneCountInString(tok.word) >= minRunes {
			out = append(out, tok.word)
		}
		if i+1 < len(tokens) {
			next := tokens[i+1]
			if stop.has(next.word) || !onlySpace(doc[tok.end:next.start]) {
				continue
			}
			out = append(out, tok.word+" "+next.word)
		}
	}
	return out
}
