// Package synth builds individual quiz items from a sentence and a keyword.
package synth

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/salience"
)

// keywordPattern matches keyword case-insensitively, letting any whitespace
// run stand in for the spaces of a multi-word keyword.
func keywordPattern(keyword string) *regexp.Regexp {
	words := strings.Fields(keyword)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)` + strings.Join(words, `\s+`))
}

// wholeWordMatches returns the byte ranges of keyword in text that are not
// glued to a neighbouring word character.
func wholeWordMatches(text, keyword string) [][]int {
	if strings.TrimSpace(keyword) == "" {
		return nil
	}
	var out [][]int
	for _, loc := range keywordPattern(keyword).FindAllStringIndex(text, -1) {
		if before, _ := utf8.DecodeLastRuneInString(text[:loc[0]]); loc[0] > 0 && salience.IsWordRune(before) {
			continue
		}
		if after, _ := utf8.DecodeRuneInString(text[loc[1]:]); loc[1] < len(text) && salience.IsWordRune(after) {
			continue
		}
		out = append(out, loc)
	}
	return out
}

// ContainsWholeWord reports whether keyword occurs in text as a whole word,
// ignoring case.
func ContainsWholeWord(text, keyword string) bool {
	return len(wholeWordMatches(text, keyword)) > 0
}

// blank replaces the first whole-word occurrence of keyword in sentence with
// the blank marker and returns the question and the answer as written in the
// sentence. It fails when there is no occurrence, or when the answer would
// still be readable elsewhere in the question.
func blank(sentence, keyword string) (question, answer string, ok bool) {
	matches := wholeWordMatches(sentence, keyword)
	if len(matches) == 0 {
		return "", "", false
	}
	loc := matches[0]
	answer = sentence[loc[0]:loc[1]]
	question = sentence[:loc[0]] + domain.BlankMarker + sentence[loc[1]:]
	if ContainsWholeWord(question, keyword) {
		return "", "", false
	}
	return question, answer, true
}

// MakeCloze builds a fill-in-the-blank item. ok is false when the keyword has
// no usable whole-word match in the sentence; callers should try another pairing.
func MakeCloze(sentence, keyword string) (domain.ClozeItem, bool) {
	question, answer, ok := blank(sentence, keyword)
	if !ok {
		return domain.ClozeItem{}, false
	}
	return domain.ClozeItem{Question: question, Answer: answer}, true
}
