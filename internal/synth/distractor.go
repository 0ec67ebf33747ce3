package synth

import (
	"math/rand"
	"strings"
	"unicode/utf8"

	"quiz-forge/internal/domain"

	"github.com/kljensen/snowball"
)

const (
	DefaultNumOptions   = 4
	minDistractorLength = 3
)

// MCQBuilder turns sentence/keyword pairings into multiple-choice items,
// drawing wrong answers from the shared keyword pool.
type MCQBuilder struct {
	// NumOptions is the maximum option count, answer included.
	NumOptions int
	// FilterOverlap drops distractors sharing a word stem with the answer,
	// e.g. "cells" or "cell wall" when the answer is "cell".
	FilterOverlap bool
}

// NewMCQBuilder returns a builder with the default option count and the
// overlap filter enabled.
func NewMCQBuilder() MCQBuilder {
	return MCQBuilder{NumOptions: DefaultNumOptions, FilterOverlap: true}
}

// Distractors picks up to n entries of pool other than answer, in random order.
// Entries shorter than three runes and case-insensitive duplicates are skipped.
func (b MCQBuilder) Distractors(answer string, pool []string, n int, rng *rand.Rand) []string {
	if n <= 0 {
		return nil
	}
	answerKey := strings.ToLower(strings.TrimSpace(answer))
	var answerStems map[string]struct{}
	if b.FilterOverlap {
		answerStems = stems(answerKey)
	}

	seen := map[string]struct{}{answerKey: {}}
	candidates := make([]string, 0, len(pool))
	for _, entry := range pool {
		entry = strings.TrimSpace(entry)
		key := strings.ToLower(entry)
		if utf8.RuneCountInString(entry) < minDistractorLength {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		if b.FilterOverlap && sharesStem(answerStems, key) {
			continue
		}
		seen[key] = struct{}{}
		candidates = append(candidates, entry)
	}

	rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}

// Build creates a multiple-choice item whose stem is the sentence with the
// keyword blanked out. Answer and options are lower-cased. ok is false when the keyword has no usable match or
// fewer than two options could be assembled.
func (b MCQBuilder) Build(sentence, keyword string, pool []string, rng *rand.Rand) (domain.MCQItem, bool) {
	numOptions := b.NumOptions
	if numOptions < 2 {
		numOptions = DefaultNumOptions
	}

	question, answer, ok := blank(sentence, keyword)
	if !ok {
		return domain.MCQItem{}, false
	}

	options := append(b.Distractors(answer, pool, numOptions-1, rng), answer)
	if len(options) < 2 {
		return domain.MCQItem{}, false
	}
	// Options share one case so a sentence-initial answer does not stand out.
	answer = strings.ToLower(answer)
	for i := range options {
		options[i] = strings.ToLower(options[i])
	}
	rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	return domain.MCQItem{Question: question, Answer: answer, Options: options}, true
}

func stems(phrase string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, w := range strings.Fields(phrase) {
		out[stem(w)] = struct{}{}
	}
	return out
}

func sharesStem(set map[string]struct{}, phrase string) bool {
	for _, w := range strings.Fields(phrase) {
		if _, ok := set[stem(w)]; ok {
			return true
		}
	}
	return false
}

func stem(word string) string {
	s, err := snowball.Stem(word, "english", true)
	if err != nil || s == "" {
		return word
	}
	return s
}
