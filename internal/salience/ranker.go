// Package salience ranks the terms of a document by TF-IDF weight.
//
// Ranking and shuffling are separate stages: Rank is deterministic and decides
// which terms qualify, Shuffle and Candidates only reorder the survivors.
package salience

import (
	"math"
	"math/rand"
	"sort"
)

const (
	DefaultMaxFeatures = 200
	DefaultMinTermLen  = 3
)

// Keyword is a ranked candidate term, lower-cased.
type Keyword struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`
}

// Ranker scores unigrams and adjacent bigrams over a corpus of sentences.
type Ranker struct {
	maxFeatures int
	minTermLen  int
	stop        wordSet
}

// Option configures a Ranker.
type Option func(*Ranker)

// WithMaxFeatures caps the raw candidate pool before scoring. Values <= 0
// keep DefaultMaxFeatures.
func WithMaxFeatures(n int) Option {
	return func(r *Ranker) {
		if n > 0 {
			r.maxFeatures = n
		}
	}
}

// WithMinTermLen sets the minimum term length in runes.
func WithMinTermLen(n int) Option {
	return func(r *Ranker) { r.minTermLen = n }
}

// WithStopWords replaces the default stop list.
func WithStopWords(words []string) Option {
	return func(r *Ranker) {
		set := make(wordSet, len(words))
		for _, w := range words {
			set[w] = struct{}{}
		}
		r.stop = set
	}
}

// NewRanker creates a ranker with the default pool cap and stop list.
func NewRanker(opts ...Option) *Ranker {
	r := &Ranker{
		maxFeatures: DefaultMaxFeatures,
		minTermLen:  DefaultMinTermLen,
		stop:        englishStopWords,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RankText ranks text treated as a single-document corpus, where the score
// reduces to term frequency.
func (r *Ranker) RankText(text string) []Keyword {
	return r.Rank([]string{text})
}

// Rank scores every candidate term of corpus with tf * idf, where
// idf = ln((1+n)/(1+df)) + 1, and returns them by descending score, ties
// broken by term. The result is identical for identical input.
func (r *Ranker) Rank(corpus []string) []Keyword {
	tf := make(map[string]int)
	df := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]bool)
		for _, term := range terms(doc, r.stop, r.minTermLen) {
			tf[term]++
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
	}
	if len(tf) == 0 {
		return []Keyword{}
	}

	pool := make([]string, 0, len(tf))
	for term := range tf {
		pool = append(pool, term)
	}
	sort.Slice(pool, func(i, j int) bool {
		if tf[pool[i]] != tf[pool[j]] {
			return tf[pool[i]] > tf[pool[j]]
		}
		return pool[i] < pool[j]
	})
	if len(pool) > r.maxFeatures {
		pool = pool[:r.maxFeatures]
	}

	n := float64(len(corpus))
	ranked := make([]Keyword, 0, len(pool))
	for _, term := range pool {
		idf := math.Log((1+n)/(1+float64(df[term]))) + 1
		ranked = append(ranked, Keyword{Term: term, Score: float64(tf[term]) * idf})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Term < ranked[j].Term
	})
	return ranked
}

// Terms returns the terms of ranked keywords in order.
func Terms(ranked []Keyword) []string {
	out := make([]string, len(ranked))
	for i, k := range ranked {
		out[i] = k.Term
	}
	return out
}

// Shuffle returns a reordered copy of terms; the input is left untouched.
func Shuffle(terms []string, rng *rand.Rand) []string {
	out := append([]string(nil), terms...)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Candidates keeps the topN best-ranked terms and shuffles only those.
// topN <= 0 keeps every term.
func Candidates(ranked []Keyword, topN int, rng *rand.Rand) []string {
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return Shuffle(Terms(ranked), rng)
}
