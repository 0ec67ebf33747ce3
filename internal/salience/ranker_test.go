package salience

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const biology = "The mitochondria is the powerhouse of the cell. Photosynthesis converts light into chemical energy."

func TestTerms(t *testing.T) {
	got := terms("The cell, the cell wall; chemical energy!", englishStopWords, DefaultMinTermLen)
	assert.Equal(t, []string{"cell", "cell", "cell wall", "wall", "chemical", "chemical energy", "energy"}, got)
}

func TestTerms_SkipsBlankMarkerAndShortWords(t *testing.T) {
	got := terms("An _____ is at DNA level", englishStopWords, DefaultMinTermLen)
	assert.Equal(t, []string{"dna", "dna level", "level"}, got)
}

func TestRanker_RankText(t *testing.T) {
	ranked := NewRanker().RankText(biology)
	got := Terms(ranked)

	for _, want := range []string{"mitochondria", "powerhouse", "cell", "photosynthesis", "light", "chemical energy"} {
		assert.Contains(t, got, want)
	}
	for _, stop := range []string{"the", "is", "of", "into"} {
		assert.NotContains(t, got, stop)
	}
	// "light into chemical" is interrupted by a stop word.
	assert.NotContains(t, got, "light chemical")
}

func TestRanker_OrderByFrequencyAndIDF(t *testing.T) {
	corpus := []string{
		"Enzymes catalyse reactions.",
		"Enzymes lower activation energy.",
		"Enzymes are proteins.",
		"Substrates bind enzymes.",
		"Substrates bind tightly.",
	}
	ranked := NewRanker().Rank(corpus)
	require.NotEmpty(t, ranked)
	assert.Equal(t, "enzymes", ranked[0].Term)

	for i := 1; i < len(ranked); i++ {
		prev, cur := ranked[i-1], ranked[i]
		assert.True(t, prev.Score > cur.Score || (prev.Score == cur.Score && prev.Term < cur.Term),
			"ranking out of order at %d: %v then %v", i, prev, cur)
	}
}

func TestRanker_Deterministic(t *testing.T) {
	r := NewRanker()
	assert.Equal(t, r.RankText(biology), r.RankText(biology))
}

func TestRanker_Options(t *testing.T) {
	ranked := NewRanker(WithMaxFeatures(2)).RankText("alpha, alpha, alpha, beta, beta, gamma")
	assert.Equal(t, []string{"alpha", "beta"}, Terms(ranked))

	ranked = NewRanker(WithStopWords([]string{"alpha"}), WithMinTermLen(5)).RankText("alpha betas gamma")
	assert.Equal(t, []string{"betas", "betas gamma", "gamma"}, Terms(ranked))
}

func TestRanker_MaxFeaturesIsAlwaysCapped(t *testing.T) {
	words := make([]string, 300)
	for i := range words {
		words[i] = fmt.Sprintf("term%03d", i)
	}
	text := strings.Join(words, " ")

	for _, n := range []int{0, -1} {
		ranked := NewRanker(WithMaxFeatures(n)).RankText(text)
		assert.Len(t, ranked, DefaultMaxFeatures, "WithMaxFeatures(%d)", n)
	}
}

func TestRanker_EmptyInput(t *testing.T) {
	assert.Empty(t, NewRanker().RankText(""))
	assert.Empty(t, NewRanker().Rank(nil))
	assert.Empty(t, NewRanker().RankText("the of and is"))
}

func TestCandidates(t *testing.T) {
	ranked := []Keyword{
		{Term: "one", Score: 5}, {Term: "two", Score: 4}, {Term: "three", Score: 3},
		{Term: "four", Score: 2}, {Term: "five", Score: 1},
	}

	got := Candidates(ranked, 3, rand.New(rand.NewSource(7)))
	assert.ElementsMatch(t, []string{"one", "two", "three"}, got)

	again := Candidates(ranked, 3, rand.New(rand.NewSource(7)))
	assert.Equal(t, got, again)

	assert.Len(t, Candidates(ranked, 0, rand.New(rand.NewSource(1))), 5)
	assert.Len(t, Candidates(ranked, 50, rand.New(rand.NewSource(1))), 5)
}

func TestShuffle_DoesNotMutateInput(t *testing.T) {
	in := []string{"a", "b", "c", "d"}
	out := Shuffle(in, rand.New(rand.NewSource(3)))
	assert.Equal(t, []string{"a", "b", "c", "d"}, in)
	assert.ElementsMatch(t, in, out)
}

func TestIsStopWord(t *testing.T) {
	assert.True(t, IsStopWord("The"))
	assert.False(t, IsStopWord("mitochondria"))
}
