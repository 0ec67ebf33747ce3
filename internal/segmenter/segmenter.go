// Package segmenter splits document text into sentences suitable as quiz stems.
package segmenter

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// Default length band, in runes. Both bounds are exclusive.
const (
	DefaultMinLen = 25
	DefaultMaxLen = 200
)

// Segmenter wraps an English Punkt tokenizer. It is safe for concurrent use.
type Segmenter struct {
	mu        *sync.Mutex
	tokenizer *sentences.DefaultSentenceTokenizer
	minLen    int
	maxLen    int
}

var (
	shared     *Segmenter
	sharedErr  error
	sharedOnce sync.Once
)

// Default returns a process-wide segmenter with the default band. The Punkt
// training data is parsed once.
func Default() (*Segmenter, error) {
	sharedOnce.Do(func() {
		shared, sharedErr = New(DefaultMinLen, DefaultMaxLen)
	})
	return shared, sharedErr
}

// New builds a segmenter keeping sentences strictly longer than minLen and
// strictly shorter than maxLen runes.
func New(minLen, maxLen int) (*Segmenter, error) {
	if minLen < 0 || maxLen <= minLen {
		return nil, fmt.Errorf("invalid sentence length band (%d, %d)", minLen, maxLen)
	}
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("load punkt tokenizer: %w", err)
	}
	return &Segmenter{mu: &sync.Mutex{}, tokenizer: tokenizer, minLen: minLen, maxLen: maxLen}, nil
}

// WithBand returns a segmenter sharing the tokenizer but using another band.
func (s *Segmenter) WithBand(minLen, maxLen int) (*Segmenter, error) {
	if minLen < 0 || maxLen <= minLen {
		return nil, fmt.Errorf("invalid sentence length band (%d, %d)", minLen, maxLen)
	}
	return &Segmenter{mu: s.mu, tokenizer: s.tokenizer, minLen: minLen, maxLen: maxLen}, nil
}

// Split returns every non-empty sentence in text order, trimmed and with
// internal whitespace collapsed to single spaces.
func (s *Segmenter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	s.mu.Lock()
	tokens := s.tokenizer.Tokenize(text)
	s.mu.Unlock()

	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		sent := strings.Join(strings.Fields(tok.Text), " ")
		if sent == "" {
			continue
		}
		out = append(out, sent)
	}
	return out
}

// Segment returns the sentences of text whose length falls inside the band.
func (s *Segmenter) Segment(text string) []string {
	return s.Filter(s.Split(text))
}

// Filter keeps the sentences whose rune length falls inside the band.
func (s *Segmenter) Filter(sents []string) []string {
	out := make([]string, 0, len(sents))
	for _, sent := range sents {
		if s.InBand(sent) {
			out = append(out, sent)
		}
	}
	return out
}

// InBand reports whether the trimmed sentence length is inside the band.
func (s *Segmenter) InBand(sent string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(sent))
	return n > s.minLen && n < s.maxLen
}
