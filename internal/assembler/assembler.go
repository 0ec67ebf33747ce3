// Package assembler turns a sentence pool and a keyword list into a quiz.
//
// Each format is filled by its own search run:
//
//	Searching --target reached--> Filled
//	Searching --keywords or attempt budget used up--> Exhausted
//	Exhausted --(MCQ only, RelaxMCQ)--> Searching (keyword reuse allowed)
package assembler

import (
	"math/rand"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/synth"
)

// State of a per-format search run.
type State int

const (
	Searching State = iota
	Filled
	Exhausted
)

func (s State) String() string {
	switch s {
	case Searching:
		return "searching"
	case Filled:
		return "filled"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

const DefaultNumQuestions = 5

// Options controls assembly.
type Options struct {
	NumQuestions int
	// MaxAttempts bounds synthesis calls per pass; 0 means keywords × sentences.
	MaxAttempts int
	// RelaxMCQ allows a second MCQ pass that may reuse answer keywords.
	RelaxMCQ bool
	MCQ      synth.MCQBuilder
}

// DefaultOptions returns five questions per format, four options per MCQ,
// with relaxation and the overlap filter on.
func DefaultOptions() Options {
	return Options{
		NumQuestions: DefaultNumQuestions,
		RelaxMCQ:     true,
		MCQ:          synth.NewMCQBuilder(),
	}
}

// Input is the material for one quiz.
type Input struct {
	// Sentences are the stems that passed the length filter.
	Sentences []string
	// Keywords are the candidate answers, already in selection order.
	Keywords []string
	// Pool supplies distractors; Keywords is used when empty.
	Pool []string
}

// RunReport describes how a format's search ended.
type RunReport struct {
	State    State `json:"-"`
	Items    int   `json:"items"`
	Attempts int   `json:"attempts"`
	Relaxed  bool  `json:"relaxed"`
}

// Report summarizes both runs of an Assemble call.
type Report struct {
	Cloze RunReport
	MCQ   RunReport
}

type run struct {
	state         State
	relaxed       bool
	target        int
	budget        int
	attempts      int
	totalAttempts int
	count         int
	usedSentences map[string]struct{}
	usedKeywords  map[string]struct{}
}

func newRun(target, budget int) *run {
	return &run{
		state:         Searching,
		target:        target,
		budget:        budget,
		usedSentences: make(map[string]struct{}),
		usedKeywords:  make(map[string]struct{}),
	}
}

func (r *run) report() RunReport {
	return RunReport{State: r.state, Items: r.count, Attempts: r.totalAttempts, Relaxed: r.relaxed}
}

// search performs one pass over the keywords. try is called once per
// attempted pairing and reports whether an item was recorded.
func (r *run) search(in Input, rng *rand.Rand, try func(sentence, keyword string) bool) {
	r.state = Searching
	r.attempts = 0

	for _, kw := range in.Keywords {
		if r.count >= r.target {
			break
		}
		if _, used := r.usedKeywords[kw]; used && !r.relaxed {
			continue
		}
		for _, idx := range rng.Perm(len(in.Sentences)) {
			sentence := in.Sentences[idx]
			if _, used := r.usedSentences[sentence]; used {
				continue
			}
			if r.attempts >= r.budget {
				r.state = Exhausted
				return
			}
			r.attempts++
			r.totalAttempts++
			if try(sentence, kw) {
				r.usedSentences[sentence] = struct{}{}
				r.usedKeywords[kw] = struct{}{}
				r.count++
				break
			}
		}
	}

	if r.count >= r.target {
		r.state = Filled
	} else {
		r.state = Exhausted
	}
}

// Assemble builds up to NumQuestions items per format. A short or empty
// result is a normal outcome for sparse documents. All randomness is drawn
// from rng, so a fixed seed reproduces the quiz exactly.
func Assemble(in Input, opts Options, rng *rand.Rand) (domain.Quiz, Report) {
	quiz := domain.NewEmptyQuiz()
	var report Report

	target := opts.NumQuestions
	if target <= 0 {
		target = DefaultNumQuestions
	}
	pool := in.Pool
	if len(pool) == 0 {
		pool = in.Keywords
	}
	budget := opts.MaxAttempts
	if budget <= 0 {
		budget = len(in.Keywords) * len(in.Sentences)
	}

	cloze := newRun(target, budget)
	cloze.search(in, rng, func(sentence, keyword string) bool {
		item, ok := synth.MakeCloze(sentence, keyword)
		if ok {
			quiz.Cloze = append(quiz.Cloze, item)
		}
		return ok
	})
	report.Cloze = cloze.report()

	mcq := newRun(target, budget)
	tryMCQ := func(sentence, keyword string) bool {
		item, ok := opts.MCQ.Build(sentence, keyword, pool, rng)
		if ok {
			quiz.MCQ = append(quiz.MCQ, item)
		}
		return ok
	}
	mcq.search(in, rng, tryMCQ)
	if mcq.state == Exhausted && opts.RelaxMCQ {
		mcq.relaxed = true
		mcq.search(in, rng, tryMCQ)
	}
	report.MCQ = mcq.report()

	if len(quiz.Cloze) > target {
		quiz.Cloze = quiz.Cloze[:target]
	}
	if len(quiz.MCQ) > target {
		quiz.MCQ = quiz.MCQ[:target]
	}
	return quiz, report
}
