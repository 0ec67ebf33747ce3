package domain

import "strings"

// BlankMarker is the placeholder substituted for the answer in a cloze question.
const BlankMarker = "_____"

// ClozeItem is a fill-in-the-blank question.
type ClozeItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// MCQItem is a multiple-choice question with the answer among its options.
type MCQItem struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Options  []string `json:"options"`
}

// Quiz holds the generated items per format. Either slice may hold fewer
// items than requested when the source document is too sparse.
type Quiz struct {
	Cloze []ClozeItem `json:"cloze"`
	MCQ   []MCQItem   `json:"mcq"`
}

// NewEmptyQuiz returns a quiz whose slices encode as [] rather than null.
func NewEmptyQuiz() Quiz {
	return Quiz{
		Cloze: []ClozeItem{},
		MCQ:   []MCQItem{},
	}
}

// IsEmpty reports whether the quiz holds no items at all.
func (q Quiz) IsEmpty() bool {
	return len(q.Cloze) == 0 && len(q.MCQ) == 0
}

// Validate checks the structural invariants of a multiple-choice item.
func (m MCQItem) Validate() error {
	if m.Question == "" {
		return NewValidationError("question is required")
	}
	if len(m.Options) < 2 {
		return NewValidationError("at least two options are required")
	}
	seen := make(map[string]struct{}, len(m.Options))
	hasAnswer := false
	for _, opt := range m.Options {
		key := strings.ToLower(opt)
		if _, dup := seen[key]; dup {
			return NewValidationError("duplicate option: " + opt)
		}
		seen[key] = struct{}{}
		if opt == m.Answer {
			hasAnswer = true
		}
	}
	if !hasAnswer {
		return NewValidationError("answer must be one of the options")
	}
	return nil
}

// Validate checks that a cloze item carries exactly one blank.
func (c ClozeItem) Validate() error {
	if c.Answer == "" {
		return NewValidationError("answer is required")
	}
	if strings.Count(c.Question, BlankMarker) != 1 {
		return NewValidationError("question must contain exactly one blank")
	}
	return nil
}
