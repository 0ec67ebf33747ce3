package dto

import (
	"time"

	"quiz-forge/internal/domain"
)

// GenerateQuizRequest carries the parsed form fields of an upload.
type GenerateQuizRequest struct {
	Filename     string `json:"filename"`
	NumQuestions int    `json:"num_questions"`
	Seed         *int64 `json:"seed,omitempty"`
}

// QuizResponse represents a generated quiz in the API response
// @Description Generated quiz with cloze and multiple-choice items
type QuizResponse struct {
	ID           string      `json:"id"`
	Filename     string      `json:"filename"`
	Seed         int64       `json:"seed"`
	NumQuestions int         `json:"num_questions"`
	Cloze        []ClozeItem `json:"cloze"`
	MCQ          []MCQItem   `json:"mcq"`
	CreatedAt    time.Time   `json:"created_at"`
}

// ClozeItem is a fill-in-the-blank question
// @Description Sentence with one blanked keyword
type ClozeItem struct {
	Question string `json:"question" example:"The _____ is the powerhouse of the cell."`
	Answer   string `json:"answer" example:"mitochondria"`
}

// MCQItem is a multiple-choice question
type MCQItem struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Options  []string `json:"options"`
}

// HealthResponse reports process and cache health
type HealthResponse struct {
	Status string `json:"status"`
	Cache  string `json:"cache"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewQuizResponse converts a domain quiz into its API shape. Item slices are
// never nil so empty quizzes serialize as [] rather than null.
func NewQuizResponse(id, filename string, seed int64, numQuestions int, quiz domain.Quiz, createdAt time.Time) *QuizResponse {
	resp := &QuizResponse{
		ID:           id,
		Filename:     filename,
		Seed:         seed,
		NumQuestions: numQuestions,
		Cloze:        make([]ClozeItem, 0, len(quiz.Cloze)),
		MCQ:          make([]MCQItem, 0, len(quiz.MCQ)),
		CreatedAt:    createdAt,
	}
	for _, item := range quiz.Cloze {
		resp.Cloze = append(resp.Cloze, ClozeItem{Question: item.Question, Answer: item.Answer})
	}
	for _, item := range quiz.MCQ {
		options := make([]string, len(item.Options))
		copy(options, item.Options)
		resp.MCQ = append(resp.MCQ, MCQItem{Question: item.Question, Answer: item.Answer, Options: options})
	}
	return resp
}
