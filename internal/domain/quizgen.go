package domain

import "context"

// QuizGenerator builds a quiz from a document on disk. The same file,
// question count and seed must always produce the same quiz.
type QuizGenerator interface {
	GenerateFile(ctx context.Context, path string, numQuestions int, seed int64) (Quiz, error)
}
