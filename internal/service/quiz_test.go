package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var generatedQuiz = domain.Quiz{
	Cloze: []domain.ClozeItem{{Question: "The _____ stores DNA.", Answer: "nucleus"}},
	MCQ:   []domain.MCQItem{},
}

func newTestService(t *testing.T, gen domain.QuizGenerator, cache QuizCacheService) *quizService {
	t.Helper()
	svc := NewQuizService(gen, cache, t.TempDir()).(*quizService)
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	svc.newID = func() string { return testQuizID }
	svc.newSeed = func() int64 { return 77 }
	return svc
}

func seedPtr(v int64) *int64 { return &v }

func TestQuizService_GenerateFromUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("generates, stages with extension and caches", func(t *testing.T) {
		gen := &MockQuizGenerator{}
		cache := newMemoryCache()
		svc := newTestService(t, gen, NewQuizCacheService(cache, time.Hour, time.Hour))

		var stagedPath string
		gen.On("GenerateFile", ctx, mock.AnythingOfType("string"), 3, int64(77)).
			Run(func(args mock.Arguments) {
				stagedPath = args.String(1)
				assert.Equal(t, ".pdf", filepath.Ext(stagedPath))
				assert.True(t, fileExists(stagedPath))
			}).
			Return(generatedQuiz, nil).Once()

		resp, err := svc.GenerateFromUpload(ctx, &dto.GenerateQuizRequest{Filename: "Notes.PDF", NumQuestions: 3}, strings.NewReader("%PDF-1.4"))
		require.NoError(t, err)
		assert.Equal(t, testQuizID, resp.ID)
		assert.Equal(t, int64(77), resp.Seed)
		assert.Equal(t, "Notes.PDF", resp.Filename)
		assert.Len(t, resp.Cloze, 1)
		assert.NotNil(t, resp.MCQ)
		assert.False(t, fileExists(stagedPath), "staged upload must be removed")

		stored, err := svc.GetQuiz(ctx, testQuizID)
		require.NoError(t, err)
		assert.Equal(t, resp, stored)
		gen.AssertExpectations(t)
	})

	t.Run("seeded request is memoized by digest", func(t *testing.T) {
		gen := &MockQuizGenerator{}
		cache := newMemoryCache()
		svc := newTestService(t, gen, NewQuizCacheService(cache, time.Hour, time.Hour))
		gen.On("GenerateFile", ctx, mock.AnythingOfType("string"), 2, int64(9)).Return(generatedQuiz, nil).Once()

		req := &dto.GenerateQuizRequest{Filename: "cells.txt", NumQuestions: 2, Seed: seedPtr(9)}
		first, err := svc.GenerateFromUpload(ctx, req, strings.NewReader("same body"))
		require.NoError(t, err)

		svc.newID = func() string { return "01HZX3J5V6Q8W9ZK4M2N7P0R1T" }
		second, err := svc.GenerateFromUpload(ctx, req, strings.NewReader("same body"))
		require.NoError(t, err)
		assert.Equal(t, first, second)
		gen.AssertNumberOfCalls(t, "GenerateFile", 1)
	})

	t.Run("unsupported extension never reaches the generator", func(t *testing.T) {
		gen := &MockQuizGenerator{}
		svc := newTestService(t, gen, nil)

		_, err := svc.GenerateFromUpload(ctx, &dto.GenerateQuizRequest{Filename: "slides.pptx", NumQuestions: 5}, strings.NewReader("x"))
		assert.ErrorIs(t, err, &domain.DomainError{Code: domain.CodeUnsupportedFormat})
		gen.AssertNotCalled(t, "GenerateFile")
	})

	t.Run("extraction failure reports client filename", func(t *testing.T) {
		gen := &MockQuizGenerator{}
		svc := newTestService(t, gen, nil)
		extractionErr := domain.NewExtractionError("/tmp/upload-1.docx", errors.New("zip: not a valid zip file"))
		gen.On("GenerateFile", ctx, mock.AnythingOfType("string"), 5, int64(77)).Return(domain.NewEmptyQuiz(), extractionErr)

		_, err := svc.GenerateFromUpload(ctx, &dto.GenerateQuizRequest{Filename: "essay.docx", NumQuestions: 5}, strings.NewReader("junk"))
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeExtractionFailed, domainErr.Code)
		assert.Equal(t, "essay.docx", domainErr.Context["file"])
	})

	t.Run("cache failure still returns the quiz", func(t *testing.T) {
		gen := &MockQuizGenerator{}
		failing := &ManualMockCache{
			SetFunc: func(ctx context.Context, key string, value string, ttl time.Duration) error {
				return errors.New("redis down")
			},
		}
		svc := newTestService(t, gen, NewQuizCacheService(failing, time.Hour, time.Hour))
		gen.On("GenerateFile", ctx, mock.AnythingOfType("string"), 1, int64(77)).Return(generatedQuiz, nil)

		resp, err := svc.GenerateFromUpload(ctx, &dto.GenerateQuizRequest{Filename: "a.txt", NumQuestions: 1}, strings.NewReader("text"))
		require.NoError(t, err)
		assert.Equal(t, testQuizID, resp.ID)
	})

	t.Run("nil request", func(t *testing.T) {
		svc := newTestService(t, &MockQuizGenerator{}, nil)
		_, err := svc.GenerateFromUpload(ctx, nil, strings.NewReader(""))
		assert.ErrorIs(t, err, &domain.DomainError{Code: domain.CodeInvalidInput})
	})
}

func TestQuizService_GetQuiz(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		svc := newTestService(t, &MockQuizGenerator{}, NewQuizCacheService(newMemoryCache(), time.Hour, time.Hour))
		_, err := svc.GetQuiz(ctx, testQuizID)
		assert.ErrorIs(t, err, &domain.DomainError{Code: domain.CodeQuizNotFound})
	})

	t.Run("without cache nothing is found", func(t *testing.T) {
		svc := newTestService(t, &MockQuizGenerator{}, NewQuizCacheService(nil, time.Hour, time.Hour))
		_, err := svc.GetQuiz(ctx, testQuizID)
		assert.ErrorIs(t, err, &domain.DomainError{Code: domain.CodeQuizNotFound})
		assert.Equal(t, CacheStatusDisabled, svc.CacheStatus(ctx))
	})

	t.Run("cache error is internal", func(t *testing.T) {
		broken := &ManualMockCache{GetFunc: func(ctx context.Context, key string) (string, error) {
			return "", errors.New("timeout")
		}}
		svc := newTestService(t, &MockQuizGenerator{}, NewQuizCacheService(broken, time.Hour, time.Hour))
		_, err := svc.GetQuiz(ctx, testQuizID)
		assert.ErrorIs(t, err, &domain.DomainError{Code: domain.CodeInternal})
	})
}
