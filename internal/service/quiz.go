package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/extractor"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	GenerateFromUpload(ctx context.Context, req *dto.GenerateQuizRequest, content io.Reader) (*dto.QuizResponse, error)
	GetQuiz(ctx context.Context, id string) (*dto.QuizResponse, error)
	CacheStatus(ctx context.Context) string
}

// quizService implements QuizService
type quizService struct {
	generator domain.QuizGenerator
	cache     QuizCacheService
	tempDir   string
	inflight  singleflight.Group

	now     func() time.Time
	newID   func() string
	newSeed func() int64
}

// NewQuizService creates a quiz service. Uploads are staged in tempDir, or
// the OS temp directory when empty.
func NewQuizService(generator domain.QuizGenerator, quizCache QuizCacheService, tempDir string) QuizService {
	if quizCache == nil {
		quizCache = &noopQuizCacheService{}
	}
	return &quizService{
		generator: generator,
		cache:     quizCache,
		tempDir:   tempDir,
		now:       time.Now,
		newID:     util.NewULID,
		newSeed:   func() int64 { return rand.Int63() },
	}
}

// GenerateFromUpload stages the uploaded document on disk and runs the
// generator over it. Requests that carry a seed are memoized by document
// digest, so repeating one returns the stored quiz.
func (s *quizService) GenerateFromUpload(ctx context.Context, req *dto.GenerateQuizRequest, content io.Reader) (*dto.QuizResponse, error) {
	if req == nil || content == nil {
		return nil, domain.NewInvalidInputError("upload is required")
	}
	format, err := extractor.FormatFromPath(req.Filename)
	if err != nil {
		return nil, err
	}

	path, digest, err := s.stage(content, string(format))
	if err != nil {
		return nil, err
	}
	defer func() {
		if rmErr := os.Remove(path); rmErr != nil {
			logger.Get().Warn("Failed to remove staged upload", zap.String("path", path), zap.Error(rmErr))
		}
	}()

	seed := s.newSeed()
	if req.Seed != nil {
		seed = *req.Seed
		if cached := s.lookupDigest(ctx, digest, req.NumQuestions, seed); cached != nil {
			return cached, nil
		}
	}

	if req.Seed == nil {
		return s.generate(ctx, req, path, digest, seed)
	}
	// Identical seeded uploads in flight share one generation.
	v, err, _ := s.inflight.Do(digestKey(digest, req.NumQuestions, seed), func() (interface{}, error) {
		return s.generate(ctx, req, path, digest, seed)
	})
	if err != nil {
		return nil, err
	}
	return v.(*dto.QuizResponse), nil
}

func (s *quizService) generate(ctx context.Context, req *dto.GenerateQuizRequest, path, digest string, seed int64) (*dto.QuizResponse, error) {
	quiz, err := s.generator.GenerateFile(ctx, path, req.NumQuestions, seed)
	if err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) && domainErr.Context != nil {
			// Report the client's filename, not the staging path.
			domainErr.Context["file"] = req.Filename
		}
		logger.Get().Warn("Quiz generation failed", zap.String("filename", req.Filename), zap.Error(err))
		return nil, err
	}

	resp := dto.NewQuizResponse(s.newID(), req.Filename, seed, req.NumQuestions, quiz, s.now().UTC())
	logger.Get().Info("Generated quiz",
		zap.String("id", resp.ID),
		zap.String("filename", req.Filename),
		zap.Int("num_questions", req.NumQuestions),
		zap.Int("cloze", len(resp.Cloze)),
		zap.Int("mcq", len(resp.MCQ)),
	)

	if err := s.cache.PutQuiz(ctx, resp); err != nil {
		logger.Get().Warn("Generated quiz was not cached", zap.String("id", resp.ID), zap.Error(err))
		return resp, nil
	}
	if req.Seed != nil {
		if err := s.cache.PutDigest(ctx, digest, req.NumQuestions, seed, resp.ID); err != nil {
			logger.Get().Warn("Failed to record quiz digest", zap.String("id", resp.ID), zap.Error(err))
		}
	}
	return resp, nil
}

// GetQuiz returns a previously generated quiz.
func (s *quizService) GetQuiz(ctx context.Context, id string) (*dto.QuizResponse, error) {
	quiz, err := s.cache.GetQuiz(ctx, id)
	if errors.Is(err, ErrQuizNotCached) {
		return nil, domain.NewQuizNotFoundError(id)
	}
	if err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *quizService) CacheStatus(ctx context.Context) string {
	return s.cache.Status(ctx)
}

// stage copies the upload into a temp file named with the upload's
// extension and returns its path and SHA-256 digest.
func (s *quizService) stage(content io.Reader, ext string) (string, string, error) {
	f, err := os.CreateTemp(s.tempDir, "upload-*."+strings.ToLower(ext))
	if err != nil {
		return "", "", domain.NewInternalError("failed to stage upload", err)
	}
	path := f.Name()

	hash := sha256.New()
	if _, err := io.Copy(io.MultiWriter(f, hash), content); err != nil {
		f.Close()
		os.Remove(path)
		return "", "", domain.NewInternalError("failed to read upload", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", "", domain.NewInternalError("failed to stage upload", err)
	}
	return filepath.Clean(path), hex.EncodeToString(hash.Sum(nil)), nil
}

func (s *quizService) lookupDigest(ctx context.Context, digest string, numQuestions int, seed int64) *dto.QuizResponse {
	id, err := s.cache.GetDigest(ctx, digest, numQuestions, seed)
	if err != nil {
		return nil
	}
	quiz, err := s.cache.GetQuiz(ctx, id)
	if err != nil {
		return nil
	}
	logger.Get().Debug("Serving memoized quiz", zap.String("id", id), zap.Int64("seed", seed))
	return quiz
}
