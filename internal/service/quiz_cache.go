package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"quiz-forge/internal/cache"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/logger"

	"go.uber.org/zap"
)

// ErrQuizNotCached is returned when no stored quiz exists for a key.
var ErrQuizNotCached = errors.New("quiz not found in cache")

// Cache status values reported by QuizCacheService.Status.
const (
	CacheStatusOK          = "ok"
	CacheStatusUnavailable = "unavailable"
	CacheStatusDisabled    = "disabled"
)

// QuizCacheService stores generated quizzes by ID and remembers which quiz a
// seeded request produced, keyed by document digest.
type QuizCacheService interface {
	PutQuiz(ctx context.Context, quiz *dto.QuizResponse) error
	GetQuiz(ctx context.Context, id string) (*dto.QuizResponse, error)
	PutDigest(ctx context.Context, digest string, numQuestions int, seed int64, quizID string) error
	GetDigest(ctx context.Context, digest string, numQuestions int, seed int64) (string, error)
	Status(ctx context.Context) string
}

type quizCacheServiceImpl struct {
	cache     domain.Cache
	quizTTL   time.Duration
	digestTTL time.Duration
}

// NewQuizCacheService returns a no-op service when cache is nil.
func NewQuizCacheService(cache domain.Cache, quizTTL, digestTTL time.Duration) QuizCacheService {
	if cache == nil {
		logger.Get().Warn("QuizCacheService initialized with nil cache. Generated quizzes will not be stored.")
		return &noopQuizCacheService{}
	}
	return &quizCacheServiceImpl{
		cache:     cache,
		quizTTL:   quizTTL,
		digestTTL: digestTTL,
	}
}

func quizKey(id string) string {
	return cache.GenerateCacheKey("quiz", "generated", id)
}

func digestKey(digest string, numQuestions int, seed int64) string {
	return cache.GenerateCacheKey("quiz", "digest", digest, strconv.Itoa(numQuestions), strconv.FormatInt(seed, 10))
}

func (s *quizCacheServiceImpl) PutQuiz(ctx context.Context, quiz *dto.QuizResponse) error {
	if quiz == nil || quiz.ID == "" {
		return domain.NewInvalidInputError("cannot cache a quiz without an ID")
	}

	key := quizKey(quiz.ID)
	data, err := json.Marshal(quiz)
	if err != nil {
		return domain.NewInternalError("failed to marshal quiz for caching", err)
	}
	if err := s.cache.Set(ctx, key, string(data), s.quizTTL); err != nil {
		logger.Get().Error("Failed to cache quiz", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to set quiz to cache for key %s", key), err)
	}
	logger.Get().Debug("Cached generated quiz", zap.String("key", key), zap.Duration("ttl", s.quizTTL))
	return nil
}

func (s *quizCacheServiceImpl) GetQuiz(ctx context.Context, id string) (*dto.QuizResponse, error) {
	key := quizKey(id)
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Debug("Quiz cache miss", zap.String("key", key))
			return nil, ErrQuizNotCached
		}
		logger.Get().Error("Failed to get quiz from cache", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to get quiz from cache for key %s", key), err)
	}
	if data == "" {
		return nil, ErrQuizNotCached
	}

	var quiz dto.QuizResponse
	if err := json.Unmarshal([]byte(data), &quiz); err != nil {
		logger.Get().Error("Failed to unmarshal cached quiz", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to unmarshal quiz from cache for key %s", key), err)
	}
	return &quiz, nil
}

func (s *quizCacheServiceImpl) PutDigest(ctx context.Context, digest string, numQuestions int, seed int64, quizID string) error {
	key := digestKey(digest, numQuestions, seed)
	if err := s.cache.Set(ctx, key, quizID, s.digestTTL); err != nil {
		return domain.NewInternalError(fmt.Sprintf("failed to set digest for key %s", key), err)
	}
	return nil
}

func (s *quizCacheServiceImpl) GetDigest(ctx context.Context, digest string, numQuestions int, seed int64) (string, error) {
	key := digestKey(digest, numQuestions, seed)
	id, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return "", ErrQuizNotCached
		}
		return "", domain.NewInternalError(fmt.Sprintf("failed to get digest for key %s", key), err)
	}
	if id == "" {
		return "", ErrQuizNotCached
	}
	return id, nil
}

func (s *quizCacheServiceImpl) Status(ctx context.Context) string {
	if err := s.cache.Ping(ctx); err != nil {
		logger.Get().Warn("Cache ping failed", zap.Error(err))
		return CacheStatusUnavailable
	}
	return CacheStatusOK
}

// noopQuizCacheService is used when Redis is not configured.
type noopQuizCacheService struct{}

func (s *noopQuizCacheService) PutQuiz(ctx context.Context, quiz *dto.QuizResponse) error {
	return nil
}

func (s *noopQuizCacheService) GetQuiz(ctx context.Context, id string) (*dto.QuizResponse, error) {
	return nil, ErrQuizNotCached
}

func (s *noopQuizCacheService) PutDigest(ctx context.Context, digest string, numQuestions int, seed int64, quizID string) error {
	return nil
}

func (s *noopQuizCacheService) GetDigest(ctx context.Context, digest string, numQuestions int, seed int64) (string, error) {
	return "", ErrQuizNotCached
}

func (s *noopQuizCacheService) Status(ctx context.Context) string {
	return CacheStatusDisabled
}
