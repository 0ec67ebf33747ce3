package service

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"quiz-forge/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockQuizGenerator ---
type MockQuizGenerator struct {
	mock.Mock
}

func (m *MockQuizGenerator) GenerateFile(ctx context.Context, path string, numQuestions int, seed int64) (domain.Quiz, error) {
	args := m.Called(ctx, path, numQuestions, seed)
	return args.Get(0).(domain.Quiz), args.Error(1)
}

// --- ManualMockCache ---
type ManualMockCache struct {
	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key string, value string, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
	PingFunc   func(ctx context.Context) error
}

func (m *ManualMockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return "", errors.New("GetFunc not set")
}

func (m *ManualMockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	return errors.New("SetFunc not set")
}

func (m *ManualMockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	return errors.New("DeleteFunc not set")
}

func (m *ManualMockCache) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return errors.New("PingFunc not set")
}

// memoryCache is a map-backed domain.Cache for flows that touch several keys.
type memoryCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string]string)}
}

func (c *memoryCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return v, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memoryCache) Ping(ctx context.Context) error { return nil }

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
