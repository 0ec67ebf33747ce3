package util

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewULID returns a lexicographically sortable identifier for a generated quiz.
// IDs minted within the same millisecond stay strictly increasing.
func NewULID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// IsULID reports whether s is a well-formed ULID string.
func IsULID(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}
