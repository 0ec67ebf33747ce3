package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewULID(t *testing.T) {
	prev := ""
	for i := 0; i < 100; i++ {
		id := NewULID()
		assert.Len(t, id, 26)
		assert.True(t, IsULID(id))
		assert.Greater(t, id, prev)
		prev = id
	}
}

func TestIsULID(t *testing.T) {
	assert.True(t, IsULID("01HZX3J5V6Q8W9ZK4M2N7P0R1S"))
	assert.False(t, IsULID(""))
	assert.False(t, IsULID("not-a-ulid"))
	assert.False(t, IsULID("01HZX3J5V6Q8W9ZK4M2N7P0R1"))
}
