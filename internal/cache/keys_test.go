package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "generated quiz",
			serviceName: "quiz",
			objectType:  "generated",
			identifier:  "01HZX3J5V6Q8W9ZK4M2N7P0R1S",
			expectedKey: "quizforge:quiz:generated:01HZX3J5V6Q8W9ZK4M2N7P0R1S",
		},
		{
			name:        "empty params are ignored",
			serviceName: "quiz",
			objectType:  "generated",
			identifier:  "abc",
			paramsKey:   []string{},
			expectedKey: "quizforge:quiz:generated:abc",
		},
		{
			name:        "digest with count and seed",
			serviceName: "quiz",
			objectType:  "digest",
			identifier:  "9f86d081",
			paramsKey:   []string{"5", "42"},
			expectedKey: "quizforge:quiz:digest:9f86d081:5_42",
		},
		{
			name:        "params with separators",
			serviceName: "service",
			objectType:  "type",
			identifier:  "id",
			paramsKey:   []string{"param-1", "param_2"},
			expectedKey: "quizforge:service:type:id:param-1_param_2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedKey, GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...))
		})
	}
}
