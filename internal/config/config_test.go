package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ENV", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 5, cfg.Generation.NumQuestions)
	assert.Equal(t, 20, cfg.Generation.MaxQuestions)
	assert.Equal(t, 4, cfg.Generation.NumOptions)
	assert.Equal(t, 25, cfg.Generation.MinSentenceLen)
	assert.Equal(t, 200, cfg.Generation.MaxSentenceLen)
	assert.True(t, cfg.Generation.RelaxMCQ)
	assert.True(t, cfg.Generation.FilterOverlap)
	assert.Empty(t, cfg.Redis.Address)
	assert.Equal(t, "24h", cfg.CacheTTLs.Quiz)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  port: 9000
generation:
  num_questions: 7
  num_options: 3
logger:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	chdir(t, dir)
	t.Setenv("ENV", "")
	t.Setenv("REDIS_ADDRESS", "cache:6379")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 7, cfg.Generation.NumQuestions)
	assert.Equal(t, 3, cfg.Generation.NumOptions)
	assert.Equal(t, "cache:6379", cfg.Redis.Address)
	assert.Equal(t, "warn", cfg.Logger.Level)
}

func TestLoadConfig_InvalidGeneration(t *testing.T) {
	dir := t.TempDir()
	yaml := "generation:\n  min_sentence_len: 300\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	chdir(t, dir)
	t.Setenv("ENV", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{Generation: GenerationConfig{
			NumQuestions: 5, MaxQuestions: 20, NumOptions: 4, MinSentenceLen: 25, MaxSentenceLen: 200,
			KeywordMultiplier: 3, MaxFeatures: 200,
		}}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "zero max questions", mutate: func(c *Config) { c.Generation.MaxQuestions = 0 }, wantErr: true},
		{name: "num questions above max", mutate: func(c *Config) { c.Generation.NumQuestions = 21 }, wantErr: true},
		{name: "single option", mutate: func(c *Config) { c.Generation.NumOptions = 1 }, wantErr: true},
		{name: "inverted band", mutate: func(c *Config) { c.Generation.MinSentenceLen = 200 }, wantErr: true},
		{name: "zero max features", mutate: func(c *Config) { c.Generation.MaxFeatures = 0 }, wantErr: true},
		{name: "negative max features", mutate: func(c *Config) { c.Generation.MaxFeatures = -5 }, wantErr: true},
		{name: "zero keyword multiplier", mutate: func(c *Config) { c.Generation.KeywordMultiplier = 0 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestParseTTLStringOrDefault(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, 2*time.Hour, cfg.ParseTTLStringOrDefault("2h", time.Minute))
	assert.Equal(t, time.Minute, cfg.ParseTTLStringOrDefault("", time.Minute))
	assert.Equal(t, time.Minute, cfg.ParseTTLStringOrDefault("soon", time.Minute))
	assert.Equal(t, time.Minute, cfg.ParseTTLStringOrDefault("-5m", time.Minute))
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir in Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
