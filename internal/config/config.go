package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Redis      RedisConfig
	Logger     LoggerConfig
	Generation GenerationConfig
	CacheTTLs  CacheTTLConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int // bytes accepted for one upload
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type LoggerConfig struct {
	Level string `yaml:"level"`
	Env   string `yaml:"env"` // "production" selects the JSON encoder
}

// GenerationConfig holds the quiz pipeline tunables.
type GenerationConfig struct {
	NumQuestions      int  `yaml:"num_questions"`
	MaxQuestions      int  `yaml:"max_questions"`
	NumOptions        int  `yaml:"num_options"`
	MinSentenceLen    int  `yaml:"min_sentence_len"`
	MaxSentenceLen    int  `yaml:"max_sentence_len"`
	KeywordMultiplier int  `yaml:"keyword_multiplier"`
	MaxFeatures       int  `yaml:"max_features"`
	MaxAttempts       int  `yaml:"max_attempts"`
	RelaxMCQ          bool `yaml:"relax_mcq"`
	FilterOverlap     bool `yaml:"filter_overlap"`
}

// CacheTTLConfig holds TTL strings such as "24h" or "30m".
type CacheTTLConfig struct {
	Quiz   string `yaml:"quiz"`
	Digest string `yaml:"digest"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.body_limit", 20*1024*1024)

	v.SetDefault("redis.address", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")

	v.SetDefault("generation.num_questions", 5)
	v.SetDefault("generation.max_questions", 20)
	v.SetDefault("generation.num_options", 4)
	v.SetDefault("generation.min_sentence_len", 25)
	v.SetDefault("generation.max_sentence_len", 200)
	v.SetDefault("generation.keyword_multiplier", 3)
	v.SetDefault("generation.max_features", 200)
	v.SetDefault("generation.max_attempts", 0)
	v.SetDefault("generation.relax_mcq", true)
	v.SetDefault("generation.filter_overlap", true)

	v.SetDefault("cache_ttls.quiz", "24h")
	v.SetDefault("cache_ttls.digest", "1h")
}

// LoadConfig reads config.yaml from the working directory or ./config.
// A missing file is not an error; defaults and environment variables apply.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", absPath)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
			BodyLimit:    v.GetInt("server.body_limit"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		Generation: GenerationConfig{
			NumQuestions:      v.GetInt("generation.num_questions"),
			MaxQuestions:      v.GetInt("generation.max_questions"),
			NumOptions:        v.GetInt("generation.num_options"),
			MinSentenceLen:    v.GetInt("generation.min_sentence_len"),
			MaxSentenceLen:    v.GetInt("generation.max_sentence_len"),
			KeywordMultiplier: v.GetInt("generation.keyword_multiplier"),
			MaxFeatures:       v.GetInt("generation.max_features"),
			MaxAttempts:       v.GetInt("generation.max_attempts"),
			RelaxMCQ:          v.GetBool("generation.relax_mcq"),
			FilterOverlap:     v.GetBool("generation.filter_overlap"),
		},
		CacheTTLs: CacheTTLConfig{
			Quiz:   v.GetString("cache_ttls.quiz"),
			Digest: v.GetString("cache_ttls.digest"),
		},
	}

	// Override with environment variables if set
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Server.Port = v.GetInt("server.port")
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		cfg.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		cfg.Redis.Password = redisPassword
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Logger.Level = level
	}
	if env := os.Getenv("APP_ENV"); env != "" {
		cfg.Logger.Env = env
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	g := c.Generation
	if g.MaxQuestions < 1 {
		return fmt.Errorf("generation.max_questions must be positive, got %d", g.MaxQuestions)
	}
	if g.NumQuestions < 1 || g.NumQuestions > g.MaxQuestions {
		return fmt.Errorf("generation.num_questions must be between 1 and %d, got %d", g.MaxQuestions, g.NumQuestions)
	}
	if g.NumOptions < 2 {
		return fmt.Errorf("generation.num_options must be at least 2, got %d", g.NumOptions)
	}
	if g.MaxFeatures < 1 {
		return fmt.Errorf("generation.max_features must be positive, got %d", g.MaxFeatures)
	}
	if g.KeywordMultiplier < 1 {
		return fmt.Errorf("generation.keyword_multiplier must be positive, got %d", g.KeywordMultiplier)
	}
	if g.MinSentenceLen < 0 || g.MinSentenceLen >= g.MaxSentenceLen {
		return fmt.Errorf("invalid sentence band (%d, %d)", g.MinSentenceLen, g.MaxSentenceLen)
	}
	return nil
}

// ParseTTLStringOrDefault parses a duration string, falling back to
// defaultTTL when it is empty, malformed or not positive.
func (c *Config) ParseTTLStringOrDefault(ttlString string, defaultTTL time.Duration) time.Duration {
	if ttlString == "" {
		return defaultTTL
	}
	duration, err := time.ParseDuration(ttlString)
	if err != nil || duration <= 0 {
		return defaultTTL
	}
	return duration
}
