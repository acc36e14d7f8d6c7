// Package config defines configuration parsing and helpers.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/fairyhunter13/resume-screener/internal/domain"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"dev"`
	Port   int    `env:"PORT" envDefault:"8080"`

	// Embedding provider. When the API key is empty the service falls back
	// to the deterministic local embedder, which needs no network access.
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL   string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	EmbeddingsModel string `env:"EMBEDDINGS_MODEL" envDefault:"text-embedding-3-small"`
	// EmbeddingDim is the dimensionality of the local fallback embedder.
	EmbeddingDim   int `env:"EMBEDDING_DIM" envDefault:"384"`
	EmbedCacheSize int `env:"EMBED_CACHE_SIZE" envDefault:"2048"`

	// TikaURL specifies the base URL for the Apache Tika server used for
	// PDF/DOCX text extraction.
	TikaURL string `env:"TIKA_URL" envDefault:"http://tika:9998"`

	// RedisURL enables the Redis token-bucket rate limiter when set.
	RedisURL string `env:"REDIS_URL"`

	// SkillVocabPath points to a YAML vocabulary file; empty means the
	// built-in vocabulary with substring matching.
	SkillVocabPath string `env:"SKILL_VOCAB_PATH"`

	// Scoring weights. Not required to sum to 1; no normalization is
	// performed and the final score scale follows whatever the caller sets.
	WeightSemantic   float64 `env:"WEIGHT_SEMANTIC" envDefault:"0.5"`
	WeightSkill      float64 `env:"WEIGHT_SKILL" envDefault:"0.35"`
	WeightExperience float64 `env:"WEIGHT_EXPERIENCE" envDefault:"0.15"`

	// Tier thresholds. They live on the same scale as the final score and
	// are not clamped to it; scale consistency is the caller's concern.
	ThresholdStrong     float64 `env:"THRESHOLD_STRONG" envDefault:"75.0"`
	ThresholdBorderline float64 `env:"THRESHOLD_BORDERLINE" envDefault:"55.0"`

	// ScoreConcurrency bounds the per-candidate scoring worker pool.
	ScoreConcurrency int `env:"SCORE_CONCURRENCY" envDefault:"4"`

	MaxUploadMB           int64         `env:"MAX_UPLOAD_MB" envDefault:"10"`
	CORSAllowOrigins      string        `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
	RateLimitPerMin       int           `env:"RATE_LIMIT_PER_MIN" envDefault:"30"`
	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	HTTPReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	HTTPWriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	HTTPIdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`

	OTLPEndpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	OTELServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"resume-screener"`

	// Embed Backoff Configuration (retries live in the embeddings adapter
	// only; the screening pipeline itself never retries).
	EmbedBackoffMaxElapsedTime  time.Duration `env:"EMBED_BACKOFF_MAX_ELAPSED_TIME" envDefault:"60s"`
	EmbedBackoffInitialInterval time.Duration `env:"EMBED_BACKOFF_INITIAL_INTERVAL" envDefault:"1s"`
	EmbedBackoffMaxInterval     time.Duration `env:"EMBED_BACKOFF_MAX_INTERVAL" envDefault:"10s"`
	EmbedBackoffMultiplier      float64       `env:"EMBED_BACKOFF_MULTIPLIER" envDefault:"1.5"`
}

// Load parses environment variables into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("op=config.Load: %w", err)
	}
	return cfg, nil
}

// IsDev reports whether the app is running in development mode.
func (c Config) IsDev() bool { return strings.ToLower(c.AppEnv) == "dev" }

// IsProd reports whether the app is running in production mode.
func (c Config) IsProd() bool { return strings.ToLower(c.AppEnv) == "prod" }

// IsTest reports whether the app is running in test mode.
func (c Config) IsTest() bool { return strings.ToLower(c.AppEnv) == "test" }

// Weights returns the configured score weight triple.
func (c Config) Weights() domain.ScoreWeights {
	return domain.ScoreWeights{Semantic: c.WeightSemantic, Skill: c.WeightSkill, Experience: c.WeightExperience}
}

// Thresholds returns the configured tier cutoffs.
func (c Config) Thresholds() domain.Thresholds {
	return domain.Thresholds{Strong: c.ThresholdStrong, Borderline: c.ThresholdBorderline}
}

// GetEmbedBackoffConfig returns backoff settings appropriate for the current
// environment. Test environments use short intervals for fast execution.
func (c Config) GetEmbedBackoffConfig() (maxElapsedTime, initialInterval, maxInterval time.Duration, multiplier float64) {
	if c.IsTest() {
		return 2 * time.Second, 50 * time.Millisecond, 500 * time.Millisecond, 2.0
	}
	return c.EmbedBackoffMaxElapsedTime, c.EmbedBackoffInitialInterval, c.EmbedBackoffMaxInterval, c.EmbedBackoffMultiplier
}
