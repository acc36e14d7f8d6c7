package app

import (
	"context"
	"fmt"

	"github.com/fairyhunter13/resume-screener/internal/config"
	"github.com/fairyhunter13/resume-screener/internal/domain"
)

// RedisPingResult is the minimal return type of a Redis client's Ping.
type RedisPingResult interface{ Err() error }

// RedisClient is the minimal interface for a Redis client needed for readiness.
type RedisClient interface {
	Ping(ctx context.Context) RedisPingResult
}

// VersionPinger reports reachability of the Tika extraction backend.
type VersionPinger interface {
	Ping(ctx context.Context) error
}

// BuildReadinessChecks returns the embedder, tika and redis readiness
// checks. A nil collaborator yields a nil check, which the readyz handler
// skips; local-only deployments stay ready without external services.
func BuildReadinessChecks(cfg config.Config, embedder domain.Embedder, tika VersionPinger, rdb RedisClient) (
	embedCheck func(ctx context.Context) error,
	tikaCheck func(ctx context.Context) error,
	redisCheck func(ctx context.Context) error,
) {
	if embedder != nil {
		embedCheck = func(ctx context.Context) error {
			// Empty text short-circuits to a zero vector inside remote
			// providers, so probe with a token that forces a round trip.
			if _, err := embedder.Embed(ctx, "ping"); err != nil {
				return fmt.Errorf("embedder: %w", err)
			}
			return nil
		}
	}
	if tika != nil {
		tikaCheck = func(ctx context.Context) error {
			if cfg.TikaURL == "" {
				return fmt.Errorf("tika url not configured")
			}
			return tika.Ping(ctx)
		}
	}
	if rdb != nil {
		redisCheck = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	}
	return embedCheck, tikaCheck, redisCheck
}
