// Command server starts the resume screening HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fairyhunter13/resume-screener/internal/adapter/embedding"
	httpserver "github.com/fairyhunter13/resume-screener/internal/adapter/httpserver"
	"github.com/fairyhunter13/resume-screener/internal/adapter/observability"
	"github.com/fairyhunter13/resume-screener/internal/adapter/textextractor"
	tikaext "github.com/fairyhunter13/resume-screener/internal/adapter/textextractor/tika"
	"github.com/fairyhunter13/resume-screener/internal/app"
	"github.com/fairyhunter13/resume-screener/internal/config"
	"github.com/fairyhunter13/resume-screener/internal/domain"
	"github.com/fairyhunter13/resume-screener/internal/screening"
	"github.com/fairyhunter13/resume-screener/internal/service/ratelimiter"
	"github.com/fairyhunter13/resume-screener/internal/usecase"
)

// redisAdapter narrows *redis.Client to the readiness interface.
type redisAdapter struct{ c *redis.Client }

func (a redisAdapter) Ping(ctx context.Context) app.RedisPingResult { return a.c.Ping(ctx) }

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	// Embedder: remote when an API key is configured, deterministic local
	// fallback otherwise. Both sit behind the embedding cache.
	var base domain.Embedder
	if cfg.OpenAIAPIKey != "" {
		base = embedding.NewOpenAIClient(cfg)
		slog.Info("embedder configured", slog.String("provider", "openai"), slog.String("model", cfg.EmbeddingsModel))
	} else {
		base = embedding.NewLocalEmbedder(cfg.EmbeddingDim)
		slog.Info("embedder configured", slog.String("provider", "local"), slog.Int("dims", cfg.EmbeddingDim))
	}
	embedder := embedding.NewCache(base, cfg.EmbedCacheSize)

	// Text extraction: Tika for binaries, plain decoding for txt. A nil
	// backend downgrades PDF/DOCX uploads to placeholders.
	var tika *tikaext.Client
	var binary textextractor.BinaryExtractor
	if cfg.TikaURL != "" {
		tika = tikaext.New(cfg.TikaURL)
		binary = tika
	}
	extractor := textextractor.NewResolver(binary)

	vocab := screening.DefaultVocabulary()
	if cfg.SkillVocabPath != "" {
		vocab, err = screening.LoadVocabulary(cfg.SkillVocabPath)
		if err != nil {
			slog.Error("vocabulary load failed", slog.Any("error", err))
			os.Exit(1)
		}
		slog.Info("vocabulary loaded", slog.String("path", cfg.SkillVocabPath), slog.Int("terms", len(vocab.Terms)))
	}

	screener := usecase.NewScreenService(cfg, embedder, extractor, vocab)

	// Redis-backed rate limiting is optional; the router falls back to
	// in-memory per-IP limiting when it is absent.
	var rdb *redis.Client
	var limiter ratelimiter.Limiter
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			slog.Error("redis url parse failed", slog.Any("error", err))
			os.Exit(1)
		}
		rdb = redis.NewClient(opts)
		limiter = ratelimiter.NewRedisLuaLimiter(rdb, ratelimiter.NewBucketConfigFromPerMinute(cfg.RateLimitPerMin))
		slog.Info("redis rate limiter enabled", slog.Int("per_min", cfg.RateLimitPerMin))
	}

	var redisCheck app.RedisClient
	if rdb != nil {
		redisCheck = redisAdapter{rdb}
	}
	var tikaPinger app.VersionPinger
	if tika != nil {
		tikaPinger = tika
	}
	embedCheck, tikaCheckFn, redisCheckFn := app.BuildReadinessChecks(cfg, embedder, tikaPinger, redisCheck)

	srv := httpserver.NewServer(cfg, screener, embedCheck, tikaCheckFn, redisCheckFn)
	handler := app.BuildRouter(cfg, srv, limiter)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)

	if rdb != nil {
		_ = rdb.Close()
	}
}
