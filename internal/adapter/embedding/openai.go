// Package embedding provides embedding-provider adapters: an
// OpenAI-compatible HTTP client, a deterministic local embedder, and a
// caching wrapper. One provider instance is built at startup and shared
// read-only for the process lifetime.
package embedding

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fairyhunter13/resume-screener/internal/adapter/observability"
	"github.com/fairyhunter13/resume-screener/internal/config"
	"github.com/fairyhunter13/resume-screener/internal/domain"
)

// OpenAIClient implements domain.Embedder against an OpenAI-compatible
// /embeddings endpoint. Retries with exponential backoff belong to this
// adapter; the screening pipeline above it never retries.
type OpenAIClient struct {
	cfg config.Config
	hc  *http.Client
}

// NewOpenAIClient constructs a client with a request timeout suited to
// embedding calls. Outbound requests go through an OTel-instrumented
// transport so provider latency shows up in traces.
func NewOpenAIClient(cfg config.Config) *OpenAIClient {
	return &OpenAIClient{cfg: cfg, hc: &http.Client{
		Timeout:   30 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}}
}

// Embed calls the embeddings endpoint and returns the vector for text.
// Empty text short-circuits to a zero vector per the provider contract, so
// empty resumes never spend an API call.
func (c *OpenAIClient) Embed(ctx domain.Context, text string) ([]float32, error) {
	if text == "" {
		return make([]float32, c.cfg.EmbeddingDim), nil
	}
	if c.cfg.OpenAIAPIKey == "" || c.cfg.EmbeddingsModel == "" {
		slog.Error("OpenAI API key or model missing", slog.String("provider", "openai"),
			slog.Bool("has_api_key", c.cfg.OpenAIAPIKey != ""), slog.String("model", c.cfg.EmbeddingsModel))
		return nil, fmt.Errorf("%w: OPENAI_API_KEY or EMBEDDINGS_MODEL missing", domain.ErrInvalidArgument)
	}
	body := map[string]any{
		"model": c.cfg.EmbeddingsModel,
		"input": []string{text},
	}
	b, _ := json.Marshal(body)
	var out struct {
		Data []struct {
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
	}
	op := func() error {
		start := time.Now()
		// Recreate the request each attempt to avoid reusing consumed bodies.
		r, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.OpenAIBaseURL+"/embeddings", bytes.NewReader(b))
		r.Header.Set("Authorization", "Bearer "+c.cfg.OpenAIAPIKey)
		r.Header.Set("Content-Type", "application/json")
		resp, err := c.hc.Do(r)
		observability.EmbedRequestsTotal.WithLabelValues("openai", "embed").Inc()
		observability.EmbedRequestDuration.WithLabelValues("openai", "embed").Observe(time.Since(start).Seconds())
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode == http.StatusTooManyRequests {
			slog.Warn("embedding provider rate limited", slog.String("provider", "openai"),
				slog.Int("status", resp.StatusCode), slog.String("x_request_id", resp.Header.Get("X-Request-Id")))
			return fmt.Errorf("rate limited: 429")
		}
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			// Client error: non-retryable.
			slog.Warn("embedding provider 4xx", slog.String("provider", "openai"),
				slog.Int("status", resp.StatusCode), slog.String("model", c.cfg.EmbeddingsModel),
				slog.String("body", readSnippet(resp.Body, 512)))
			return backoff.Permanent(fmt.Errorf("embed status %d", resp.StatusCode))
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			slog.Error("embedding provider non-2xx", slog.String("provider", "openai"),
				slog.Int("status", resp.StatusCode), slog.String("model", c.cfg.EmbeddingsModel),
				slog.String("body", readSnippet(resp.Body, 512)))
			return fmt.Errorf("embed status %d", resp.StatusCode)
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			slog.Error("embedding provider decode error", slog.String("provider", "openai"), slog.Any("error", err))
			return err
		}
		return nil
	}
	expo := backoff.NewExponentialBackOff()
	maxElapsed, initial, maxInterval, multiplier := c.cfg.GetEmbedBackoffConfig()
	expo.MaxElapsedTime = maxElapsed
	expo.InitialInterval = initial
	expo.MaxInterval = maxInterval
	expo.Multiplier = multiplier
	if err := backoff.Retry(op, backoff.WithContext(expo, ctx)); err != nil {
		return nil, fmt.Errorf("openai embeddings: %w", err)
	}
	if len(out.Data) == 0 {
		return nil, errors.New("empty data from embeddings endpoint")
	}
	src := out.Data[0].Embedding
	vec := make([]float32, len(src))
	for i := range src {
		vec[i] = float32(src[i])
	}
	return vec, nil
}

// readSnippet reads up to n bytes from r for log context.
func readSnippet(r io.Reader, n int) string {
	if r == nil || n <= 0 {
		return ""
	}
	b, _ := io.ReadAll(io.LimitReader(r, int64(n)))
	return string(b)
}
