package embedding_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/resume-screener/internal/adapter/embedding"
	"github.com/fairyhunter13/resume-screener/internal/domain"
)

type countingEmbedder struct {
	calls atomic.Int64
}

func (e *countingEmbedder) Embed(_ domain.Context, text string) ([]float32, error) {
	e.calls.Add(1)
	return []float32{float32(len(text))}, nil
}

func TestCacheHitsSkipProvider(t *testing.T) {
	t.Parallel()
	base := &countingEmbedder{}
	c := embedding.NewCache(base, 4)
	ctx := context.Background()

	v1, err := c.Embed(ctx, "same text")
	require.NoError(t, err)
	v2, err := c.Embed(ctx, "same text")
	require.NoError(t, err)
	assert.Equal(t, v1, v2)
	assert.Equal(t, int64(1), base.calls.Load())
}

func TestCacheKeysOverRawText(t *testing.T) {
	t.Parallel()
	base := &countingEmbedder{}
	c := embedding.NewCache(base, 4)
	ctx := context.Background()

	// whitespace variants are different provider inputs and must not share
	// a cached vector
	_, err := c.Embed(ctx, "resume text")
	require.NoError(t, err)
	_, err = c.Embed(ctx, "resume text ")
	require.NoError(t, err)
	assert.Equal(t, int64(2), base.calls.Load())
}

func TestCacheEviction(t *testing.T) {
	t.Parallel()
	base := &countingEmbedder{}
	c := embedding.NewCache(base, 1)
	ctx := context.Background()

	_, _ = c.Embed(ctx, "a")
	_, _ = c.Embed(ctx, "b") // evicts a
	_, _ = c.Embed(ctx, "a")
	assert.Equal(t, int64(3), base.calls.Load())
}

func TestCacheDisabled(t *testing.T) {
	t.Parallel()
	base := &countingEmbedder{}
	assert.Equal(t, domain.Embedder(base), embedding.NewCache(base, 0))
	assert.Nil(t, embedding.NewCache(nil, 10))
}
