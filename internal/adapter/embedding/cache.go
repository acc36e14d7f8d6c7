package embedding

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/fairyhunter13/resume-screener/internal/domain"
)

// cacheEmbedder wraps an Embedder and caches vectors by text hash. Safe for
// concurrent use; eviction is FIFO for simplicity. Identical resumes across
// screening runs (or the same JD text within one) hit the cache instead of
// the provider.
type cacheEmbedder struct {
	base     domain.Embedder
	capacity int
	mu       sync.RWMutex
	m        map[string][]float32
	ord      []string
}

// NewCache wraps base with an embedding cache of the given capacity (number
// of entries). If capacity <= 0, base is returned unmodified.
func NewCache(base domain.Embedder, capacity int) domain.Embedder {
	if capacity <= 0 || base == nil {
		return base
	}
	return &cacheEmbedder{base: base, capacity: capacity, m: make(map[string][]float32), ord: make([]string, 0, capacity)}
}

func (c *cacheEmbedder) Embed(ctx domain.Context, text string) ([]float32, error) {
	k := keyFor(text)
	c.mu.RLock()
	v, ok := c.m[k]
	c.mu.RUnlock()
	if ok {
		return v, nil
	}
	vec, err := c.base.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	c.put(k, vec)
	return vec, nil
}

func (c *cacheEmbedder) put(k string, vec []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.m[k]; exists {
		c.m[k] = vec
		return
	}
	if len(c.ord) >= c.capacity {
		old := c.ord[0]
		c.ord = c.ord[1:]
		delete(c.m, old)
	}
	c.m[k] = vec
	c.ord = append(c.ord, k)
}

// keyFor hashes the raw text. The provider only guarantees determinism for
// identical input, so the cache performs no normalization of its own.
func keyFor(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}
