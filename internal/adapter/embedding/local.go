package embedding

import (
	"crypto/sha1" //nolint:gosec // Not used for security; seeds the deterministic generator.
	"encoding/binary"

	"github.com/fairyhunter13/resume-screener/internal/domain"
)

// LocalEmbedder is a deterministic, dependency-free embedding provider. It
// honors the provider contract exactly: empty text maps to the all-zero
// vector of the fixed dimensionality, and identical input always maps to
// the identical vector. It stands in for a real model in offline
// deployments and in tests.
type LocalEmbedder struct {
	dims int
}

// NewLocalEmbedder constructs a local embedder with the given
// dimensionality (falls back to 384, a MiniLM-sized space, when <= 0).
func NewLocalEmbedder(dims int) *LocalEmbedder {
	if dims <= 0 {
		dims = 384
	}
	return &LocalEmbedder{dims: dims}
}

// Dims returns the fixed vector dimensionality.
func (l *LocalEmbedder) Dims() int { return l.dims }

// Embed returns a deterministic vector for text.
func (l *LocalEmbedder) Embed(_ domain.Context, text string) ([]float32, error) {
	vec := make([]float32, l.dims)
	if text == "" {
		return vec, nil
	}
	// Simple LCG seeded by sha1(text), values mapped to roughly [-1,1].
	h := sha1.Sum([]byte(text)) //nolint:gosec
	x := binary.BigEndian.Uint32(h[:4])
	const a = 1664525
	const c = 1013904223
	for i := range vec {
		x = uint32(uint64(a)*uint64(x) + uint64(c))
		v := float32(x) / float32(^uint32(0))
		vec[i] = 2*v - 1
	}
	return vec, nil
}
