package embedding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fairyhunter13/resume-screener/internal/config"
)

func TestNewOpenAIClientUsesInstrumentedTransport(t *testing.T) {
	t.Parallel()
	c := NewOpenAIClient(config.Config{})
	require.NotNil(t, c.hc)
	assert.IsType(t, &otelhttp.Transport{}, c.hc.Transport)
}
