// internal/providers/registry_test.go
package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adega-proxy/internal/common/config"
	"adega-proxy/internal/common/logger"
)

func TestNewTextProvider(t *testing.T) {
	cfg := config.ProvidersConfig{}
	cfg.Groq.Model = "llama-3.3-70b-versatile"
	cfg.Gemini.Model = "gemini-2.5-flash"
	cfg.DeepSeek.Model = "deepseek-chat"

	for _, name := range []string{"groq", "gemini", "deepseek"} {
		t.Run(name, func(t *testing.T) {
			p, err := NewTextProvider(name, cfg, logger.NewNoOpLogger())
			require.NoError(t, err)
			assert.Equal(t, name, p.Name())
		})
	}

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewTextProvider("openai", cfg, logger.NewNoOpLogger())
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown text provider "openai"`)
	})
}
