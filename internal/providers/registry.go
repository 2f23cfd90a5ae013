// internal/providers/registry.go
package providers

import (
	"fmt"

	"adega-proxy/internal/common/config"
	"adega-proxy/internal/common/logger"
	"adega-proxy/internal/providers/deepseek"
	"adega-proxy/internal/providers/gemini"
	"adega-proxy/internal/providers/groq"
)

// NewTextProvider builds the text provider named in the configuration. Only
// the selected adapter is constructed; the others stay inert.
func NewTextProvider(name string, cfg config.ProvidersConfig, log logger.Logger) (TextProvider, error) {
	switch name {
	case "groq":
		return groq.NewClient(groq.Config{
			APIKey:      cfg.Groq.APIKey,
			BaseURL:     cfg.Groq.BaseURL,
			Model:       cfg.Groq.Model,
			Temperature: cfg.Groq.Temperature,
			MaxTokens:   cfg.Groq.MaxTokens,
			Timeout:     cfg.Groq.Timeout,
		}, log), nil
	case "deepseek":
		return deepseek.NewClient(deepseek.Config{
			APIKey:  cfg.DeepSeek.APIKey,
			BaseURL: cfg.DeepSeek.BaseURL,
			Model:   cfg.DeepSeek.Model,
			Timeout: cfg.DeepSeek.Timeout,
		}, log), nil
	case "gemini":
		return gemini.NewClient(gemini.Config{
			APIKey:  cfg.Gemini.APIKey,
			BaseURL: cfg.Gemini.BaseURL,
			Model:   cfg.Gemini.Model,
			Timeout: cfg.Gemini.Timeout,
		}, log), nil
	default:
		return nil, fmt.Errorf("unknown text provider %q", name)
	}
}
