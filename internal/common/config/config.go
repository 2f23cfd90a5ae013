// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct. It is loaded once at
// startup and passed explicitly into every component; nothing mutates it
// afterwards.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Providers ProvidersConfig `mapstructure:"providers"`
	Handlers  HandlersConfig  `mapstructure:"handlers"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// MetricsConfig controls the separate Prometheus listener. The public proxy
// surface stays exactly the documented routes; metrics never share it.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

// CORSConfig holds the fixed origin allow-list. The first entry doubles as
// the fallback origin echoed to callers outside the list.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type ProvidersConfig struct {
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Groq     GroqConfig     `mapstructure:"groq"`
	DeepSeek DeepSeekConfig `mapstructure:"deepseek"`
}

type GeminiConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type GroqConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type DeepSeekConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type HandlersConfig struct {
	ExtractLabel ExtractLabelConfig `mapstructure:"extract_label"`
	Ask          AskConfig          `mapstructure:"ask"`
}

type ExtractLabelConfig struct {
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`
}

// AskConfig selects which text provider answers catalog questions. Swapping
// providers is a configuration change, never a code edit.
type AskConfig struct {
	Provider string `mapstructure:"provider"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
