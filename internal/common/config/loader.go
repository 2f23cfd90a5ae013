// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	// Enable ENV override like CORS_ALLOWED_ORIGINS
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // ignore error if not found

	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile tries .env from a few locations so the binary and the tests can
// run from different directories.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up directories looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders left in the YAML, which is how
// provider credentials reach the config without living in the file.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal {
					v.Set(key, expanded)
				}
			}
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "adega-proxy"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8787"
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 60 * time.Second
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 180 * time.Second
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = ":9090"
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{
			"https://maycowcarrara.github.io",
			"http://localhost:5173",
			"http://localhost:5174",
		}
	}
	if cfg.Providers.Gemini.BaseURL == "" {
		cfg.Providers.Gemini.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.Providers.Gemini.Model == "" {
		cfg.Providers.Gemini.Model = "gemini-2.5-flash"
	}
	if cfg.Providers.Gemini.Timeout <= 0 {
		cfg.Providers.Gemini.Timeout = 120 * time.Second
	}
	if cfg.Providers.Groq.BaseURL == "" {
		cfg.Providers.Groq.BaseURL = "https://api.groq.com/openai/v1"
	}
	if cfg.Providers.Groq.Model == "" {
		cfg.Providers.Groq.Model = "llama-3.3-70b-versatile"
	}
	if cfg.Providers.Groq.Temperature <= 0 {
		cfg.Providers.Groq.Temperature = 0.7
	}
	if cfg.Providers.Groq.MaxTokens <= 0 {
		cfg.Providers.Groq.MaxTokens = 2000
	}
	if cfg.Providers.Groq.Timeout <= 0 {
		cfg.Providers.Groq.Timeout = 120 * time.Second
	}
	if cfg.Providers.DeepSeek.BaseURL == "" {
		cfg.Providers.DeepSeek.BaseURL = "https://api.deepseek.com/v1"
	}
	if cfg.Providers.DeepSeek.Model == "" {
		cfg.Providers.DeepSeek.Model = "deepseek-chat"
	}
	if cfg.Providers.DeepSeek.Timeout <= 0 {
		cfg.Providers.DeepSeek.Timeout = 120 * time.Second
	}
	if cfg.Handlers.ExtractLabel.MaxUploadBytes <= 0 {
		cfg.Handlers.ExtractLabel.MaxUploadBytes = 20 << 20
	}
	if cfg.Handlers.Ask.Provider == "" {
		cfg.Handlers.Ask.Provider = "groq"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

// overrideEmptyConfig picks credentials straight from the environment when
// the YAML placeholders did not resolve.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Providers.Gemini.APIKey == "" || strings.Contains(cfg.Providers.Gemini.APIKey, "${") {
		cfg.Providers.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.Providers.Groq.APIKey == "" || strings.Contains(cfg.Providers.Groq.APIKey, "${") {
		cfg.Providers.Groq.APIKey = os.Getenv("GROQ_API_KEY")
	}
	if cfg.Providers.DeepSeek.APIKey == "" || strings.Contains(cfg.Providers.DeepSeek.APIKey, "${") {
		cfg.Providers.DeepSeek.APIKey = os.Getenv("DEEPSEEK_API_KEY")
	}
}

// validateConfig rejects configurations the router cannot work with. Missing
// provider credentials are deliberately not fatal here: they surface as the
// operation's 500 on first use.
func validateConfig(cfg *Config) error {
	if len(cfg.CORS.AllowedOrigins) == 0 {
		return fmt.Errorf("cors.allowed_origins must not be empty")
	}
	switch cfg.Handlers.Ask.Provider {
	case "groq", "gemini", "deepseek":
	default:
		return fmt.Errorf("handlers.ask.provider must be one of groq, gemini, deepseek (got %q)", cfg.Handlers.Ask.Provider)
	}
	return nil
}
