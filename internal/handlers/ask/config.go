// internal/handlers/ask/config.go
package ask

type Config struct {
	// Provider names the active text provider, for logging only; the actual
	// adapter is injected.
	Provider string
}

func LoadConfig() *Config {
	return &Config{
		Provider: "groq",
	}
}
