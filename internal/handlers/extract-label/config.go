// internal/handlers/extract-label/config.go
package extractlabel

type Config struct {
	// MaxUploadBytes bounds the in-memory multipart parse. Both label photos
	// are read fully before the upstream call.
	MaxUploadBytes int64
}

func LoadConfig() *Config {
	return &Config{
		MaxUploadBytes: 20 << 20,
	}
}
