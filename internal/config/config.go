package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultBaseURL is the production Sitelens origin used when no override is set.
const DefaultBaseURL = "https://app.sitelens.io"

// ErrMissingAPIKey indicates SITELENS_API_KEY is not set. Startup must treat
// this as fatal; no tool call can succeed without a credential.
var ErrMissingAPIKey = errors.New("SITELENS_API_KEY is not configured. Set it in the environment or a .env file")

// Config is the immutable process-wide configuration. It is built once at
// startup and injected into the client; nothing reads ambient env state
// after this point.
type Config struct {
	APIKey  string
	BaseURL string
}

// Load reads .env (binary directory first, then working directory) and the
// environment into a Config.
func Load() (Config, error) {
	if exePath, err := os.Executable(); err == nil {
		_ = godotenv.Load(filepath.Join(filepath.Dir(exePath), ".env"))
	}
	_ = godotenv.Load()

	key := strings.TrimSpace(os.Getenv("SITELENS_API_KEY"))
	if key == "" {
		return Config{}, ErrMissingAPIKey
	}

	base := strings.TrimSpace(os.Getenv("SITELENS_API_BASE_URL"))
	if base == "" {
		base = DefaultBaseURL
	}
	base = strings.TrimSuffix(base, "/")

	return Config{APIKey: key, BaseURL: base}, nil
}
