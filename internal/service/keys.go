package service

import (
	"os"
	"strings"

	"tmdb-proxy-go/internal/config"
)

// KeySource yields the TMDB API key. It is consulted on every invocation;
// an empty result means the key is not configured.
type KeySource interface {
	APIKey() string
}

// StaticKey is a key fixed at startup.
type StaticKey string

// APIKey returns the key.
func (k StaticKey) APIKey() string { return string(k) }

// EnvKey names an environment variable read on each call, so a rotated
// key is picked up without a restart.
type EnvKey string

// APIKey returns the trimmed value of the environment variable.
func (k EnvKey) APIKey() string {
	return strings.TrimSpace(os.Getenv(string(k)))
}

// NewKeySource prefers a key set in config or on the command line and falls
// back to the environment variable named by tmdb.api_key_env.
func NewKeySource(cfg *config.Config) KeySource {
	if cfg.TMDB.APIKey != "" {
		return StaticKey(cfg.TMDB.APIKey)
	}
	return EnvKey(cfg.TMDB.APIKeyEnv)
}
