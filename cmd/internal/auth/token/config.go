package token

import (
	"os"
	"strings"
	"time"
)

// Config defines runtime configuration for access tokens.
//
// The signing secret is process-wide state loaded once at startup; a missing
// secret is a fatal configuration error, never a per-request one.
type Config struct {
	// Issuer is the value set in the "iss" claim.
	Issuer string

	// TTL defines the fixed token lifetime from issuance.
	TTL time.Duration

	// Secret is the HMAC signing key.
	Secret string
}

// DefaultConfig returns the baseline configuration (12-hour tokens).
// The secret has no default and must come from the environment.
func DefaultConfig() Config {
	return Config{
		Issuer: "authd",
		TTL:    12 * time.Hour,
	}
}

// LoadConfigFromEnv loads token configuration from environment variables.
//
// Required:
//   - AUTHD_JWT_SECRET
//
// Optional:
//   - AUTHD_TOKEN_ISSUER
//   - AUTHD_ACCESS_TTL (Go duration string)
//
// Returns ErrConfig if configuration is invalid.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("AUTHD_TOKEN_ISSUER"); v != "" {
		cfg.Issuer = v
	}

	if v := os.Getenv("AUTHD_ACCESS_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, ErrConfig
		}
		cfg.TTL = d
	}

	cfg.Secret = strings.TrimSpace(os.Getenv("AUTHD_JWT_SECRET"))
	if cfg.Secret == "" {
		return Config{}, ErrConfig
	}

	return cfg, nil
}
