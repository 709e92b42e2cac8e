package password

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Config is the single configuration surface for this package.
type Config struct {
	// Cost is the bcrypt work factor. Each increment doubles hashing time.
	Cost int
}

// DefaultConfig returns the baseline cost for interactive logins.
func DefaultConfig() Config {
	return Config{Cost: bcrypt.DefaultCost}
}

// FromEnv loads config from environment variables.
//
// Env surface:
// - AUTHD_BCRYPT_COST
func FromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v, ok := os.LookupEnv("AUTHD_BCRYPT_COST"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("AUTHD_BCRYPT_COST: %w", err)
		}
		if n < bcrypt.MinCost || n > bcrypt.MaxCost {
			return Config{}, fmt.Errorf("AUTHD_BCRYPT_COST: %w", ErrInvalidCost)
		}
		cfg.Cost = n
	}

	return cfg, nil
}
