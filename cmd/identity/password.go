// Package identity credential hashing (bcrypt).
//
// identity delegates to cmd/security/password as the single source of truth
// for the cost factor (defaults + env overrides) so that callers cannot drift
// from the process-wide hashing configuration.
package identity

import (
	"authd/cmd/security/password"
)

// HashPassword returns a salted bcrypt digest of the plaintext.
// The digest differs between calls for the same input; equality checks must
// go through VerifyPassword.
func HashPassword(plain string) (string, error) {
	cfg, err := password.FromEnv()
	if err != nil {
		// Treat invalid env as an operational error, not a weak fallback.
		return "", err
	}
	return cfg.Hash(plain)
}

// VerifyPassword checks a plaintext against a stored digest.
// Malformed digests report false rather than an error; upstream surfaces the
// same invalid-credentials outcome either way.
func VerifyPassword(plain, digest string) bool {
	cfg, err := password.FromEnv()
	if err != nil {
		cfg = password.DefaultConfig()
	}
	return cfg.Verify(digest, plain)
}
