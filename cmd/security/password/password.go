package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hash hashes a password using bcrypt and returns the encoded digest string.
// The digest embeds a per-call random salt, so hashing the same plaintext
// twice yields different digests; equality must go through Verify.
func (c Config) Hash(password string) (string, error) {
	if len(password) > 72 {
		// bcrypt silently truncates beyond 72 bytes; refuse instead.
		return "", ErrPasswordTooLong
	}

	cost := c.Cost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return "", ErrInvalidCost
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify checks whether password matches the given encoded digest.
// It returns false for any mismatch, including malformed digests; a malformed
// digest is indistinguishable from a wrong password by contract.
func (c Config) Verify(encodedDigest, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(encodedDigest), []byte(password))
	return err == nil
}

// Cost reports the cost factor embedded in an encoded digest.
// Useful for detecting digests hashed under an older, weaker cost.
func Cost(encodedDigest string) (int, error) {
	n, err := bcrypt.Cost([]byte(encodedDigest))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidCost, err)
	}
	return n, nil
}
