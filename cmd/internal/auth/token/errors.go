package token

import "errors"

var (
	// ErrExpired is returned when the token's embedded expiry has passed.
	ErrExpired = errors.New("token expired")

	// ErrMalformed is returned when the signature is invalid or the token
	// structure cannot be parsed. Expiry and malformation are the only two
	// verification outcomes exposed to callers.
	ErrMalformed = errors.New("token malformed")

	// ErrConfig is returned for invalid configuration.
	ErrConfig = errors.New("invalid config")
)
