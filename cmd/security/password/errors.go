package password

import "errors"

var (
	// ErrPasswordTooLong is returned when the plaintext exceeds bcrypt's 72-byte input limit.
	ErrPasswordTooLong = errors.New("password too long")

	// ErrInvalidCost is returned for a cost outside bcrypt's supported range.
	ErrInvalidCost = errors.New("invalid bcrypt cost")
)
