// Package identity implements authd's identity foundation.
//
// It contains the canonical user record, credential hashing facade, and the
// user-store contract with its Postgres and in-memory implementations.
//
// This package is intentionally dependency-light and security-first.
package identity
