// Package password implements credential hashing for authd.
//
// It wraps bcrypt behind a small config surface so the adaptive cost factor
// can be tuned per environment without code changes.
package password
