// Package token issues and verifies authd's stateless access tokens.
//
// Tokens are HMAC-signed (HS256), carry the subject user id, and expire a
// fixed duration after issuance. Validity is purely a function of signature
// and expiry; there is no revocation state.
package token
