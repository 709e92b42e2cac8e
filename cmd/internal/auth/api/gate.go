package authapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"authd/cmd/identity"
	"authd/cmd/internal/auth/token"
)

type userCtxKey struct{}

// UserFromContext returns the user attached by RequireUser, if any.
func UserFromContext(ctx context.Context) (identity.User, bool) {
	u, ok := ctx.Value(userCtxKey{}).(identity.User)
	return u, ok
}

// gateError is a typed rejection produced by the session gate.
type gateError struct {
	status  int
	message string
}

// RequireUser gates a protected handler behind bearer-token authentication.
// On success the resolved user is attached to the request context; on failure
// the request ends here with the gate's typed rejection.
func (h *Handler) RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, gerr := h.authenticate(r)
		if gerr != nil {
			writeMessage(w, gerr.status, gerr.message)
			return
		}
		ctx := context.WithValue(r.Context(), userCtxKey{}, u)
		next(w, r.WithContext(ctx))
	}
}

// authenticate resolves the request's bearer token to a user.
//
// Failure discrimination, in order:
//   - no Authorization header
//   - header shape is not exactly "Bearer <credential>"
//   - token expired / token malformed (distinct messages)
//   - token subject no longer resolves to a user (account removed after
//     issuance; an auth failure, not a server error)
func (h *Handler) authenticate(r *http.Request) (identity.User, *gateError) {
	raw := r.Header.Get("Authorization")
	if raw == "" {
		return identity.User{}, &gateError{status: http.StatusUnauthorized, message: msgAuthMissing}
	}

	parts := strings.Split(raw, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return identity.User{}, &gateError{status: http.StatusUnauthorized, message: msgAuthScheme}
	}

	userID, err := h.tokens.Verify(parts[1], time.Now().UTC())
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			return identity.User{}, &gateError{status: http.StatusUnauthorized, message: msgAuthExpired}
		}
		return identity.User{}, &gateError{status: http.StatusUnauthorized, message: msgAuthInvalid}
	}

	u, err := h.store.GetUserByID(r.Context(), userID)
	if err != nil {
		if identity.IsNotFound(err) {
			return identity.User{}, &gateError{status: http.StatusUnauthorized, message: msgAuthUnknownUser}
		}
		h.log.Error("auth.gate.resolve_user.fail", "err", err)
		return identity.User{}, &gateError{status: http.StatusInternalServerError, message: msgServerError}
	}

	return u, nil
}
