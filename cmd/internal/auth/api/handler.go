package authapi

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"time"
	"unicode/utf8"

	"authd/cmd/identity"
	"authd/cmd/internal/auth/token"
)

// Handler wires the HTTP auth endpoints to the user store and token service.
type Handler struct {
	log    *slog.Logger
	cfg    Config
	store  identity.Store
	tokens token.Manager
}

// NewHandler constructs an auth Handler.
func NewHandler(log *slog.Logger, cfg Config, store identity.Store, tokens token.Manager) (*Handler, error) {
	if log == nil {
		log = slog.Default()
	}
	if store == nil {
		return nil, errors.New("auth: nil store")
	}
	if tokens == nil {
		return nil, errors.New("auth: nil token manager")
	}

	return &Handler{
		log:    log,
		cfg:    cfg,
		store:  store,
		tokens: tokens,
	}, nil
}

// Register wires auth routes onto the provided mux.
func (h *Handler) Register(mux *http.ServeMux) {
	if h == nil || mux == nil {
		return
	}
	mux.HandleFunc("/register", h.handleRegister)
	mux.HandleFunc("/login", h.handleLogin)
	mux.HandleFunc("/api/me", h.RequireUser(h.handleMe))
	mux.HandleFunc("/api/users/me", h.RequireUser(h.handleMe))
}

// emailRe is the syntactic email shape: local@domain.tld with no whitespace
// or extra '@' in any part.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ---- handlers ----

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req registerRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	// First failure wins; field order is fixed.
	switch {
	case req.Email == "":
		writeMessage(w, http.StatusBadRequest, msgEmailRequired)
		return
	case req.Password == "":
		writeMessage(w, http.StatusBadRequest, msgPasswordRequired)
		return
	case req.ConfirmPassword == "":
		writeMessage(w, http.StatusBadRequest, msgConfirmRequired)
		return
	case req.Name == "":
		writeMessage(w, http.StatusBadRequest, msgNameRequired)
		return
	}

	if !emailRe.MatchString(req.Email) {
		writeMessage(w, http.StatusBadRequest, msgEmailMalformed)
		return
	}
	// The minimum length counts characters, not bytes.
	if utf8.RuneCountInString(req.Password) < 6 {
		writeMessage(w, http.StatusBadRequest, msgPasswordTooShort)
		return
	}
	if req.Password != req.ConfirmPassword {
		writeMessage(w, http.StatusBadRequest, msgPasswordMismatch)
		return
	}

	ctx := r.Context()

	// Advisory pre-check for a friendlier failure; the store's atomic
	// uniqueness constraint is the actual guarantee under races.
	_, err := h.store.GetUserByEmail(ctx, req.Email)
	switch {
	case err == nil:
		writeMessage(w, http.StatusBadRequest, msgEmailTaken)
		return
	case !identity.IsNotFound(err):
		h.log.Error("auth.register.lookup.fail", "err", err)
		writeMessage(w, http.StatusInternalServerError, msgServerError)
		return
	}

	digest, err := identity.HashPassword(req.Password)
	if err != nil {
		h.log.Error("auth.register.hash.fail", "err", err)
		writeMessage(w, http.StatusInternalServerError, msgServerError)
		return
	}

	created, err := h.store.CreateUser(ctx, identity.CreateUserInput{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: digest,
		Role:         identity.RoleApplicant,
		Now:          time.Now().UTC(),
	})
	if err != nil {
		if identity.IsConflict(err) {
			// Lost the race after the pre-check; same condition, same message.
			writeMessage(w, http.StatusBadRequest, msgEmailTaken)
			return
		}
		h.log.Error("auth.register.create.fail", "err", err)
		writeMessage(w, http.StatusInternalServerError, msgServerError)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(created))
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	switch {
	case req.Email == "":
		writeMessage(w, http.StatusBadRequest, msgEmailRequired)
		return
	case req.Password == "":
		writeMessage(w, http.StatusBadRequest, msgPasswordRequired)
		return
	}

	if !emailRe.MatchString(req.Email) {
		writeMessage(w, http.StatusBadRequest, msgEmailMalformed)
		return
	}

	ctx := r.Context()

	// Unknown email and wrong password must be indistinguishable to the
	// client; both exit through the same generic message.
	u, err := h.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if identity.IsNotFound(err) {
			writeMessage(w, http.StatusBadRequest, msgInvalidCredentials)
			return
		}
		h.log.Error("auth.login.lookup.fail", "err", err)
		writeMessage(w, http.StatusInternalServerError, msgServerError)
		return
	}

	if !identity.VerifyPassword(req.Password, u.PasswordHash) {
		writeMessage(w, http.StatusBadRequest, msgInvalidCredentials)
		return
	}

	accessToken, _, err := h.tokens.Issue(u.ID, time.Now().UTC())
	if err != nil {
		h.log.Error("auth.login.issue_token.fail", "err", err)
		writeMessage(w, http.StatusInternalServerError, msgServerError)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{AccessToken: accessToken})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	u, ok := UserFromContext(r.Context())
	if !ok {
		// RequireUser always runs first; reaching this is a wiring bug.
		h.log.Error("auth.me.no_user_in_context")
		writeMessage(w, http.StatusInternalServerError, msgServerError)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}
