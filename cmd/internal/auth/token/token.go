package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the set of claims embedded in authd access tokens: the standard
// registered claims plus the subject user id under "uid".
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// Manager issues and verifies signed, time-bound identity tokens.
type Manager interface {
	// Issue produces a signed token for userID expiring at now + TTL.
	Issue(userID string, now time.Time) (token string, exp time.Time, err error)

	// Verify returns the embedded subject, or ErrExpired / ErrMalformed.
	// It is synchronous and side-effect-free; no store access happens here.
	Verify(token string, now time.Time) (userID string, err error)
}

type hs256Manager struct {
	issuer string
	ttl    time.Duration
	secret []byte
}

// NewHS256Manager builds a Manager signing with HMAC-SHA256.
func NewHS256Manager(cfg Config) (Manager, error) {
	if cfg.Secret == "" {
		return nil, ErrConfig
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		return nil, ErrConfig
	}

	return &hs256Manager{
		issuer: cfg.Issuer,
		ttl:    ttl,
		secret: []byte(cfg.Secret),
	}, nil
}

func (m *hs256Manager) Issue(userID string, now time.Time) (string, time.Time, error) {
	exp := now.Add(m.ttl)

	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (m *hs256Manager) Verify(tokenStr string, now time.Time) (string, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(tokenStr, claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpired
		}
		return "", ErrMalformed
	}
	if !parsed.Valid || claims.UserID == "" {
		return "", ErrMalformed
	}

	return claims.UserID, nil
}
