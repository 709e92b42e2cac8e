package identity

import (
	"context"
	"time"
)

// Role is the enumerated account role, fixed at creation.
type Role string

// RoleApplicant is the sole role assigned at registration.
const RoleApplicant Role = "APPLICANT"

// User is authd's canonical security principal.
// IMPORTANT: PasswordHash is server-side state and must never appear in any
// response body; API layers convert User to a public projection instead.
type User struct {
	ID    string
	Email string
	Name  string
	Role  Role

	PasswordHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateUserInput describes a user registration request.
// PasswordHash must already be a digest from the credential hasher; stores
// never see plaintext.
type CreateUserInput struct {
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	Now          time.Time
}

// Store is the user persistence boundary.
//
// Uniqueness contract:
// CreateUser must enforce email uniqueness atomically and return a
// ConflictError{Field: "email"} on violation. Callers may pre-check with
// GetUserByEmail for friendlier messaging, but the store constraint is the
// actual guarantee under concurrent registration.
type Store interface {
	CreateUser(ctx context.Context, in CreateUserInput) (User, error)

	// GetUserByEmail looks up a user by exact (case-sensitive) email.
	GetUserByEmail(ctx context.Context, email string) (User, error)

	// GetUserByID looks up a user by its opaque identifier.
	GetUserByID(ctx context.Context, id string) (User, error)

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
