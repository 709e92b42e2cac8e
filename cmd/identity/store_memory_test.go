package identity

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestMemoryStoreCreateAndLookup(t *testing.T) {
	t.Parallel()

	st := NewMemoryStore()
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	u, err := st.CreateUser(ctx, CreateUserInput{
		Email:        "a@b.com",
		Name:         "A",
		PasswordHash: "digest",
		Now:          now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID == "" {
		t.Fatalf("expected generated id")
	}
	if u.Role != RoleApplicant {
		t.Fatalf("role=%q want=%q", u.Role, RoleApplicant)
	}
	if !u.CreatedAt.Equal(now) || !u.UpdatedAt.Equal(now) {
		t.Fatalf("timestamps not set from Now: %v / %v", u.CreatedAt, u.UpdatedAt)
	}

	byEmail, err := st.GetUserByEmail(ctx, "a@b.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if byEmail.ID != u.ID {
		t.Fatalf("lookup mismatch: %q vs %q", byEmail.ID, u.ID)
	}

	byID, err := st.GetUserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if byID.Email != "a@b.com" {
		t.Fatalf("email=%q", byID.Email)
	}
}

func TestMemoryStoreEmailIsCaseSensitive(t *testing.T) {
	t.Parallel()

	st := NewMemoryStore()
	ctx := context.Background()

	if _, err := st.CreateUser(ctx, CreateUserInput{Email: "a@b.com", Name: "A", PasswordHash: "x"}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if _, err := st.GetUserByEmail(ctx, "A@B.com"); !IsNotFound(err) {
		t.Fatalf("expected not-found for different casing, got %v", err)
	}

	// Different casing is a different stored email, not a conflict.
	if _, err := st.CreateUser(ctx, CreateUserInput{Email: "A@b.com", Name: "A", PasswordHash: "x"}); err != nil {
		t.Fatalf("CreateUser with different casing: %v", err)
	}
}

func TestMemoryStoreDuplicateEmail(t *testing.T) {
	t.Parallel()

	st := NewMemoryStore()
	ctx := context.Background()

	if _, err := st.CreateUser(ctx, CreateUserInput{Email: "a@b.com", Name: "A", PasswordHash: "x"}); err != nil {
		t.Fatalf("first CreateUser: %v", err)
	}
	_, err := st.CreateUser(ctx, CreateUserInput{Email: "a@b.com", Name: "B", PasswordHash: "y"})
	if !IsConflict(err) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	var ce ConflictError
	if !errors.As(err, &ce) || ce.Field != "email" {
		t.Fatalf("conflict field=%q want=email", ce.Field)
	}
}

func TestMemoryStoreConcurrentDuplicate(t *testing.T) {
	t.Parallel()

	st := NewMemoryStore()
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = st.CreateUser(ctx, CreateUserInput{
				Email:        "race@b.com",
				Name:         "R",
				PasswordHash: "x",
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		if !IsConflict(err) {
			t.Fatalf("unexpected error kind: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("exactly one concurrent create must win, got %d", succeeded)
	}
}

func TestMemoryStoreMissingFields(t *testing.T) {
	t.Parallel()

	st := NewMemoryStore()
	ctx := context.Background()

	cases := []CreateUserInput{
		{Name: "A", PasswordHash: "x"},
		{Email: "a@b.com", PasswordHash: "x"},
		{Email: "a@b.com", Name: "A"},
	}
	for _, in := range cases {
		if _, err := st.CreateUser(ctx, in); !IsInvalidInput(err) {
			t.Fatalf("expected invalid input for %+v, got %v", in, err)
		}
	}
}
