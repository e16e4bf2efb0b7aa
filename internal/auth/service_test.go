package auth

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/velora-beauty/velora/internal/rbac"
	"github.com/velora-beauty/velora/internal/shared"
)

type stubUserRepo struct {
	users map[string]User
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := s.users[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &u, nil
}

func (s *stubUserRepo) Insert(ctx context.Context, u User) error {
	if s.users == nil {
		s.users = make(map[string]User)
	}
	s.users[u.Email] = u
	return nil
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return string(hash)
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	repo := &stubUserRepo{users: map[string]User{
		"admin@velora.local": {
			Email:        "admin@velora.local",
			PasswordHash: hashOf(t, "correct-horse"),
			Role:         "admin",
		},
	}}
	svc := NewService(repo, rbac.NewCatalog())

	_, wrongPass := svc.Authenticate(context.Background(), "admin@velora.local", "nope")
	_, noUser := svc.Authenticate(context.Background(), "ghost@velora.local", "nope")
	if !errors.Is(wrongPass, shared.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if !errors.Is(noUser, shared.ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", noUser)
	}
	if wrongPass.Error() != noUser.Error() {
		t.Fatalf("failure modes are distinguishable: %q vs %q", wrongPass, noUser)
	}

	if _, err := svc.Authenticate(context.Background(), "", ""); !errors.Is(err, shared.ErrInvalidCredentials) {
		t.Fatalf("empty credentials: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticateResolvesPermissions(t *testing.T) {
	repo := &stubUserRepo{users: map[string]User{
		"staff@velora.local": {
			Email:        "staff@velora.local",
			PasswordHash: hashOf(t, "pw"),
			Role:         "staff",
		},
		"custom@velora.local": {
			Email:        "custom@velora.local",
			PasswordHash: hashOf(t, "pw"),
			Role:         "staff",
			Permissions:  []string{"users:read"},
		},
	}}
	svc := NewService(repo, rbac.NewCatalog())

	id, err := svc.Authenticate(context.Background(), "staff@velora.local", "pw")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if len(id.Permissions) != 5 {
		t.Fatalf("expected staff defaults (5 perms), got %v", id.Permissions)
	}

	// Stored per-user permissions override the role defaults.
	id, err = svc.Authenticate(context.Background(), "custom@velora.local", "pw")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if len(id.Permissions) != 1 || id.Permissions[0] != "users:read" {
		t.Fatalf("expected stored override, got %v", id.Permissions)
	}
}

func TestAuthenticateUnknownRoleFallsBackToViewer(t *testing.T) {
	repo := &stubUserRepo{users: map[string]User{
		"odd@velora.local": {
			Email:        "odd@velora.local",
			PasswordHash: hashOf(t, "pw"),
			Role:         "wizard",
		},
	}}
	svc := NewService(repo, rbac.NewCatalog())

	id, err := svc.Authenticate(context.Background(), "odd@velora.local", "pw")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if id.Role != "viewer" {
		t.Fatalf("expected viewer fallback, got %q", id.Role)
	}
}

func TestSeedAdmin(t *testing.T) {
	repo := &stubUserRepo{}
	svc := NewService(repo, rbac.NewCatalog())

	if err := svc.SeedAdmin(context.Background(), "admin@velora.local", "", "pw"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	u := repo.users["admin@velora.local"]
	if u.Role != "admin" {
		t.Fatalf("expected admin role, got %q", u.Role)
	}
	if u.Name != "admin@velora.local" {
		t.Fatalf("expected name defaulted to email, got %q", u.Name)
	}
	if len(u.Permissions) != 18 {
		t.Fatalf("expected full admin permission set, got %d", len(u.Permissions))
	}

	if err := svc.SeedAdmin(context.Background(), "admin@velora.local", "", "pw"); !errors.Is(err, shared.ErrConflict) {
		t.Fatalf("expected conflict on reseed, got %v", err)
	}
	if err := svc.SeedAdmin(context.Background(), "", "", ""); !errors.Is(err, shared.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
