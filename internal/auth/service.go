package auth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/velora-beauty/velora/internal/audit"
	"github.com/velora-beauty/velora/internal/rbac"
	"github.com/velora-beauty/velora/internal/shared"
)

const bcryptCost = 10

// Service wraps authentication business rules.
type Service struct {
	repo    Repository
	catalog *rbac.Catalog
}

// NewService constructs a new Service.
func NewService(repo Repository, catalog *rbac.Catalog) *Service {
	return &Service{repo: repo, catalog: catalog}
}

// Authenticate validates email/password credentials. Unknown email and
// wrong password both return ErrInvalidCredentials so callers cannot
// distinguish them (prevents user enumeration).
func (s *Service) Authenticate(ctx context.Context, email, password string) (*Identity, error) {
	if email == "" || password == "" {
		return nil, shared.ErrInvalidCredentials
	}
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}

	role := rbac.RoleOrDefault(user.Role)
	permissions := user.Permissions
	if len(permissions) == 0 {
		perms, err := s.catalog.PermissionsForRole(role)
		if err != nil {
			return nil, err
		}
		permissions = rbac.Strings(perms)
	}
	return &Identity{
		Email:       user.Email,
		Name:        user.Name,
		Role:        string(role),
		Permissions: permissions,
	}, nil
}

// SeedAdmin bootstraps the first admin account. It refuses to overwrite an
// existing user with the same email.
func (s *Service) SeedAdmin(ctx context.Context, email, name, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("%w: email and password required", shared.ErrValidation)
	}
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return shared.ErrConflict
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	if name == "" {
		name = email
	}
	perms, err := s.catalog.PermissionsForRole(rbac.RoleAdmin)
	if err != nil {
		return err
	}
	now := audit.FormatTime(time.Now())
	return s.repo.Insert(ctx, User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         string(rbac.RoleAdmin),
		Permissions:  rbac.Strings(perms),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}
