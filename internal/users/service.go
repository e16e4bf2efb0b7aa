package users

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/velora-beauty/velora/internal/audit"
	"github.com/velora-beauty/velora/internal/rbac"
	"github.com/velora-beauty/velora/internal/shared"
)

const (
	bcryptCost = 10
	listLimit  = 200
)

// CreateInput carries the fields for a new account.
type CreateInput struct {
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Password    string   `json:"password"`
	Permissions []string `json:"permissions"`
}

// UpdateInput carries an account mutation. NewPassword triggers a
// credential reset; passwordHash can never be supplied directly.
type UpdateInput struct {
	Name        *string  `json:"name"`
	Role        *string  `json:"role"`
	Permissions []string `json:"permissions"`
	NewPassword string   `json:"newPassword"`
}

// Service handles user management business logic. Every mutation is
// audited with the acting session.
type Service struct {
	repo     RepositoryPort
	catalog  *rbac.Catalog
	recorder *audit.Recorder
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, catalog *rbac.Catalog, recorder *audit.Recorder) *Service {
	return &Service{repo: repo, catalog: catalog, recorder: recorder}
}

// List returns up to 200 users without credential hashes.
func (s *Service) List(ctx context.Context, sess *shared.Session) ([]User, error) {
	items, err := s.repo.List(ctx, listLimit)
	if err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, sess, "users:list", "user", map[string]any{"count": len(items)})
	return items, nil
}

// Create stores a new account. The role is whitelisted with a viewer
// fallback; an empty permission override defaults to the catalog set.
func (s *Service) Create(ctx context.Context, sess *shared.Session, input CreateInput) error {
	if input.Email == "" || input.Password == "" {
		return fmt.Errorf("%w: email and password are required", shared.ErrValidation)
	}
	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return shared.ErrConflict
	}

	role := rbac.RoleOrDefault(input.Role)
	permissions := input.Permissions
	if len(permissions) == 0 {
		perms, err := s.catalog.PermissionsForRole(role)
		if err != nil {
			return err
		}
		permissions = rbac.Strings(perms)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return err
	}

	now := audit.FormatTime(time.Now())
	if err := s.repo.Insert(ctx, User{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: string(hash),
		Role:         string(role),
		Permissions:  permissions,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		return err
	}

	s.recorder.Record(ctx, sess, "users:create", "user", map[string]any{
		"email":       input.Email,
		"role":        string(role),
		"permissions": permissions,
	})
	return nil
}

// Update mutates name/role/permissions and optionally resets the
// credential. A password reset is audited under a distinct action.
func (s *Service) Update(ctx context.Context, sess *shared.Session, id string, input UpdateInput) error {
	update := Update{
		Name:        input.Name,
		Role:        input.Role,
		Permissions: input.Permissions,
		UpdatedAt:   audit.FormatTime(time.Now()),
	}

	action := "users:update"
	if input.NewPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcryptCost)
		if err != nil {
			return err
		}
		hashStr := string(hash)
		update.PasswordHash = &hashStr
		action = "users:password-reset"
	}

	if err := s.repo.Update(ctx, id, update); err != nil {
		return err
	}

	details := map[string]any{"resourceId": id}
	if input.Name != nil {
		details["name"] = *input.Name
	}
	if input.Role != nil {
		details["role"] = *input.Role
	}
	if input.Permissions != nil {
		details["permissions"] = input.Permissions
	}
	s.recorder.Record(ctx, sess, action, "user", details)
	return nil
}

// Delete removes an account.
func (s *Service) Delete(ctx context.Context, sess *shared.Session, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.recorder.Record(ctx, sess, "users:delete", "user", map[string]any{"resourceId": id})
	return nil
}
