package users

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/velora-beauty/velora/internal/audit"
	"github.com/velora-beauty/velora/internal/rbac"
	"github.com/velora-beauty/velora/internal/shared"
)

type stubUsersRepo struct {
	byEmail map[string]User
	updates map[string]Update
	deleted []string
}

func (s *stubUsersRepo) List(ctx context.Context, limit int64) ([]User, error) {
	out := make([]User, 0, len(s.byEmail))
	for _, u := range s.byEmail {
		out = append(out, u)
	}
	return out, nil
}

func (s *stubUsersRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &u, nil
}

func (s *stubUsersRepo) Insert(ctx context.Context, u User) error {
	if s.byEmail == nil {
		s.byEmail = make(map[string]User)
	}
	s.byEmail[u.Email] = u
	return nil
}

func (s *stubUsersRepo) Update(ctx context.Context, id string, update Update) error {
	if s.updates == nil {
		s.updates = make(map[string]Update)
	}
	s.updates[id] = update
	return nil
}

func (s *stubUsersRepo) Delete(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type captureAuditRepo struct {
	entries []audit.Entry
}

func (c *captureAuditRepo) Insert(ctx context.Context, e audit.Entry) error {
	c.entries = append(c.entries, e)
	return nil
}

func (c *captureAuditRepo) Find(ctx context.Context, f audit.Filter, skip, limit int64) ([]audit.Entry, error) {
	return c.entries, nil
}

func (c *captureAuditRepo) DeleteBefore(ctx context.Context, cutoff string) (int64, error) {
	return 0, nil
}

func newTestService() (*Service, *stubUsersRepo, *captureAuditRepo) {
	repo := &stubUsersRepo{}
	auditRepo := &captureAuditRepo{}
	svc := NewService(repo, rbac.NewCatalog(), audit.NewRecorder(auditRepo, nil))
	return svc, repo, auditRepo
}

func adminSession() *shared.Session {
	return &shared.Session{Email: "admin@velora.local", Role: "admin"}
}

func TestCreateDefaultsFromCatalog(t *testing.T) {
	svc, repo, auditRepo := newTestService()

	err := svc.Create(context.Background(), adminSession(), CreateInput{
		Email:    "new@velora.local",
		Password: "pw",
		Role:     "staff",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	u := repo.byEmail["new@velora.local"]
	if len(u.Permissions) != 5 {
		t.Fatalf("expected staff defaults, got %v", u.Permissions)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("pw")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	if len(auditRepo.entries) != 1 || auditRepo.entries[0].Action != "users:create" {
		t.Fatalf("expected users:create audit entry, got %+v", auditRepo.entries)
	}
	if _, leaked := auditRepo.entries[0].Details["password"]; leaked {
		t.Fatalf("password leaked into audit details")
	}
}

func TestCreateConflictAndValidation(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.byEmail = map[string]User{"dup@velora.local": {Email: "dup@velora.local"}}

	if err := svc.Create(context.Background(), adminSession(), CreateInput{Email: "dup@velora.local", Password: "pw"}); !errors.Is(err, shared.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err := svc.Create(context.Background(), adminSession(), CreateInput{Email: "x@velora.local"}); !errors.Is(err, shared.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdatePasswordResetAction(t *testing.T) {
	svc, repo, auditRepo := newTestService()

	err := svc.Update(context.Background(), adminSession(), "user-1", UpdateInput{NewPassword: "fresh"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	update := repo.updates["user-1"]
	if update.PasswordHash == nil {
		t.Fatalf("expected password hash set")
	}
	if auditRepo.entries[0].Action != "users:password-reset" {
		t.Fatalf("expected users:password-reset, got %q", auditRepo.entries[0].Action)
	}
	if _, leaked := auditRepo.entries[0].Details["newPassword"]; leaked {
		t.Fatalf("newPassword leaked into audit details")
	}

	name := "Renamed"
	if err := svc.Update(context.Background(), adminSession(), "user-1", UpdateInput{Name: &name}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if auditRepo.entries[1].Action != "users:update" {
		t.Fatalf("expected users:update, got %q", auditRepo.entries[1].Action)
	}
	if auditRepo.entries[1].Details["name"] != "Renamed" {
		t.Fatalf("expected name detail, got %v", auditRepo.entries[1].Details)
	}
}

func TestDeleteAudited(t *testing.T) {
	svc, repo, auditRepo := newTestService()

	if err := svc.Delete(context.Background(), adminSession(), "user-9"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != "user-9" {
		t.Fatalf("expected delete call, got %v", repo.deleted)
	}
	if auditRepo.entries[0].Action != "users:delete" || auditRepo.entries[0].ResourceID != "user-9" {
		t.Fatalf("unexpected audit entry %+v", auditRepo.entries[0])
	}
}
