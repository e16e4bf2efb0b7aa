package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/velora-beauty/velora/internal/shared"
)

type stubRepo struct {
	entries   []Entry
	insertErr error
	deleted   int64
}

func (s *stubRepo) Insert(ctx context.Context, entry Entry) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.entries = append(s.entries, entry)
	return nil
}

func (s *stubRepo) Find(ctx context.Context, filter Filter, skip, limit int64) ([]Entry, error) {
	resolved := filter.Resolved()
	out := make([]Entry, 0)
	for _, e := range s.entries {
		if resolved.ActorEmail != "" && e.ActorEmail != resolved.ActorEmail {
			continue
		}
		if resolved.Action != "" && e.Action != resolved.Action {
			continue
		}
		out = append(out, e)
	}
	start := skip
	if start > int64(len(out)) {
		start = int64(len(out))
	}
	end := start + limit
	if end > int64(len(out)) {
		end = int64(len(out))
	}
	return out[start:end], nil
}

func (s *stubRepo) DeleteBefore(ctx context.Context, cutoff string) (int64, error) {
	kept := s.entries[:0]
	var deleted int64
	for _, e := range s.entries {
		if e.CreatedAt < cutoff {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	s.deleted = deleted
	return deleted, nil
}

func TestRecorderSanitizesSensitiveKeys(t *testing.T) {
	repo := &stubRepo{}
	rec := NewRecorder(repo, nil)
	sess := &shared.Session{Email: "admin@velora.local", Role: "admin"}

	details := map[string]any{
		"password":     "hunter2",
		"passwordHash": "$2a$10$abc",
		"newPassword":  "hunter3",
		"email":        "client@example.com",
	}
	rec.Record(context.Background(), sess, "users:create", "user", details)

	if len(repo.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(repo.entries))
	}
	got := repo.entries[0]
	for _, key := range []string{"password", "passwordHash", "newPassword"} {
		if _, ok := got.Details[key]; ok {
			t.Fatalf("expected %q to be stripped", key)
		}
	}
	if got.Details["email"] != "client@example.com" {
		t.Fatalf("expected email to survive, got %v", got.Details["email"])
	}
	// Caller's map must not be mutated.
	if details["password"] != "hunter2" {
		t.Fatalf("caller map was mutated")
	}
}

func TestRecorderUnknownActorFallback(t *testing.T) {
	repo := &stubRepo{}
	rec := NewRecorder(repo, nil)

	rec.Record(context.Background(), nil, "bookings:create", "booking", nil)

	if len(repo.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(repo.entries))
	}
	if repo.entries[0].ActorEmail != UnknownActor {
		t.Fatalf("expected actor %q, got %q", UnknownActor, repo.entries[0].ActorEmail)
	}
	if repo.entries[0].ActorRole != "" {
		t.Fatalf("expected empty role for anonymous actor, got %q", repo.entries[0].ActorRole)
	}
}

func TestRecorderNeverFails(t *testing.T) {
	repo := &stubRepo{insertErr: errors.New("mongo down")}
	rec := NewRecorder(repo, nil)

	// Must not panic and must not surface the error to the caller.
	rec.Record(context.Background(), nil, "services:list", "service", map[string]any{"count": 3})
}

func TestRecorderLiftsMessageAndResourceID(t *testing.T) {
	repo := &stubRepo{}
	rec := NewRecorder(repo, nil)
	rec.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	rec.Record(context.Background(), nil, "audit:prune", "audit_logs", map[string]any{
		"message":    "Pruned logs before cutoff",
		"resourceId": "abc",
	})

	got := repo.entries[0]
	if got.Message != "Pruned logs before cutoff" {
		t.Fatalf("expected message lifted, got %q", got.Message)
	}
	if got.ResourceID != "abc" {
		t.Fatalf("expected resourceId lifted, got %q", got.ResourceID)
	}
	if got.CreatedAt != "2026-03-01T12:00:00.000Z" {
		t.Fatalf("unexpected createdAt %q", got.CreatedAt)
	}
}
