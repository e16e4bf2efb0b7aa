package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/velora-beauty/velora/internal/shared"
)

func fixedNow() time.Time {
	return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
}

func newTestService(repo *stubRepo) *Service {
	rec := NewRecorder(repo, nil)
	rec.now = fixedNow
	svc := NewService(repo, rec)
	svc.now = fixedNow
	return svc
}

func entryAt(t time.Time, action string) Entry {
	return Entry{
		ActorEmail: "admin@velora.local",
		ActorRole:  "admin",
		Action:     action,
		Resource:   "user",
		CreatedAt:  FormatTime(t),
	}
}

func TestQueryClampsPaging(t *testing.T) {
	repo := &stubRepo{}
	for i := 0; i < 10; i++ {
		repo.entries = append(repo.entries, entryAt(fixedNow().Add(-time.Duration(i)*time.Hour), "users:list"))
	}
	svc := newTestService(repo)

	result, err := svc.Query(context.Background(), Filter{}, 0, 500001)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if result.Limit != 500 {
		t.Fatalf("expected limit clamped to 500, got %d", result.Limit)
	}
	if result.Page != 1 {
		t.Fatalf("expected page clamped to 1, got %d", result.Page)
	}

	result, err = svc.Query(context.Background(), Filter{}, 1, 0)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if result.Limit != 50 {
		t.Fatalf("expected default limit 50, got %d", result.Limit)
	}
}

func TestQueryActionContainsSupersedesAction(t *testing.T) {
	f := Filter{Action: "users:create", ActionContains: "prune"}
	resolved := f.Resolved()
	if resolved.Action != "" {
		t.Fatalf("expected exact action dropped, got %q", resolved.Action)
	}
	if resolved.ActionContains != "prune" {
		t.Fatalf("expected actionContains kept, got %q", resolved.ActionContains)
	}
}

func TestPruneByDays(t *testing.T) {
	repo := &stubRepo{}
	repo.entries = append(repo.entries,
		entryAt(fixedNow().AddDate(0, 0, -40), "users:create"),
		entryAt(fixedNow().AddDate(0, 0, -20), "users:update"),
		entryAt(fixedNow().AddDate(0, 0, -5), "users:delete"),
	)
	svc := newTestService(repo)

	result, err := svc.Prune(context.Background(), &shared.Session{Email: "admin@velora.local", Role: "admin"}, PruneSpec{Days: 30})
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if result.DeletedCount != 1 {
		t.Fatalf("expected 1 deleted, got %d", result.DeletedCount)
	}
	// Two survivors plus the prune's own audit entry.
	if len(repo.entries) != 3 {
		t.Fatalf("expected 3 entries after prune, got %d", len(repo.entries))
	}
	last := repo.entries[len(repo.entries)-1]
	if last.Action != "audit:prune" {
		t.Fatalf("expected audit:prune entry, got %q", last.Action)
	}
	if last.Details["deletedCount"] != int64(1) {
		t.Fatalf("expected deletedCount detail 1, got %v", last.Details["deletedCount"])
	}

	// A second run over the same window removes nothing new.
	result, err = svc.Prune(context.Background(), &shared.Session{Email: "admin@velora.local", Role: "admin"}, PruneSpec{Days: 30})
	if err != nil {
		t.Fatalf("second prune: %v", err)
	}
	if result.DeletedCount != 0 {
		t.Fatalf("expected 0 deleted on second run, got %d", result.DeletedCount)
	}
}

func TestPruneCutoffIsStrict(t *testing.T) {
	repo := &stubRepo{}
	cutoff := fixedNow().AddDate(0, 0, -30)
	repo.entries = append(repo.entries, entryAt(cutoff, "users:create"))
	svc := newTestService(repo)

	result, err := svc.Prune(context.Background(), nil, PruneSpec{Days: 30})
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	// An entry exactly at the cutoff survives.
	if result.DeletedCount != 0 {
		t.Fatalf("expected 0 deleted, got %d", result.DeletedCount)
	}
}

func TestPruneByBefore(t *testing.T) {
	repo := &stubRepo{}
	repo.entries = append(repo.entries,
		entryAt(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "old"),
		entryAt(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), "new"),
	)
	svc := newTestService(repo)

	result, err := svc.Prune(context.Background(), nil, PruneSpec{Before: "2026-03-01"})
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if result.DeletedCount != 1 {
		t.Fatalf("expected 1 deleted, got %d", result.DeletedCount)
	}
	if result.Cutoff != "2026-03-01T00:00:00.000Z" {
		t.Fatalf("unexpected cutoff %q", result.Cutoff)
	}
}

func TestPruneValidation(t *testing.T) {
	repo := &stubRepo{}
	repo.entries = append(repo.entries, entryAt(fixedNow().AddDate(0, 0, -100), "old"))
	svc := newTestService(repo)

	_, err := svc.Prune(context.Background(), nil, PruneSpec{})
	if !errors.Is(err, shared.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	_, err = svc.Prune(context.Background(), nil, PruneSpec{Before: "not-a-date"})
	if !errors.Is(err, shared.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	// Nothing deleted, no audit entry written.
	if len(repo.entries) != 1 {
		t.Fatalf("expected entries untouched, got %d", len(repo.entries))
	}
}

func TestNormalizeTimestamp(t *testing.T) {
	if got := NormalizeTimestamp("2026-03-01"); got != "2026-03-01T00:00:00.000Z" {
		t.Fatalf("unexpected normalization %q", got)
	}
	if got := NormalizeTimestamp("garbage"); got != "garbage" {
		t.Fatalf("expected passthrough, got %q", got)
	}
	if got := NormalizeTimestamp(""); got != "" {
		t.Fatalf("expected empty passthrough, got %q", got)
	}
}
