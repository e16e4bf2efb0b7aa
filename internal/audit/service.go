package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/velora-beauty/velora/internal/shared"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// Result wraps a page of entries with the effective paging values.
type Result struct {
	Items []Entry
	Page  int
	Limit int
}

// PruneSpec selects the retention cutoff: exactly one of Days (> 0, cutoff
// is now minus that many days) or Before (an ISO instant) must be given.
type PruneSpec struct {
	Days   int
	Before string
}

// PruneResult reports what a prune run removed.
type PruneResult struct {
	DeletedCount int64
	Cutoff       string
}

// Service coordinates audit queries and retention pruning.
type Service struct {
	repo     Repository
	recorder *Recorder
	now      func() time.Time
}

// NewService constructs the query/prune service.
func NewService(repo Repository, recorder *Recorder) *Service {
	return &Service{repo: repo, recorder: recorder, now: time.Now}
}

// Query returns one page of entries, newest first. Limit is clamped to
// [1, 500] with a default of 50; page is clamped to >= 1.
func (s *Service) Query(ctx context.Context, filter Filter, page, limit int) (Result, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if page <= 0 {
		page = 1
	}
	skip := int64(page-1) * int64(limit)

	items, err := s.repo.Find(ctx, filter.Resolved(), skip, int64(limit))
	if err != nil {
		return Result{}, err
	}
	return Result{Items: items, Page: page, Limit: limit}, nil
}

// Prune deletes entries strictly older than the resolved cutoff and then
// records the prune itself as an audit:prune entry. A validation failure
// deletes nothing and writes no audit entry.
func (s *Service) Prune(ctx context.Context, sess *shared.Session, spec PruneSpec) (PruneResult, error) {
	cutoff, err := s.resolveCutoff(spec)
	if err != nil {
		return PruneResult{}, err
	}

	deleted, err := s.repo.DeleteBefore(ctx, cutoff)
	if err != nil {
		return PruneResult{}, err
	}

	s.recorder.Record(ctx, sess, "audit:prune", "audit_logs", map[string]any{
		"message":      fmt.Sprintf("Pruned logs before %s", cutoff),
		"deletedCount": deleted,
	})
	return PruneResult{DeletedCount: deleted, Cutoff: cutoff}, nil
}

func (s *Service) resolveCutoff(spec PruneSpec) (string, error) {
	if spec.Before != "" {
		t, err := parseISO(spec.Before)
		if err != nil {
			return "", fmt.Errorf("%w: invalid ISO date in \"before\"", shared.ErrValidation)
		}
		return FormatTime(t), nil
	}
	if spec.Days > 0 {
		return FormatTime(s.now().AddDate(0, 0, -spec.Days)), nil
	}
	return "", fmt.Errorf("%w: provide either numeric days > 0 or an ISO date in \"before\"", shared.ErrValidation)
}

func parseISO(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, TimeLayout, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("audit: unparseable timestamp %q", value)
}

// NormalizeTimestamp converts a caller-supplied ISO timestamp into the
// storage layout so range filters compare correctly. Unparseable values
// pass through unchanged.
func NormalizeTimestamp(value string) string {
	if value == "" {
		return ""
	}
	t, err := parseISO(value)
	if err != nil {
		return value
	}
	return FormatTime(t)
}
