package templates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/velora-beauty/velora/internal/audit"
	"github.com/velora-beauty/velora/internal/cache"
	"github.com/velora-beauty/velora/internal/mailer"
	"github.com/velora-beauty/velora/internal/shared"
)

// Service coordinates template reads/writes, the listing cache, and audit
// records. Stored templates shadow the embedded defaults by name.
type Service struct {
	repo     RepositoryPort
	cache    *cache.Cache
	recorder *audit.Recorder
	now      func() time.Time
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, c *cache.Cache, recorder *audit.Recorder) *Service {
	return &Service{repo: repo, cache: c, recorder: recorder, now: time.Now}
}

// List merges stored templates over the embedded defaults and audits the read.
func (s *Service) List(ctx context.Context, sess *shared.Session) ([]Template, error) {
	var items []Template
	err := s.cache.FetchJSON(ctx, cache.KeyEmailTemplates, &items, func(ctx context.Context) (interface{}, error) {
		stored, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		seen := make(map[string]bool, len(stored))
		for _, t := range stored {
			seen[t.Name] = true
		}
		for name := range defaultSubjects {
			if seen[name] {
				continue
			}
			if def, ok := defaultTemplate(name); ok {
				stored = append(stored, def)
			}
		}
		return stored, nil
	})
	if err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, sess, "templates:list", "emailTemplate", map[string]any{"count": len(items)})
	return items, nil
}

// Get returns the stored template for name, falling back to the embedded
// default when none is stored.
func (s *Service) Get(ctx context.Context, name string) (*Template, error) {
	t, err := s.repo.FindByName(ctx, name)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if def, ok := defaultTemplate(name); ok {
		return &def, nil
	}
	return nil, shared.ErrNotFound
}

// Render resolves a template by name and substitutes data into its subject
// and body.
func (s *Service) Render(ctx context.Context, name string, data map[string]string) (subject, html string, err error) {
	t, err := s.Get(ctx, name)
	if err != nil {
		return "", "", err
	}
	subject, err = mailer.Render(t.Subject, data)
	if err != nil {
		return "", "", err
	}
	html, err = mailer.Render(t.Body, data)
	if err != nil {
		return "", "", err
	}
	return subject, html, nil
}

// Save upserts a template and audits the write.
func (s *Service) Save(ctx context.Context, sess *shared.Session, t Template) error {
	if t.Name == "" || t.Subject == "" || t.Body == "" {
		return fmt.Errorf("%w: name, subject and body are required", shared.ErrValidation)
	}
	now := audit.FormatTime(s.now())
	t.CreatedAt = now
	t.UpdatedAt = now
	if sess != nil {
		t.UpdatedBy = sess.Email
	}
	if err := s.repo.Upsert(ctx, t); err != nil {
		return err
	}
	s.recorder.Record(ctx, sess, "templates:update", "emailTemplate", map[string]any{
		"resourceId": t.Name,
		"subject":    t.Subject,
	})
	return s.cache.Invalidate(ctx, cache.KeyEmailTemplates)
}

// Delete removes a stored template. Well-known names fall back to their
// embedded default afterwards.
func (s *Service) Delete(ctx context.Context, sess *shared.Session, name string) error {
	if err := s.repo.Delete(ctx, name); err != nil {
		return err
	}
	s.recorder.Record(ctx, sess, "templates:delete", "emailTemplate", map[string]any{"resourceId": name})
	return s.cache.Invalidate(ctx, cache.KeyEmailTemplates)
}
