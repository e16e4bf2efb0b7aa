package resources

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/velora-beauty/velora/internal/audit"
	"github.com/velora-beauty/velora/internal/catalog"
	"github.com/velora-beauty/velora/internal/shared"
)

const (
	defaultPublicLimit = 20
	maxPublicLimit     = 50
)

// Service coordinates resource reads/writes and audits every mutation.
type Service struct {
	repo     RepositoryPort
	recorder *audit.Recorder
	now      func() time.Time
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, recorder *audit.Recorder) *Service {
	return &Service{repo: repo, recorder: recorder, now: time.Now}
}

// PublicList returns published resources. Limit is clamped to [1, 50] and
// defaults to 20; page starts at 1.
func (s *Service) PublicList(ctx context.Context, filter PublicFilter, page, limit int) ([]Resource, error) {
	if limit <= 0 {
		limit = defaultPublicLimit
	}
	if limit > maxPublicLimit {
		limit = maxPublicLimit
	}
	if page < 1 {
		page = 1
	}
	skip := int64(page-1) * int64(limit)
	return s.repo.ListPublished(ctx, filter, skip, int64(limit))
}

// PublicGet returns one published resource by slug.
func (s *Service) PublicGet(ctx context.Context, slug string) (*Resource, error) {
	if slug == "" {
		return nil, fmt.Errorf("%w: slug is required", shared.ErrValidation)
	}
	return s.repo.FindPublishedBySlug(ctx, slug)
}

// List returns every resource for the admin surface and audits the read.
func (s *Service) List(ctx context.Context, sess *shared.Session) ([]Resource, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, sess, "resources:list", "resource", map[string]any{"count": len(items)})
	return items, nil
}

// Create stores a new resource. Status defaults to draft, the slug to a
// normalized form of the title.
func (s *Service) Create(ctx context.Context, sess *shared.Session, res Resource) error {
	if res.Title == "" {
		return fmt.Errorf("%w: title is required", shared.ErrValidation)
	}
	if res.Slug == "" {
		res.Slug = catalog.Slugify(res.Title)
	}
	if res.Status == "" {
		res.Status = StatusDraft
	}
	if sess != nil {
		res.AuthorEmail = sess.Email
	}
	now := audit.FormatTime(s.now())
	res.CreatedAt = now
	res.UpdatedAt = now
	if err := s.repo.Insert(ctx, res); err != nil {
		return err
	}
	s.recorder.Record(ctx, sess, "resources:create", "resource", map[string]any{
		"title":  res.Title,
		"slug":   res.Slug,
		"status": res.Status,
	})
	return nil
}

// Update mutates the provided fields of one resource.
func (s *Service) Update(ctx context.Context, sess *shared.Session, id string, res Resource) error {
	set := bson.M{"updatedAt": audit.FormatTime(s.now())}
	details := map[string]any{"resourceId": id}
	if res.Title != "" {
		set["title"] = res.Title
		details["title"] = res.Title
	}
	if res.Slug != "" {
		set["slug"] = res.Slug
	}
	if res.Summary != "" {
		set["summary"] = res.Summary
	}
	if res.Content != "" {
		set["content"] = res.Content
	}
	if res.HeroImage != "" {
		set["heroImage"] = res.HeroImage
	}
	if res.Category != "" {
		set["category"] = res.Category
	}
	if res.Tags != nil {
		set["tags"] = res.Tags
	}
	if res.Status != "" {
		set["status"] = res.Status
		details["status"] = res.Status
	}
	if res.CTALabel != "" {
		set["ctaLabel"] = res.CTALabel
	}
	if res.CTAHref != "" {
		set["ctaHref"] = res.CTAHref
	}
	if err := s.repo.Update(ctx, id, set); err != nil {
		return err
	}
	s.recorder.Record(ctx, sess, "resources:update", "resource", details)
	return nil
}

// Delete removes one resource.
func (s *Service) Delete(ctx context.Context, sess *shared.Session, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.recorder.Record(ctx, sess, "resources:delete", "resource", map[string]any{"resourceId": id})
	return nil
}
