package trainings

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/velora-beauty/velora/internal/audit"
	"github.com/velora-beauty/velora/internal/cache"
	"github.com/velora-beauty/velora/internal/catalog"
	"github.com/velora-beauty/velora/internal/shared"
)

const (
	defaultApplicationLimit = 50
	maxApplicationLimit     = 200
)

var validate = validator.New()

// Service coordinates programs, applications, the public listing cache,
// and audit records.
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

// PublicPrograms returns active programs through the listing cache.
func (s *Service) PublicPrograms(ctx context.Context) ([]Program, error) {
	var items []Program
	err := s.cache.FetchJSON(ctx, cache.KeyTrainingPrograms, &items, func(ctx context.Context) (interface{}, error) {
		return s.repo.ListPrograms(ctx, true)
	})
	return items, err
}

// ListPrograms returns all programs for the admin surface and audits the read.
func (s *Service) ListPrograms(ctx context.Context, sess *shared.Session) ([]Program, error) {
	items, err := s.repo.ListPrograms(ctx, false)
	if err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, sess, "trainings:list", "training", map[string]any{"count": len(items)})
	return items, nil
}

// CreateProgram stores a new program. The slug defaults to a normalized
// form of the title, new programs start active.
func (s *Service) CreateProgram(ctx context.Context, sess *shared.Session, p Program) error {
	if p.Title == "" {
		return fmt.Errorf("%w: title is required", shared.ErrValidation)
	}
	if p.Slug == "" {
		p.Slug = catalog.Slugify(p.Title)
	}
	now := audit.FormatTime(s.now())
	p.Active = true
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := s.repo.InsertProgram(ctx, p); err != nil {
		return err
	}
	s.recorder.Record(ctx, sess, "trainings:create", "training", map[string]any{
		"title": p.Title,
		"slug":  p.Slug,
	})
	return s.cache.Invalidate(ctx, cache.KeyTrainingPrograms)
}

// UpdateProgram mutates the provided fields of one program.
func (s *Service) UpdateProgram(ctx context.Context, sess *shared.Session, id string, p Program) error {
	set := bson.M{"updatedAt": audit.FormatTime(s.now()), "active": p.Active}
	details := map[string]any{"resourceId": id}
	if p.Title != "" {
		set["title"] = p.Title
		details["title"] = p.Title
	}
	if p.Slug != "" {
		set["slug"] = p.Slug
	}
	if p.Description != "" {
		set["description"] = p.Description
	}
	if p.Level != "" {
		set["level"] = p.Level
	}
	if p.Duration != "" {
		set["duration"] = p.Duration
	}
	if p.Price > 0 {
		set["price"] = p.Price
	}
	if p.Currency != "" {
		set["currency"] = p.Currency
	}
	if err := s.repo.UpdateProgram(ctx, id, set); err != nil {
		return err
	}
	s.recorder.Record(ctx, sess, "trainings:update", "training", details)
	return s.cache.Invalidate(ctx, cache.KeyTrainingPrograms)
}

// DeleteProgram removes one program.
func (s *Service) DeleteProgram(ctx context.Context, sess *shared.Session, id string) error {
	if err := s.repo.DeleteProgram(ctx, id); err != nil {
		return err
	}
	s.recorder.Record(ctx, sess, "trainings:delete", "training", map[string]any{"resourceId": id})
	return s.cache.Invalidate(ctx, cache.KeyTrainingPrograms)
}

// Apply stores a public training application. The caller is anonymous, so
// the audit record falls back to the unknown actor.
func (s *Service) Apply(ctx context.Context, form ApplicationForm) (Application, error) {
	if err := validate.Struct(form); err != nil {
		return Application{}, fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	now := audit.FormatTime(s.now())
	app := Application{
		ProgramID: form.ProgramID,
		Program:   form.Program,
		Name:      form.Name,
		Email:     form.Email,
		Phone:     form.Phone,
		Message:   form.Message,
		Status:    ApplicationNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.InsertApplication(ctx, app); err != nil {
		return Application{}, err
	}
	s.recorder.Record(ctx, nil, "applications:create", "application", map[string]any{
		"email":   form.Email,
		"program": form.Program,
	})
	return app, nil
}

// ListApplications returns applications for the admin surface, optionally
// filtered by status, and audits the read.
func (s *Service) ListApplications(ctx context.Context, sess *shared.Session, status string, page, limit int) ([]Application, error) {
	if limit <= 0 {
		limit = defaultApplicationLimit
	}
	if limit > maxApplicationLimit {
		limit = maxApplicationLimit
	}
	if page < 1 {
		page = 1
	}
	skip := int64(page-1) * int64(limit)
	items, err := s.repo.ListApplications(ctx, status, skip, int64(limit))
	if err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, sess, "applications:list", "application", map[string]any{"count": len(items)})
	return items, nil
}

// ReviewApplication moves an application through the review workflow.
func (s *Service) ReviewApplication(ctx context.Context, sess *shared.Session, id string, review Review) error {
	switch review.Status {
	case ApplicationNew, ApplicationReviewed, ApplicationAccepted, ApplicationRejected:
	default:
		return fmt.Errorf("%w: unknown status %q", shared.ErrValidation, review.Status)
	}
	set := bson.M{
		"status":    review.Status,
		"updatedAt": audit.FormatTime(s.now()),
	}
	if review.Note != "" {
		set["note"] = review.Note
	}
	if err := s.repo.UpdateApplication(ctx, id, set); err != nil {
		return err
	}
	s.recorder.Record(ctx, sess, "applications:update", "application", map[string]any{
		"resourceId": id,
		"status":     review.Status,
	})
	return nil
}

// ExportApplications returns every application matching the status filter
// for CSV download and audits the export.
func (s *Service) ExportApplications(ctx context.Context, sess *shared.Session, status string) ([]Application, error) {
	items, err := s.repo.ListApplications(ctx, status, 0, int64(maxApplicationLimit))
	if err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, sess, "applications:export", "application", map[string]any{"count": len(items)})
	return items, nil
}
