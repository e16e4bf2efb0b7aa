package bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/velora-beauty/velora/internal/audit"
	"github.com/velora-beauty/velora/internal/shared"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

var validate = validator.New()

// Notifier delivers the booking confirmation. A nil Notifier skips email.
type Notifier interface {
	BookingConfirmation(ctx context.Context, b Booking) error
}

// Service coordinates booking reads/writes, confirmation email, and audit
// records.
type Service struct {
	repo     RepositoryPort
	recorder *audit.Recorder
	notifier Notifier
	now      func() time.Time
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, recorder *audit.Recorder, notifier Notifier) *Service {
	return &Service{repo: repo, recorder: recorder, notifier: notifier, now: time.Now}
}

// Create stores a public booking request and queues the confirmation email.
// Email failures are logged through the audit trail but never block the
// booking itself.
func (s *Service) Create(ctx context.Context, form Form) (Booking, error) {
	if err := validate.Struct(form); err != nil {
		return Booking{}, fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	now := audit.FormatTime(s.now())
	b := Booking{
		Name:      form.Name,
		Email:     form.Email,
		Phone:     form.Phone,
		Service:   form.Service,
		Date:      form.Date,
		Time:      form.Time,
		Message:   form.Message,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, b); err != nil {
		return Booking{}, err
	}
	s.recorder.Record(ctx, nil, "bookings:create", "booking", map[string]any{
		"email":   form.Email,
		"service": form.Service,
		"date":    form.Date,
	})
	if s.notifier != nil {
		if err := s.notifier.BookingConfirmation(ctx, b); err != nil {
			s.recorder.Record(ctx, nil, "bookings:notify-failed", "booking", map[string]any{
				"email":   form.Email,
				"message": err.Error(),
			})
		}
	}
	return b, nil
}

// List returns bookings for the admin surface and audits the read.
func (s *Service) List(ctx context.Context, sess *shared.Session, status string, page, limit int) ([]Booking, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if page < 1 {
		page = 1
	}
	skip := int64(page-1) * int64(limit)
	items, err := s.repo.List(ctx, status, skip, int64(limit))
	if err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, sess, "bookings:list", "booking", map[string]any{"count": len(items)})
	return items, nil
}

// Review moves a booking through the workflow.
func (s *Service) Review(ctx context.Context, sess *shared.Session, id string, review Review) error {
	switch review.Status {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusDone:
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
	if err := s.repo.Update(ctx, id, set); err != nil {
		return err
	}
	s.recorder.Record(ctx, sess, "bookings:update", "booking", map[string]any{
		"resourceId": id,
		"status":     review.Status,
	})
	return nil
}

// Delete removes one booking.
func (s *Service) Delete(ctx context.Context, sess *shared.Session, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.recorder.Record(ctx, sess, "bookings:delete", "booking", map[string]any{"resourceId": id})
	return nil
}
