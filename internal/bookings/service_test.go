package bookings

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/velora-beauty/velora/internal/audit"
	"github.com/velora-beauty/velora/internal/shared"
)

type stubBookingsRepo struct {
	inserted []Booking
	updates  map[string]bson.M
}

func (s *stubBookingsRepo) List(ctx context.Context, status string, skip, limit int64) ([]Booking, error) {
	return s.inserted, nil
}

func (s *stubBookingsRepo) Insert(ctx context.Context, b Booking) error {
	s.inserted = append(s.inserted, b)
	return nil
}

func (s *stubBookingsRepo) Update(ctx context.Context, id string, set bson.M) error {
	if s.updates == nil {
		s.updates = make(map[string]bson.M)
	}
	s.updates[id] = set
	return nil
}

func (s *stubBookingsRepo) Delete(ctx context.Context, id string) error {
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

type stubNotifier struct {
	calls []Booking
	err   error
}

func (s *stubNotifier) BookingConfirmation(ctx context.Context, b Booking) error {
	s.calls = append(s.calls, b)
	return s.err
}

func validForm() Form {
	return Form{
		Name:    "Ada",
		Email:   "ada@example.com",
		Service: "Brow Lamination",
		Date:    "2026-09-15",
		Time:    "14:00",
	}
}

func TestCreateBooking(t *testing.T) {
	repo := &stubBookingsRepo{}
	auditRepo := &captureAuditRepo{}
	notifier := &stubNotifier{}
	svc := NewService(repo, audit.NewRecorder(auditRepo, nil), notifier)

	b, err := svc.Create(context.Background(), validForm())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.Status != StatusPending {
		t.Fatalf("expected pending status, got %q", b.Status)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("expected insert, got %d", len(repo.inserted))
	}
	if len(notifier.calls) != 1 || notifier.calls[0].Email != "ada@example.com" {
		t.Fatalf("expected confirmation for ada, got %v", notifier.calls)
	}
	if auditRepo.entries[0].Action != "bookings:create" || auditRepo.entries[0].ActorEmail != audit.UnknownActor {
		t.Fatalf("unexpected audit entry %+v", auditRepo.entries[0])
	}
}

func TestCreateBookingValidation(t *testing.T) {
	repo := &stubBookingsRepo{}
	svc := NewService(repo, audit.NewRecorder(&captureAuditRepo{}, nil), nil)

	form := validForm()
	form.Email = "not-an-email"
	if _, err := svc.Create(context.Background(), form); !errors.Is(err, shared.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	form = validForm()
	form.Service = ""
	if _, err := svc.Create(context.Background(), form); !errors.Is(err, shared.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.inserted) != 0 {
		t.Fatalf("invalid forms must not be stored")
	}
}

func TestCreateBookingSurvivesNotifierFailure(t *testing.T) {
	repo := &stubBookingsRepo{}
	auditRepo := &captureAuditRepo{}
	notifier := &stubNotifier{err: errors.New("smtp down")}
	svc := NewService(repo, audit.NewRecorder(auditRepo, nil), notifier)

	if _, err := svc.Create(context.Background(), validForm()); err != nil {
		t.Fatalf("notifier failure must not fail the booking: %v", err)
	}
	last := auditRepo.entries[len(auditRepo.entries)-1]
	if last.Action != "bookings:notify-failed" {
		t.Fatalf("expected notify-failed entry, got %q", last.Action)
	}
}

func TestReviewValidatesStatus(t *testing.T) {
	repo := &stubBookingsRepo{}
	svc := NewService(repo, audit.NewRecorder(&captureAuditRepo{}, nil), nil)
	sess := &shared.Session{Email: "admin@velora.local", Role: "admin"}

	if err := svc.Review(context.Background(), sess, "b-1", Review{Status: "teleported"}); !errors.Is(err, shared.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := svc.Review(context.Background(), sess, "b-1", Review{Status: StatusConfirmed, Note: "see you"}); err != nil {
		t.Fatalf("review: %v", err)
	}
	if repo.updates["b-1"]["status"] != StatusConfirmed {
		t.Fatalf("expected status set, got %v", repo.updates["b-1"])
	}
}
