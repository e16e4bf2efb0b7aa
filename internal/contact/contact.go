// Package contact stores messages submitted through the public contact form.
package contact

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/velora-beauty/velora/internal/audit"
	"github.com/velora-beauty/velora/internal/platform/httpx"
	"github.com/velora-beauty/velora/internal/rbac"
	"github.com/velora-beauty/velora/internal/shared"
)

const collection = "contact_messages"

var validate = validator.New()

// Message is one contact form submission.
type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Topic     string             `bson:"topic,omitempty" json:"topic,omitempty"`
	Message   string             `bson:"message" json:"message"`
	CreatedAt string             `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// Form is the public submission payload.
type Form struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,min=5"`
	Topic   string `json:"topic" validate:"omitempty,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

// ForwardBody renders a stored message as the HTML body of the inbox
// forwarding email.
func ForwardBody(msg Message) string {
	var b strings.Builder
	b.WriteString("<p><strong>Name:</strong> " + html.EscapeString(msg.Name) + "</p>")
	b.WriteString("<p><strong>Email:</strong> " + html.EscapeString(msg.Email) + "</p>")
	if msg.Phone != "" {
		b.WriteString("<p><strong>Phone:</strong> " + html.EscapeString(msg.Phone) + "</p>")
	}
	if msg.Topic != "" {
		b.WriteString("<p><strong>Topic:</strong> " + html.EscapeString(msg.Topic) + "</p>")
	}
	b.WriteString("<p>" + html.EscapeString(msg.Message) + "</p>")
	return b.String()
}

// Service stores messages and audits submissions.
type Service struct {
	col      *mongo.Collection
	recorder *audit.Recorder
	notify   func(ctx context.Context, msg Message) error
	now      func() time.Time
}

// NewService builds a Service over the contact_messages collection. The
// notify hook forwards stored messages to the studio inbox and may be nil.
func NewService(db interface {
	Collection(name string) *mongo.Collection
}, recorder *audit.Recorder, notify func(ctx context.Context, msg Message) error) *Service {
	return &Service{col: db.Collection(collection), recorder: recorder, notify: notify, now: time.Now}
}

// Submit stores a public contact message.
func (s *Service) Submit(ctx context.Context, form Form) error {
	if err := validate.Struct(form); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	msg := Message{
		Name:      form.Name,
		Email:     form.Email,
		Phone:     form.Phone,
		Topic:     form.Topic,
		Message:   form.Message,
		CreatedAt: audit.FormatTime(s.now()),
	}
	if _, err := s.col.InsertOne(ctx, msg); err != nil {
		return err
	}
	s.recorder.Record(ctx, nil, "contact:create", "contact", map[string]any{
		"email": form.Email,
		"topic": form.Topic,
	})
	// Forwarding is best effort; the message is already stored.
	if s.notify != nil {
		if err := s.notify(ctx, msg); err != nil {
			s.recorder.Record(ctx, nil, "contact:notify-failed", "contact", map[string]any{
				"email": form.Email,
				"error": err.Error(),
			})
		}
	}
	return nil
}

// List returns recent messages for the admin surface.
func (s *Service) List(ctx context.Context, sess *shared.Session) ([]Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(200)
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Message, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, sess, "contact:list", "contact", map[string]any{"count": len(items)})
	return items, nil
}

// Handler serves contact endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the contact HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// MountPublicRoutes attaches the unauthenticated submission endpoint.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Post("/lets-talk", h.Submit)
}

// MountAdminRoutes attaches the guarded inbox listing.
func (h *Handler) MountAdminRoutes(r chi.Router, guard rbac.Middleware) {
	r.With(guard.RequirePermission(rbac.PermApplicationsRead)).Get("/lets-talk", h.List)
}

// Submit accepts a public contact message.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var form Form
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Error(w, http.StatusBadRequest, "name, email and message are required")
		return
	}
	if err := h.service.Submit(r.Context(), form); err != nil {
		h.respondError(w, err)
		return
	}
	httpx.OK(w, "Message received")
}

// List serves the admin inbox.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	items, err := h.service.List(r.Context(), sess)
	if err != nil {
		h.logger.Error("list contact messages", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpx.JSON(w, http.StatusOK, struct {
		Status bool      `json:"status"`
		Items  []Message `json:"items"`
	}{Status: true, Items: items})
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	if errors.Is(err, shared.ErrValidation) {
		httpx.Error(w, http.StatusBadRequest, "Invalid input")
		return
	}
	h.logger.Error("contact submit", slog.Any("error", err))
	httpx.Error(w, http.StatusInternalServerError, "Server error")
}
