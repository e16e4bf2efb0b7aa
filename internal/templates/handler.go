package templates

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/velora-beauty/velora/internal/platform/httpx"
	"github.com/velora-beauty/velora/internal/rbac"
	"github.com/velora-beauty/velora/internal/shared"
	"github.com/velora-beauty/velora/jobs"
)

// Handler serves the email template admin endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	enqueue func(ctx context.Context, payload jobs.SendEmailPayload) error
}

// NewHandler constructs the templates HTTP handler. enqueue may be nil when
// no queue is configured; the test-email endpoint then reports an error.
func NewHandler(logger *slog.Logger, service *Service, enqueue func(ctx context.Context, payload jobs.SendEmailPayload) error) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, enqueue: enqueue}
}

// MountRoutes attaches the guarded template endpoints.
func (h *Handler) MountRoutes(r chi.Router, guard rbac.Middleware) {
	r.With(guard.RequirePermission(rbac.PermTemplatesRead)).Get("/email-templates", h.List)
	r.Group(func(r chi.Router) {
		r.Use(guard.RequirePermission(rbac.PermTemplatesWrite))
		r.Put("/email-templates", h.Save)
		r.Delete("/email-templates", h.Delete)
		r.Post("/email-templates/test", h.SendTest)
	})
}

// List serves all templates, defaults included.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	items, err := h.service.List(r.Context(), sess)
	if err != nil {
		h.logger.Error("list email templates", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpx.JSON(w, http.StatusOK, struct {
		Status bool       `json:"status"`
		Items  []Template `json:"items"`
	}{Status: true, Items: items})
}

// Save upserts a template keyed by its name.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var t Template
	if err := httpx.DecodeJSON(r, &t); err != nil {
		httpx.Error(w, http.StatusBadRequest, "name, subject and body are required")
		return
	}
	sess := shared.SessionFromContext(r.Context())
	if err := h.service.Save(r.Context(), sess, t); err != nil {
		h.respondError(w, err, "save email template")
		return
	}
	httpx.OK(w, "Saved")
}

// Delete removes a stored template addressed by the name query param.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		httpx.Error(w, http.StatusBadRequest, "name query param required")
		return
	}
	sess := shared.SessionFromContext(r.Context())
	if err := h.service.Delete(r.Context(), sess, name); err != nil {
		h.respondError(w, err, "delete email template")
		return
	}
	httpx.OK(w, "Deleted")
}

type testEmailRequest struct {
	Name string            `json:"name"`
	To   string            `json:"to"`
	Data map[string]string `json:"data"`
}

// SendTest renders a template and enqueues a one-off delivery.
func (h *Handler) SendTest(w http.ResponseWriter, r *http.Request) {
	var req testEmailRequest
	if err := httpx.DecodeJSON(r, &req); err != nil || req.Name == "" || req.To == "" {
		httpx.Error(w, http.StatusBadRequest, "name and to are required")
		return
	}
	if h.enqueue == nil {
		httpx.Error(w, http.StatusServiceUnavailable, "Queue not configured")
		return
	}
	subject, html, err := h.service.Render(r.Context(), req.Name, req.Data)
	if err != nil {
		h.respondError(w, err, "render email template")
		return
	}
	if err := h.enqueue(r.Context(), jobs.SendEmailPayload{To: req.To, Subject: subject, HTML: html}); err != nil {
		h.logger.Error("enqueue test email", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpx.OK(w, "Queued")
}

func (h *Handler) respondError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, shared.ErrValidation):
		httpx.Error(w, http.StatusBadRequest, "name, subject and body are required")
	case errors.Is(err, shared.ErrNotFound):
		httpx.Error(w, http.StatusNotFound, "Not found")
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Server error")
	}
}
