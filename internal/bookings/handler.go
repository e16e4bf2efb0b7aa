package bookings

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/velora-beauty/velora/internal/platform/httpx"
	"github.com/velora-beauty/velora/internal/rbac"
	"github.com/velora-beauty/velora/internal/shared"
)

// Handler serves booking endpoints for the admin and public surfaces.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the bookings HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// MountAdminRoutes attaches the guarded admin booking endpoints.
func (h *Handler) MountAdminRoutes(r chi.Router, guard rbac.Middleware) {
	r.With(guard.RequirePermission(rbac.PermBookingsRead)).Get("/bookings", h.List)
	r.Group(func(r chi.Router) {
		r.Use(guard.RequirePermission(rbac.PermBookingsWrite))
		r.Put("/bookings", h.Review)
		r.Delete("/bookings", h.Delete)
	})
}

// MountPublicRoutes attaches the unauthenticated booking submission.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Post("/bookings", h.Create)
}

// Create accepts a public booking request.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var form Form
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Error(w, http.StatusBadRequest, "name, email, service and date are required")
		return
	}
	if _, err := h.service.Create(r.Context(), form); err != nil {
		h.respondError(w, err, "create booking")
		return
	}
	httpx.OK(w, "Booking received")
}

// List serves bookings with an optional status filter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	sess := shared.SessionFromContext(r.Context())
	items, err := h.service.List(r.Context(), sess, q.Get("status"), page, limit)
	if err != nil {
		h.logger.Error("list bookings", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpx.JSON(w, http.StatusOK, struct {
		Status bool      `json:"status"`
		Items  []Booking `json:"items"`
	}{Status: true, Items: items})
}

// Review mutates a booking addressed by the id query param.
func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.Error(w, http.StatusBadRequest, "id query param required")
		return
	}
	var review Review
	if err := httpx.DecodeJSON(r, &review); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sess := shared.SessionFromContext(r.Context())
	if err := h.service.Review(r.Context(), sess, id, review); err != nil {
		h.respondError(w, err, "review booking")
		return
	}
	httpx.OK(w, "Updated")
}

// Delete removes a booking addressed by the id query param.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.Error(w, http.StatusBadRequest, "id query param required")
		return
	}
	sess := shared.SessionFromContext(r.Context())
	if err := h.service.Delete(r.Context(), sess, id); err != nil {
		h.respondError(w, err, "delete booking")
		return
	}
	httpx.OK(w, "Deleted")
}

func (h *Handler) respondError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, shared.ErrValidation):
		httpx.Error(w, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, shared.ErrNotFound):
		httpx.Error(w, http.StatusNotFound, "Not found")
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Server error")
	}
}
