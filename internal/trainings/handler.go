package trainings

import (
	"encoding/csv"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/velora-beauty/velora/internal/platform/httpx"
	"github.com/velora-beauty/velora/internal/rbac"
	"github.com/velora-beauty/velora/internal/shared"
)

// Handler serves training endpoints for the admin and public surfaces.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the trainings HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// MountAdminRoutes attaches the guarded admin training endpoints.
func (h *Handler) MountAdminRoutes(r chi.Router, guard rbac.Middleware) {
	r.With(guard.RequirePermission(rbac.PermTrainingsRead)).Get("/trainings", h.ListPrograms)
	r.Group(func(r chi.Router) {
		r.Use(guard.RequirePermission(rbac.PermTrainingsWrite))
		r.Post("/trainings", h.CreateProgram)
		r.Put("/trainings", h.UpdateProgram)
		r.Delete("/trainings", h.DeleteProgram)
	})
	r.With(guard.RequirePermission(rbac.PermApplicationsRead)).Get("/training-applications", h.ListApplications)
	r.With(guard.RequirePermission(rbac.PermApplicationsWrite)).Put("/training-applications", h.ReviewApplication)
	r.With(guard.RequirePermission(rbac.PermApplicationsExport)).Get("/training-applications/export", h.ExportApplications)
}

// MountPublicRoutes attaches the unauthenticated training endpoints.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Get("/trainings", h.PublicPrograms)
	r.Post("/training-applications", h.Apply)
}

type programsResponse struct {
	Status bool      `json:"status"`
	Items  []Program `json:"items"`
}

type applicationsResponse struct {
	Status bool          `json:"status"`
	Items  []Application `json:"items"`
}

// PublicPrograms serves the cached active program listing.
func (h *Handler) PublicPrograms(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.PublicPrograms(r.Context())
	if err != nil {
		h.logger.Error("public trainings list", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpx.JSON(w, http.StatusOK, programsResponse{Status: true, Items: items})
}

// Apply accepts a public training application.
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	var form ApplicationForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Error(w, http.StatusBadRequest, "name and email are required")
		return
	}
	if _, err := h.service.Apply(r.Context(), form); err != nil {
		h.respondError(w, err, "training application")
		return
	}
	httpx.OK(w, "Application received")
}

// ListPrograms serves all programs for the admin surface.
func (h *Handler) ListPrograms(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	items, err := h.service.ListPrograms(r.Context(), sess)
	if err != nil {
		h.logger.Error("list trainings", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpx.JSON(w, http.StatusOK, programsResponse{Status: true, Items: items})
}

// CreateProgram stores a new program.
func (h *Handler) CreateProgram(w http.ResponseWriter, r *http.Request) {
	var p Program
	if err := httpx.DecodeJSON(r, &p); err != nil {
		httpx.Error(w, http.StatusBadRequest, "title is required")
		return
	}
	sess := shared.SessionFromContext(r.Context())
	if err := h.service.CreateProgram(r.Context(), sess, p); err != nil {
		h.respondError(w, err, "create training")
		return
	}
	httpx.OK(w, "Created")
}

// UpdateProgram mutates a program addressed by the id query param.
func (h *Handler) UpdateProgram(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.Error(w, http.StatusBadRequest, "id query param required")
		return
	}
	var p Program
	if err := httpx.DecodeJSON(r, &p); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sess := shared.SessionFromContext(r.Context())
	if err := h.service.UpdateProgram(r.Context(), sess, id, p); err != nil {
		h.respondError(w, err, "update training")
		return
	}
	httpx.OK(w, "Updated")
}

// DeleteProgram removes a program addressed by the id query param.
func (h *Handler) DeleteProgram(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.Error(w, http.StatusBadRequest, "id query param required")
		return
	}
	sess := shared.SessionFromContext(r.Context())
	if err := h.service.DeleteProgram(r.Context(), sess, id); err != nil {
		h.respondError(w, err, "delete training")
		return
	}
	httpx.OK(w, "Deleted")
}

// ListApplications serves applications with an optional status filter.
func (h *Handler) ListApplications(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	sess := shared.SessionFromContext(r.Context())
	items, err := h.service.ListApplications(r.Context(), sess, q.Get("status"), page, limit)
	if err != nil {
		h.logger.Error("list applications", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpx.JSON(w, http.StatusOK, applicationsResponse{Status: true, Items: items})
}

// ReviewApplication mutates an application addressed by the id query param.
func (h *Handler) ReviewApplication(w http.ResponseWriter, r *http.Request) {
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
	if err := h.service.ReviewApplication(r.Context(), sess, id, review); err != nil {
		h.respondError(w, err, "review application")
		return
	}
	httpx.OK(w, "Updated")
}

// ExportApplications streams applications as a CSV download.
func (h *Handler) ExportApplications(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	items, err := h.service.ExportApplications(r.Context(), sess, r.URL.Query().Get("status"))
	if err != nil {
		h.logger.Error("export applications", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="training-applications.csv"`)
	writer := csv.NewWriter(w)
	_ = writer.Write([]string{"createdAt", "name", "email", "phone", "program", "status", "message"})
	for _, app := range items {
		_ = writer.Write([]string{
			app.CreatedAt, app.Name, app.Email, app.Phone, app.Program, app.Status, app.Message,
		})
	}
	writer.Flush()
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
