package resources

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

// Handler serves resource endpoints for the admin and public surfaces.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the resources HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// MountAdminRoutes attaches the guarded admin resource endpoints.
func (h *Handler) MountAdminRoutes(r chi.Router, guard rbac.Middleware) {
	r.With(guard.RequirePermission(rbac.PermResourcesRead)).Get("/resources", h.List)
	r.Group(func(r chi.Router) {
		r.Use(guard.RequirePermission(rbac.PermResourcesWrite))
		r.Post("/resources", h.Create)
		r.Put("/resources", h.Update)
		r.Delete("/resources", h.Delete)
	})
}

// MountPublicRoutes attaches the unauthenticated published listing.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Get("/resources", h.PublicList)
	r.Get("/resources/{slug}", h.PublicGet)
}

type listResponse struct {
	Status bool       `json:"status"`
	Items  []Resource `json:"items"`
}

// PublicList serves published resources with optional q/category/tag filters.
func (h *Handler) PublicList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := PublicFilter{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Tag:      q.Get("tag"),
	}
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	items, err := h.service.PublicList(r.Context(), filter, page, limit)
	if err != nil {
		h.logger.Error("public resources list", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpx.JSON(w, http.StatusOK, listResponse{Status: true, Items: items})
}

// PublicGet serves one published resource by slug.
func (h *Handler) PublicGet(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	res, err := h.service.PublicGet(r.Context(), slug)
	if err != nil {
		h.respondError(w, err, "public resource get")
		return
	}
	httpx.JSON(w, http.StatusOK, struct {
		Status bool     `json:"status"`
		Item   Resource `json:"item"`
	}{Status: true, Item: *res})
}

// List serves all resources for the admin surface.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	items, err := h.service.List(r.Context(), sess)
	if err != nil {
		h.logger.Error("list resources", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpx.JSON(w, http.StatusOK, listResponse{Status: true, Items: items})
}

// Create stores a new resource.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var res Resource
	if err := httpx.DecodeJSON(r, &res); err != nil {
		httpx.Error(w, http.StatusBadRequest, "title is required")
		return
	}
	sess := shared.SessionFromContext(r.Context())
	if err := h.service.Create(r.Context(), sess, res); err != nil {
		h.respondError(w, err, "create resource")
		return
	}
	httpx.OK(w, "Created")
}

// Update mutates a resource addressed by the id query param.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.Error(w, http.StatusBadRequest, "id query param required")
		return
	}
	var res Resource
	if err := httpx.DecodeJSON(r, &res); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sess := shared.SessionFromContext(r.Context())
	if err := h.service.Update(r.Context(), sess, id, res); err != nil {
		h.respondError(w, err, "update resource")
		return
	}
	httpx.OK(w, "Updated")
}

// Delete removes a resource addressed by the id query param.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.Error(w, http.StatusBadRequest, "id query param required")
		return
	}
	sess := shared.SessionFromContext(r.Context())
	if err := h.service.Delete(r.Context(), sess, id); err != nil {
		h.respondError(w, err, "delete resource")
		return
	}
	httpx.OK(w, "Deleted")
}

func (h *Handler) respondError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, shared.ErrValidation):
		httpx.Error(w, http.StatusBadRequest, "title is required")
	case errors.Is(err, shared.ErrNotFound):
		httpx.Error(w, http.StatusNotFound, "Not found")
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Server error")
	}
}
