package users

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/velora-beauty/velora/internal/platform/httpx"
	"github.com/velora-beauty/velora/internal/rbac"
	"github.com/velora-beauty/velora/internal/shared"
)

// Handler serves user management endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the users HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// MountRoutes attaches the user endpoints with per-verb permissions.
func (h *Handler) MountRoutes(r chi.Router, guard rbac.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(guard.RequirePermission(rbac.PermUsersRead))
		r.Get("/users", h.List)
	})
	r.Group(func(r chi.Router) {
		r.Use(guard.RequirePermission(rbac.PermUsersWrite))
		r.Post("/users", h.Create)
		r.Put("/users", h.Update)
	})
	r.Group(func(r chi.Router) {
		r.Use(guard.RequirePermission(rbac.PermUsersDelete))
		r.Delete("/users", h.Delete)
	})
}

type listResponse struct {
	Status bool   `json:"status"`
	Items  []User `json:"items"`
}

// List returns managed accounts.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	items, err := h.service.List(r.Context(), sess)
	if err != nil {
		h.logger.Error("list users", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpx.JSON(w, http.StatusOK, listResponse{Status: true, Items: items})
}

// Create stores a new account.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var input CreateInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}
	sess := shared.SessionFromContext(r.Context())
	if err := h.service.Create(r.Context(), sess, input); err != nil {
		switch {
		case errors.Is(err, shared.ErrValidation):
			httpx.Error(w, http.StatusBadRequest, "email and password are required")
		case errors.Is(err, shared.ErrConflict):
			httpx.Error(w, http.StatusConflict, "User already exists")
		default:
			h.logger.Error("create user", slog.Any("error", err))
			httpx.Error(w, http.StatusInternalServerError, "Server error")
		}
		return
	}
	httpx.OK(w, "Created")
}

// Update mutates an account addressed by the id query param.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.Error(w, http.StatusBadRequest, "id query param required")
		return
	}
	var input UpdateInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sess := shared.SessionFromContext(r.Context())
	if err := h.service.Update(r.Context(), sess, id, input); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "Not found")
			return
		}
		h.logger.Error("update user", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpx.OK(w, "Updated")
}

// Delete removes an account addressed by the id query param.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.Error(w, http.StatusBadRequest, "id query param required")
		return
	}
	sess := shared.SessionFromContext(r.Context())
	if err := h.service.Delete(r.Context(), sess, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "Not found")
			return
		}
		h.logger.Error("delete user", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpx.OK(w, "Deleted")
}
