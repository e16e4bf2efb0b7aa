package catalog

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/velora-beauty/velora/internal/platform/httpx"
	"github.com/velora-beauty/velora/internal/rbac"
	"github.com/velora-beauty/velora/internal/shared"
)

// Handler serves catalog endpoints for the admin and public surfaces.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the catalog HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// MountAdminRoutes attaches the guarded admin catalog endpoints.
func (h *Handler) MountAdminRoutes(r chi.Router, guard rbac.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(guard.RequirePermission(rbac.PermServicesRead))
		r.Get("/services", h.List)
		r.Get("/service-items", h.ListItems)
	})
	r.Group(func(r chi.Router) {
		r.Use(guard.RequirePermission(rbac.PermServicesWrite))
		r.Post("/services", h.CreateCategory)
		r.Put("/services", h.UpdateCategory)
		r.Delete("/services", h.DeleteCategory)
		r.Post("/service-items", h.CreateItem)
		r.Put("/service-items", h.UpdateItem)
		r.Delete("/service-items", h.DeleteItem)
		r.Post("/service-variants", h.CreateVariant)
		r.Put("/service-variants", h.UpdateVariant)
		r.Delete("/service-variants", h.DeleteVariant)
	})
}

// MountPublicRoutes attaches the unauthenticated catalog listing.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Get("/services", h.PublicList)
}

type categoriesResponse struct {
	Status bool       `json:"status"`
	Items  []Category `json:"items"`
}

type itemsResponse struct {
	Status bool   `json:"status"`
	Items  []Item `json:"items"`
}

// PublicList serves the cached category listing without authentication.
func (h *Handler) PublicList(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.PublicList(r.Context())
	if err != nil {
		h.logger.Error("public services list", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpx.JSON(w, http.StatusOK, categoriesResponse{Status: true, Items: items})
}

// List serves the admin category listing.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	items, err := h.service.List(r.Context(), sess)
	if err != nil {
		h.logger.Error("list services", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpx.JSON(w, http.StatusOK, categoriesResponse{Status: true, Items: items})
}

// CreateCategory stores a new category.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var cat Category
	if err := httpx.DecodeJSON(r, &cat); err != nil {
		httpx.Error(w, http.StatusBadRequest, "name and slug are required")
		return
	}
	sess := shared.SessionFromContext(r.Context())
	if err := h.service.CreateCategory(r.Context(), sess, cat); err != nil {
		h.respondError(w, err, "create service category")
		return
	}
	httpx.OK(w, "Created")
}

// UpdateCategory mutates a category addressed by the id query param.
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.Error(w, http.StatusBadRequest, "id query param required")
		return
	}
	var cat Category
	if err := httpx.DecodeJSON(r, &cat); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sess := shared.SessionFromContext(r.Context())
	if err := h.service.UpdateCategory(r.Context(), sess, id, cat); err != nil {
		h.respondError(w, err, "update service category")
		return
	}
	httpx.OK(w, "Updated")
}

// DeleteCategory removes a category addressed by the id query param.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.Error(w, http.StatusBadRequest, "id query param required")
		return
	}
	sess := shared.SessionFromContext(r.Context())
	if err := h.service.DeleteCategory(r.Context(), sess, id); err != nil {
		h.respondError(w, err, "delete service category")
		return
	}
	httpx.OK(w, "Deleted")
}

// ListItems returns the service items of the category in categoryId.
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	categoryID := r.URL.Query().Get("categoryId")
	if categoryID == "" {
		httpx.Error(w, http.StatusBadRequest, "categoryId is required")
		return
	}
	sess := shared.SessionFromContext(r.Context())
	items, err := h.service.ListItems(r.Context(), sess, categoryID)
	if err != nil {
		h.respondError(w, err, "list service items")
		return
	}
	httpx.JSON(w, http.StatusOK, itemsResponse{Status: true, Items: items})
}

// CreateItem appends a service item to the category in categoryId.
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	categoryID := r.URL.Query().Get("categoryId")
	if categoryID == "" {
		httpx.Error(w, http.StatusBadRequest, "categoryId is required")
		return
	}
	var item Item
	if err := httpx.DecodeJSON(r, &item); err != nil {
		httpx.Error(w, http.StatusBadRequest, "name and slug are required")
		return
	}
	sess := shared.SessionFromContext(r.Context())
	created, err := h.service.CreateItem(r.Context(), sess, categoryID, item)
	if err != nil {
		h.respondError(w, err, "create service item")
		return
	}
	httpx.JSON(w, http.StatusOK, struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Item    Item   `json:"item"`
	}{Status: true, Message: "Created", Item: created})
}

// UpdateItem replaces a service item.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	categoryID := r.URL.Query().Get("categoryId")
	if categoryID == "" {
		httpx.Error(w, http.StatusBadRequest, "categoryId is required")
		return
	}
	var item Item
	if err := httpx.DecodeJSON(r, &item); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sess := shared.SessionFromContext(r.Context())
	if err := h.service.UpdateItem(r.Context(), sess, categoryID, item); err != nil {
		h.respondError(w, err, "update service item")
		return
	}
	httpx.OK(w, "Updated")
}

// DeleteItem removes a service item.
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	categoryID := r.URL.Query().Get("categoryId")
	itemID := r.URL.Query().Get("itemId")
	if categoryID == "" || itemID == "" {
		httpx.Error(w, http.StatusBadRequest, "categoryId and itemId are required")
		return
	}
	sess := shared.SessionFromContext(r.Context())
	if err := h.service.DeleteItem(r.Context(), sess, categoryID, itemID); err != nil {
		h.respondError(w, err, "delete service item")
		return
	}
	httpx.OK(w, "Deleted")
}

// CreateVariant appends a variant to a service item.
func (h *Handler) CreateVariant(w http.ResponseWriter, r *http.Request) {
	categoryID := r.URL.Query().Get("categoryId")
	itemID := r.URL.Query().Get("itemId")
	if categoryID == "" || itemID == "" {
		httpx.Error(w, http.StatusBadRequest, "categoryId and itemId are required")
		return
	}
	var variant Variant
	if err := httpx.DecodeJSON(r, &variant); err != nil {
		httpx.Error(w, http.StatusBadRequest, "name is required")
		return
	}
	sess := shared.SessionFromContext(r.Context())
	created, err := h.service.CreateVariant(r.Context(), sess, categoryID, itemID, variant)
	if err != nil {
		h.respondError(w, err, "create service variant")
		return
	}
	httpx.JSON(w, http.StatusOK, struct {
		Status  bool    `json:"status"`
		Message string  `json:"message"`
		Item    Variant `json:"item"`
	}{Status: true, Message: "Created", Item: created})
}

// UpdateVariant replaces a variant.
func (h *Handler) UpdateVariant(w http.ResponseWriter, r *http.Request) {
	categoryID := r.URL.Query().Get("categoryId")
	itemID := r.URL.Query().Get("itemId")
	if categoryID == "" || itemID == "" {
		httpx.Error(w, http.StatusBadRequest, "categoryId and itemId are required")
		return
	}
	var variant Variant
	if err := httpx.DecodeJSON(r, &variant); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sess := shared.SessionFromContext(r.Context())
	if err := h.service.UpdateVariant(r.Context(), sess, categoryID, itemID, variant); err != nil {
		h.respondError(w, err, "update service variant")
		return
	}
	httpx.OK(w, "Updated")
}

// DeleteVariant removes a variant.
func (h *Handler) DeleteVariant(w http.ResponseWriter, r *http.Request) {
	categoryID := r.URL.Query().Get("categoryId")
	itemID := r.URL.Query().Get("itemId")
	variantID := r.URL.Query().Get("variantId")
	if categoryID == "" || itemID == "" || variantID == "" {
		httpx.Error(w, http.StatusBadRequest, "categoryId, itemId and variantId are required")
		return
	}
	sess := shared.SessionFromContext(r.Context())
	if err := h.service.DeleteVariant(r.Context(), sess, categoryID, itemID, variantID); err != nil {
		h.respondError(w, err, "delete service variant")
		return
	}
	httpx.OK(w, "Deleted")
}

func (h *Handler) respondError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, shared.ErrValidation):
		httpx.Error(w, http.StatusBadRequest, "name and slug are required")
	case errors.Is(err, shared.ErrNotFound):
		httpx.Error(w, http.StatusNotFound, "Not found")
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Server error")
	}
}
