package audit

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

// Handler serves the audit log review surface.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the audit HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// MountRoutes attaches the audit endpoints. Listing requires audit:read;
// pruning requires the admin role itself.
func (h *Handler) MountRoutes(r chi.Router, guard rbac.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(guard.RequirePermission(rbac.PermAuditRead))
		r.Get("/audit-logs", h.List)
	})
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireRole(rbac.RoleAdmin))
		r.Post("/audit-logs/prune", h.Prune)
	})
}

type listResponse struct {
	Status bool    `json:"status"`
	Items  []Entry `json:"items"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

// List returns a filtered page of entries, or a CSV export when format=csv.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := Filter{
		ActorEmail:     q.Get("actorEmail"),
		Action:         q.Get("action"),
		ActionContains: q.Get("actionContains"),
		Resource:       q.Get("resource"),
		ResourceID:     q.Get("resourceId"),
		Start:          NormalizeTimestamp(q.Get("start")),
		End:            NormalizeTimestamp(q.Get("end")),
	}
	// resourceType takes precedence over resource when both are present.
	if resType := q.Get("resourceType"); resType != "" {
		filter.Resource = resType
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	page, _ := strconv.Atoi(q.Get("page"))

	result, err := h.service.Query(r.Context(), filter, page, limit)
	if err != nil {
		h.logger.Error("query audit logs", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	if q.Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="audit-logs.csv"`)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(WriteCSV(result.Items)); err != nil {
			h.logger.Warn("write csv", slog.Any("error", err))
		}
		return
	}

	httpx.JSON(w, http.StatusOK, listResponse{
		Status: true,
		Items:  result.Items,
		Page:   result.Page,
		Limit:  result.Limit,
	})
}

type pruneRequest struct {
	Days   int    `json:"days"`
	Before string `json:"before"`
}

type pruneResponse struct {
	Status       bool   `json:"status"`
	DeletedCount int64  `json:"deletedCount"`
	Cutoff       string `json:"cutoff"`
}

// Prune bulk-deletes entries older than the requested cutoff.
func (h *Handler) Prune(w http.ResponseWriter, r *http.Request) {
	var req pruneRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, `Provide either numeric days > 0 or an ISO date in "before"`)
		return
	}

	sess := shared.SessionFromContext(r.Context())
	result, err := h.service.Prune(r.Context(), sess, PruneSpec{Days: req.Days, Before: req.Before})
	if err != nil {
		if errors.Is(err, shared.ErrValidation) {
			httpx.Error(w, http.StatusBadRequest, `Provide either numeric days > 0 or an ISO date in "before"`)
			return
		}
		h.logger.Error("prune audit logs", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	httpx.JSON(w, http.StatusOK, pruneResponse{
		Status:       true,
		DeletedCount: result.DeletedCount,
		Cutoff:       result.Cutoff,
	})
}
