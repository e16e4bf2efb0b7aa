package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/velora-beauty/velora/internal/audit"
	"github.com/velora-beauty/velora/internal/auth"
	"github.com/velora-beauty/velora/internal/bookings"
	"github.com/velora-beauty/velora/internal/catalog"
	"github.com/velora-beauty/velora/internal/contact"
	"github.com/velora-beauty/velora/internal/platform/httpx"
	"github.com/velora-beauty/velora/internal/rbac"
	"github.com/velora-beauty/velora/internal/resources"
	"github.com/velora-beauty/velora/internal/shared"
	"github.com/velora-beauty/velora/internal/templates"
	"github.com/velora-beauty/velora/internal/trainings"
	"github.com/velora-beauty/velora/internal/users"
	"github.com/velora-beauty/velora/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	Guard          rbac.Middleware

	AuthHandler      *auth.Handler
	UsersHandler     *users.Handler
	AuditHandler     *audit.Handler
	CatalogHandler   *catalog.Handler
	TrainingsHandler *trainings.Handler
	BookingsHandler  *bookings.Handler
	ResourcesHandler *resources.Handler
	TemplatesHandler *templates.Handler
	ContactHandler   *contact.Handler
	JobHandler       *jobs.Handler
}

// NewRouter constructs the chi.Router with Velora defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Error(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Public site API.
	r.Route("/api", func(r chi.Router) {
		params.CatalogHandler.MountPublicRoutes(r)
		params.TrainingsHandler.MountPublicRoutes(r)
		params.BookingsHandler.MountPublicRoutes(r)
		params.ResourcesHandler.MountPublicRoutes(r)
		params.ContactHandler.MountPublicRoutes(r)
	})

	// Admin API. Authentication endpoints are mounted unguarded; everything
	// else goes through the permission middleware per route.
	r.Route("/admin/api", func(r chi.Router) {
		params.AuthHandler.MountRoutes(r)
		params.UsersHandler.MountRoutes(r, params.Guard)
		params.AuditHandler.MountRoutes(r, params.Guard)
		params.CatalogHandler.MountAdminRoutes(r, params.Guard)
		params.TrainingsHandler.MountAdminRoutes(r, params.Guard)
		params.BookingsHandler.MountAdminRoutes(r, params.Guard)
		params.ResourcesHandler.MountAdminRoutes(r, params.Guard)
		params.TemplatesHandler.MountRoutes(r, params.Guard)
		params.ContactHandler.MountAdminRoutes(r, params.Guard)
	})

	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}

	return r
}
