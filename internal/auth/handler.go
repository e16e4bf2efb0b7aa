package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/velora-beauty/velora/internal/platform/httpx"
	"github.com/velora-beauty/velora/internal/shared"
)

// Handler serves login, logout, and admin bootstrap.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	sessions  *shared.SessionManager
	seedToken string
	devMode   bool
}

// NewHandler constructs the auth handler. seedToken guards the bootstrap
// endpoint; when empty, seeding is only allowed outside production.
func NewHandler(logger *slog.Logger, service *Service, sessions *shared.SessionManager, seedToken string, devMode bool) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:    logger,
		service:   service,
		sessions:  sessions,
		seedToken: seedToken,
		devMode:   devMode,
	}
}

// MountRoutes attaches the auth endpoints. None of them are guarded: login
// and seed happen before a session exists.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Post("/seed", h.Seed)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates and issues a session cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	identity, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidCredentials) {
			httpx.Error(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.logger.Error("authenticate", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	sess := &shared.Session{
		Email:       identity.Email,
		Role:        identity.Role,
		Permissions: identity.Permissions,
	}
	if err := h.sessions.Issue(r.Context(), w, sess); err != nil {
		h.logger.Error("issue session", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpx.OK(w, "Logged in")
}

// Logout destroys the current session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if err := h.sessions.Destroy(r.Context(), w, sess); err != nil {
		h.logger.Warn("destroy session", slog.Any("error", err))
	}
	httpx.OK(w, "Logged out")
}

type seedRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Seed bootstraps the first admin account. Guarded by the X-Seed-Token
// header when a token is configured; in production a token is mandatory.
func (h *Handler) Seed(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("X-Seed-Token")
	if h.seedToken != "" {
		if token != h.seedToken {
			httpx.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
	} else if !h.devMode {
		httpx.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req seedRequest
	if err := httpx.DecodeJSON(r, &req); err != nil || req.Email == "" || req.Password == "" {
		httpx.Error(w, http.StatusBadRequest, "Email and password required")
		return
	}

	if err := h.service.SeedAdmin(r.Context(), req.Email, req.Name, req.Password); err != nil {
		switch {
		case errors.Is(err, shared.ErrConflict):
			httpx.Error(w, http.StatusConflict, "User already exists")
		case errors.Is(err, shared.ErrValidation):
			httpx.Error(w, http.StatusBadRequest, "Email and password required")
		default:
			h.logger.Error("seed admin", slog.Any("error", err))
			httpx.Error(w, http.StatusInternalServerError, "Server error")
		}
		return
	}
	httpx.OK(w, "Admin seeded successfully")
}
