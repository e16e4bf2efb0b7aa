package audit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/velora-beauty/velora/internal/rbac"
	"github.com/velora-beauty/velora/internal/shared"
)

func newTestRouter(repo *stubRepo) chi.Router {
	svc := newTestService(repo)
	h := NewHandler(nil, svc)
	r := chi.NewRouter()
	h.MountRoutes(r, rbac.Middleware{})
	return r
}

func adminRequest(method, target string, body string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	sess := &shared.Session{
		Email:       "admin@velora.local",
		Role:        "admin",
		Permissions: []string{"audit:read"},
	}
	return req.WithContext(shared.ContextWithSession(req.Context(), sess))
}

func TestListReturnsJSONPage(t *testing.T) {
	repo := &stubRepo{}
	repo.entries = append(repo.entries, entryAt(fixedNow(), "users:create"))
	router := newTestRouter(repo)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, adminRequest(http.MethodGet, "/audit-logs?limit=10", ""))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Status bool    `json:"status"`
		Items  []Entry `json:"items"`
		Page   int     `json:"page"`
		Limit  int     `json:"limit"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Status || len(resp.Items) != 1 || resp.Limit != 10 || resp.Page != 1 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestListCSVFormat(t *testing.T) {
	repo := &stubRepo{}
	repo.entries = append(repo.entries, entryAt(fixedNow(), "users:create"))
	router := newTestRouter(repo)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, adminRequest(http.MethodGet, "/audit-logs?format=csv", ""))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("expected text/csv, got %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "audit-logs.csv") {
		t.Fatalf("unexpected disposition %q", cd)
	}
	if !strings.HasPrefix(rr.Body.String(), "createdAt,actorEmail,") {
		t.Fatalf("unexpected body %q", rr.Body.String())
	}
}

func TestListRequiresPermission(t *testing.T) {
	router := newTestRouter(&stubRepo{})

	req := httptest.NewRequest(http.MethodGet, "/audit-logs", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", rr.Code)
	}

	sess := &shared.Session{Email: "viewer@velora.local", Role: "viewer", Permissions: []string{"analytics:read"}}
	req = httptest.NewRequest(http.MethodGet, "/audit-logs", nil)
	req = req.WithContext(shared.ContextWithSession(req.Context(), sess))
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without audit:read, got %d", rr.Code)
	}
}

func TestPruneAdminRoleGate(t *testing.T) {
	router := newTestRouter(&stubRepo{})

	// Manager holds audit:read but the prune route is role-gated.
	sess := &shared.Session{Email: "manager@velora.local", Role: "manager", Permissions: []string{"audit:read"}}
	req := httptest.NewRequest(http.MethodPost, "/audit-logs/prune", strings.NewReader(`{"days":30}`))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(shared.ContextWithSession(req.Context(), sess))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for manager, got %d", rr.Code)
	}
}

func TestPruneEndpoint(t *testing.T) {
	repo := &stubRepo{}
	repo.entries = append(repo.entries, entryAt(fixedNow().AddDate(0, 0, -40), "old"))
	router := newTestRouter(repo)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, adminRequest(http.MethodPost, "/audit-logs/prune", `{"days":30}`))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp pruneResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Status || resp.DeletedCount != 1 || resp.Cutoff == "" {
		t.Fatalf("unexpected response %+v", resp)
	}

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, adminRequest(http.MethodPost, "/audit-logs/prune", `{}`))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty spec, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "days") {
		t.Fatalf("expected guidance message, got %q", rr.Body.String())
	}
}
