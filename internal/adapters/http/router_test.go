package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"

	adapthttp "github.com/jsamuelsen11/opscheck/internal/adapters/http"
	"github.com/jsamuelsen11/opscheck/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/opscheck/internal/domain/check"
	"github.com/jsamuelsen11/opscheck/internal/ports"
	"github.com/jsamuelsen11/opscheck/mocks"
)

func newTestRouter(t *testing.T, mws ...func(http.Handler) http.Handler) (http.Handler, *mocks.MockCheckController, *mocks.MockCheckController) {
	t.Helper()
	health := mocks.NewMockCheckController(t)
	ready := mocks.NewMockCheckController(t)

	router := adapthttp.NewRouter(
		handlers.NewChecksHandler(health, 0),
		handlers.NewChecksHandler(ready, 0),
		mws...,
	)
	return router, health, ready
}

func TestRouter_AllRoutesRegistered(t *testing.T) {
	t.Parallel()

	router, _, _ := newTestRouter(t)

	chiRouter, ok := router.(*chi.Mux)
	if !ok {
		t.Fatal("router is not *chi.Mux")
	}

	registered := make(map[string]bool)
	err := chi.Walk(chiRouter, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		registered[method+" "+route] = true
		return nil
	})
	if err != nil {
		t.Fatalf("chi.Walk error: %v", err)
	}

	for _, key := range []string{
		"GET /live",
		"GET /health",
		"GET /health/{group}",
		"GET /ready",
		"GET /ready/{group}",
	} {
		if !registered[key] {
			t.Errorf("route %s not registered; have %v", key, registered)
		}
	}
}

func TestRouter_FamiliesAreSeparate(t *testing.T) {
	t.Parallel()

	router, health, ready := newTestRouter(t)

	health.EXPECT().RunAll(mock.Anything).Return(ports.Report{Overall: check.SeverityHealthy}).Once()
	ready.EXPECT().RunAll(mock.Anything).Return(ports.Report{Overall: check.SeverityCritical}).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("/health status = %d, want %d", rec.Code, http.StatusOK)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("/ready status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestRouter_GroupRoute(t *testing.T) {
	t.Parallel()

	router, _, ready := newTestRouter(t)

	ready.EXPECT().RunGroup(mock.Anything, "storage").Return(ports.Report{Overall: check.SeverityWarning}, true)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready/storage?all=true", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestRouter_LivenessRunsNoChecks(t *testing.T) {
	t.Parallel()

	// Mocks fail the test on any unexpected controller call.
	router, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	t.Parallel()

	called := false
	testMW := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			next.ServeHTTP(w, r)
		})
	}

	router, _, _ := newTestRouter(t, testMW)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	if !called {
		t.Error("middleware was not called")
	}
}

func TestRouter_UnknownPathIsProblemJSON(t *testing.T) {
	t.Parallel()

	router, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nonexistent", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want application/problem+json", ct)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	router, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ready", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
