package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func withChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	return result
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}

// reportBody mirrors the wire shape of a report response.
type reportBody struct {
	Status string `json:"status"`
	Checks []struct {
		Name     string `json:"name"`
		Severity string `json:"severity"`
		Healthy  bool   `json:"healthy"`
		Message  string `json:"message"`
	} `json:"checks"`
}

func (b reportBody) names() []string {
	out := make([]string, len(b.Checks))
	for i, c := range b.Checks {
		out[i] = c.Name
	}
	return out
}
