package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jsamuelsen11/opscheck/internal/domain"
)

// queryShowAll is the query parameter that disables hiding healthy entries.
const queryShowAll = "all"

// parseShowAll reads the optional boolean "all" query parameter. An absent
// or empty value means false.
func parseShowAll(r *http.Request) (bool, error) {
	raw := r.URL.Query().Get(queryShowAll)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &domain.ValidationError{
			Fields: map[string]string{queryShowAll: "must be a boolean"},
		}
	}
	return v, nil
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "failed to encode response", slog.Any("error", err))
	}
}
