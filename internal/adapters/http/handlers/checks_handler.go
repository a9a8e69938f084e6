package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/opscheck/internal/adapters/http/dto"
	"github.com/jsamuelsen11/opscheck/internal/app/checks"
	"github.com/jsamuelsen11/opscheck/internal/domain"
	"github.com/jsamuelsen11/opscheck/internal/platform/logging"
	"github.com/jsamuelsen11/opscheck/internal/ports"
)

// GroupParam is the chi URL parameter holding the group name.
const GroupParam = "group"

// ChecksHandler serves one check family (health or readiness) over HTTP.
// The response status code follows the overall severity: 200 healthy,
// 400 warning, 500 critical.
type ChecksHandler struct {
	controller ports.CheckController
	nameBudget int
}

// NewChecksHandler creates a handler for the given controller. A nameBudget
// of zero or less falls back to checks.DefaultNameBudget.
func NewChecksHandler(controller ports.CheckController, nameBudget int) *ChecksHandler {
	if nameBudget <= 0 {
		nameBudget = checks.DefaultNameBudget
	}
	return &ChecksHandler{controller: controller, nameBudget: nameBudget}
}

// Evaluate handles GET /health and GET /ready.
func (h *ChecksHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	showAll, err := parseShowAll(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	report := h.controller.RunAll(r.Context())
	h.writeReport(w, r, report, showAll)
}

// EvaluateGroup handles GET /health/{group} and GET /ready/{group}. An
// unknown group is a 404; a configured group with no registered members is
// a healthy, empty report.
func (h *ChecksHandler) EvaluateGroup(w http.ResponseWriter, r *http.Request) {
	showAll, err := parseShowAll(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	group := chi.URLParam(r, GroupParam)
	report, found := h.controller.RunGroup(r.Context(), group)
	if !found {
		logging.FromContext(r.Context()).DebugContext(r.Context(), "unknown check group requested",
			slog.String("group", group),
		)
		dto.WriteErrorResponse(w, r, &domain.GroupNotFoundError{Group: group})
		return
	}
	h.writeReport(w, r, report, showAll)
}

func (h *ChecksHandler) writeReport(w http.ResponseWriter, r *http.Request, report ports.Report, showAll bool) {
	writeJSON(w, r, report.StatusCode(), dto.ToReportResponse(report, showAll, h.nameBudget))
}

// Liveness handles GET /live. It always returns 200 and runs no checks.
func Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dto.LivenessResponse{Status: dto.StatusOK})
}
