// Package dto provides the HTTP response shapes of the check endpoints and
// RFC 9457 Problem Details error responses.
package dto

import (
	"time"

	"github.com/jsamuelsen11/opscheck/internal/app/checks"
	"github.com/jsamuelsen11/opscheck/internal/domain/check"
	"github.com/jsamuelsen11/opscheck/internal/ports"
)

// StatusOK is the body status of the liveness endpoint.
const StatusOK = "ok"

// ReportResponse is the body of a health or readiness evaluation.
type ReportResponse struct {
	Status check.Severity  `json:"status"`
	Checks []CheckResponse `json:"checks"`
}

// CheckResponse is one rendered check. Name is the abbreviated display name.
type CheckResponse struct {
	Name      checks.DisplayName `json:"name"`
	Severity  check.Severity     `json:"severity"`
	Healthy   bool               `json:"healthy"`
	Message   string             `json:"message,omitempty"`
	Error     string             `json:"error,omitempty"`
	Timestamp string             `json:"timestamp"`
	Details   *check.Details     `json:"details,omitempty"`
}

// LivenessResponse is the body of the liveness endpoint.
type LivenessResponse struct {
	Status string `json:"status"`
}

// ToReportResponse renders a report for display. Entries are ordered worst
// first; healthy entries are hidden when something is failing unless showAll
// is set.
func ToReportResponse(report ports.Report, showAll bool, nameBudget int) ReportResponse {
	entries := checks.RenderWithBudget(report.Results, showAll, nameBudget)

	items := make([]CheckResponse, len(entries))
	for i := range entries {
		items[i] = ToCheckResponse(&entries[i])
	}

	return ReportResponse{
		Status: report.Overall,
		Checks: items,
	}
}

// ToCheckResponse converts a rendered entry to its response DTO.
func ToCheckResponse(e *checks.Entry) CheckResponse {
	res := e.Result
	resp := CheckResponse{
		Name:      e.Name,
		Severity:  e.Severity,
		Healthy:   res.OK(),
		Message:   res.Message(),
		Timestamp: res.Timestamp().UTC().Format(time.RFC3339Nano),
	}
	if err := res.Err(); err != nil {
		resp.Error = err.Error()
	}
	if d := res.Details(); d.Len() > 0 {
		resp.Details = &d
	}
	return resp
}
