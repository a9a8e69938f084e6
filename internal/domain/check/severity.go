package check

import (
	"fmt"
	"net/http"
	"strings"
)

// Severity is the ordered classification of a Result:
// SeverityHealthy < SeverityWarning < SeverityCritical.
type Severity int

const (
	SeverityHealthy Severity = iota
	SeverityWarning
	SeverityCritical
)

// statusCodes maps each Severity to its HTTP-equivalent status code.
var statusCodes = [...]int{
	SeverityHealthy:  http.StatusOK,
	SeverityWarning:  http.StatusBadRequest,
	SeverityCritical: http.StatusInternalServerError,
}

var severityNames = [...]string{
	SeverityHealthy:  "healthy",
	SeverityWarning:  "warning",
	SeverityCritical: "critical",
}

// Classify maps a Result to its Severity. A passing Result is healthy; a
// failing Result whose message starts with "WARN:" (any case) is a warning;
// every other failing Result, including one without a message, is critical.
func Classify(r Result) Severity {
	if r.ok {
		return SeverityHealthy
	}
	if len(r.message) >= len(warnPrefix) && strings.EqualFold(r.message[:len(warnPrefix)], warnPrefix) {
		return SeverityWarning
	}
	return SeverityCritical
}

// Max returns the highest of the given severities, or SeverityHealthy when
// none are given.
func Max(severities ...Severity) Severity {
	worst := SeverityHealthy
	for _, s := range severities {
		if s > worst {
			worst = s
		}
	}
	return worst
}

// StatusCode returns the HTTP-equivalent status code for the severity.
// Unknown values map to 500.
func (s Severity) StatusCode() int {
	if s < 0 || int(s) >= len(statusCodes) {
		return http.StatusInternalServerError
	}
	return statusCodes[s]
}

// String implements fmt.Stringer.
func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return fmt.Sprintf("severity(%d)", int(s))
	}
	return severityNames[s]
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	for i, name := range severityNames {
		if strings.EqualFold(name, string(text)) {
			*s = Severity(i)
			return nil
		}
	}
	return fmt.Errorf("check: unknown severity %q", text)
}
