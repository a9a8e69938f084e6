package probes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/jsamuelsen11/opscheck/internal/domain/check"
	"github.com/jsamuelsen11/opscheck/internal/platform/httpclient"
)

// maxDrainBytes bounds how much of a probe response body is read before the
// connection is returned to the pool.
const maxDrainBytes = 4 << 10

// Requester is the outbound client an HTTP probe needs. *httpclient.Client
// satisfies it.
type Requester interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
	HealthCheck(ctx context.Context) error
	BreakerState() string
}

// HTTPCheck probes one URL with a GET request.
//
// Result mapping:
//   - breaker open: critical, no request is sent.
//   - transport error or unexpected status: critical.
//   - expected status while the breaker is half-open: warning.
//   - expected status: healthy.
//
// An expectStatus of zero accepts any 2xx answer.
type HTTPCheck struct {
	client       Requester
	url          string
	display      string
	expectStatus int
}

// NewHTTPCheck creates an HTTP probe. The URL is validated when the probe
// runs; configuration loading rejects malformed URLs earlier.
func NewHTTPCheck(client Requester, rawURL string, expectStatus int) *HTTPCheck {
	display := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		display = u.Redacted()
	}
	return &HTTPCheck{client: client, url: rawURL, display: display, expectStatus: expectStatus}
}

// Check implements check.Check.
func (h *HTTPCheck) Check(ctx context.Context) (check.Result, error) {
	b := check.NewResult().WithDetail("url", h.display)

	if err := h.client.HealthCheck(ctx); errors.Is(err, httpclient.ErrUnavailable) {
		return b.WithDetail("breaker", h.client.BreakerState()).WithError(err).Unhealthy(), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, http.NoBody)
	if err != nil {
		return b.WithError(fmt.Errorf("building request: %w", err)).Unhealthy(), nil
	}

	resp, err := h.client.Do(ctx, req)
	if resp != nil {
		defer drain(resp.Body)
		b.WithDetail("status", resp.StatusCode)
	}
	b.WithDetail("breaker", h.client.BreakerState())

	if err != nil {
		return b.WithError(err).Unhealthy(), nil
	}

	if !h.accepts(resp.StatusCode) {
		return b.WithMessage("unexpected status %d", resp.StatusCode).Unhealthy(), nil
	}

	if err := h.client.HealthCheck(ctx); errors.Is(err, httpclient.ErrDegraded) {
		return b.WithMessage("recovering, circuit breaker half-open").Warn(), nil
	}
	return b.Healthy(), nil
}

func (h *HTTPCheck) accepts(status int) bool {
	if h.expectStatus == 0 {
		return status >= http.StatusOK && status < http.StatusMultipleChoices
	}
	return status == h.expectStatus
}

func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, maxDrainBytes))
	_ = body.Close()
}
