// Package httpclient provides an instrumented HTTP client for outbound probe
// requests, with a circuit breaker, rate limiting, and OpenTelemetry tracing.
//
// The client applies middleware-like processing in this order:
//
//	Circuit Breaker → Rate Limiter → OTEL Span → HTTP
//
// Each call makes exactly one attempt. A probe that fails is reported as
// failing on this evaluation and tried again on the next one.
//
// Construction:
//
//	client := httpclient.New(&cfg.Probes.Client, "upstream.self", metrics, logger)
//
// Executing requests:
//
//	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
//	resp, err := client.Do(ctx, req)
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/jsamuelsen11/opscheck/internal/platform/config"
	"github.com/jsamuelsen11/opscheck/internal/platform/telemetry"
)

// Errors reported by the client. Callers match them with errors.Is.
var (
	// ErrServerStatus is returned together with the response when the
	// downstream answers with a 5xx status. It counts against the breaker.
	ErrServerStatus = errors.New("server error status")

	// ErrDegraded is reported by HealthCheck while the breaker is half-open.
	ErrDegraded = errors.New("degraded (circuit breaker half-open)")

	// ErrUnavailable is reported by HealthCheck while the breaker is open.
	ErrUnavailable = errors.New("failing (circuit breaker open)")
)

// Client is an instrumented HTTP client with circuit breaker, rate limiting,
// and OpenTelemetry tracing for outbound requests.
type Client struct {
	httpClient  *http.Client
	serviceName string
	userAgent   string
	breaker     *gobreaker.CircuitBreaker[struct{}]
	limiter     *rate.Limiter // nil when rate limiting is disabled
	metrics     *telemetry.Metrics
	logger      *slog.Logger
}

// New creates an instrumented HTTP client.
//
// The serviceName identifies the downstream in traces, metrics, and breaker
// logs. If metrics is nil, metric recording is skipped.
func New(cfg *config.ClientConfig, serviceName string, metrics *telemetry.Metrics, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        serviceName,
		MaxRequests: toUint32(cfg.CircuitBreaker.HalfOpenLimit),
		Timeout:     cfg.CircuitBreaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= cfg.CircuitBreaker.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	var limiter *rate.Limiter
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.BurstSize)
	}

	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		serviceName: serviceName,
		userAgent:   cfg.UserAgent,
		breaker:     cb,
		limiter:     limiter,
		metrics:     metrics,
		logger:      logger,
	}
}

// Do executes an HTTP request through the pipeline:
// Circuit Breaker → Rate Limiter → OTEL Span → HTTP.
//
// On a 2xx-4xx answer resp is non-nil and err is nil. On a 5xx answer both
// resp and an error wrapping ErrServerStatus are returned; the caller must
// close resp.Body in either case. When the breaker rejects the call or a
// transport error occurs, resp is nil.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()
	method := req.Method

	var resp *http.Response
	_, err := c.breaker.Execute(func() (struct{}, error) {
		if err := c.waitForRateLimit(ctx); err != nil {
			return struct{}{}, err
		}

		if c.userAgent != "" {
			req.Header.Set("User-Agent", c.userAgent)
		}

		spanCtx, span := c.startSpan(ctx, req)
		defer span.End()

		// Bind span context to the request so http.Client.Do uses it for
		// cancellation, deadlines, and trace propagation.
		req = req.WithContext(spanCtx)

		r, err := c.httpClient.Do(req)
		if err == nil && r.StatusCode >= http.StatusInternalServerError {
			err = fmt.Errorf("%w: HTTP %d from %s", ErrServerStatus, r.StatusCode, c.serviceName)
		}
		resp = r
		c.finishSpan(span, resp, err)

		return struct{}{}, err
	})

	c.recordMetrics(ctx, method, start, resp, err)

	return resp, err
}

// Name returns the downstream identifier.
func (c *Client) Name() string {
	return c.serviceName
}

// HealthCheck reports the downstream's availability based on the circuit
// breaker state. No network call is made.
//
// State mapping:
//   - "closed"    returns nil.
//   - "half-open" returns an error wrapping ErrDegraded.
//   - "open"      returns an error wrapping ErrUnavailable.
func (c *Client) HealthCheck(_ context.Context) error {
	state := c.breaker.State()
	switch state {
	case gobreaker.StateClosed:
		return nil
	case gobreaker.StateHalfOpen:
		return fmt.Errorf("%s: %w", c.serviceName, ErrDegraded)
	case gobreaker.StateOpen:
		return fmt.Errorf("%s: %w", c.serviceName, ErrUnavailable)
	default:
		return fmt.Errorf("%s: unknown circuit breaker state %v", c.serviceName, state)
	}
}

// BreakerState returns the breaker state name: "closed", "half-open", or "open".
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}

// waitForRateLimit blocks until the rate limiter allows the request or the
// context is canceled. Returns nil immediately when rate limiting is disabled.
func (c *Client) waitForRateLimit(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// startSpan creates an OTEL client span for the outbound request and injects
// trace context (W3C Trace Context) into the request headers.
func (c *Client) startSpan(ctx context.Context, req *http.Request) (context.Context, trace.Span) {
	tracer := otel.GetTracerProvider().Tracer("httpclient")

	spanName := fmt.Sprintf("HTTP %s %s", req.Method, c.serviceName)
	ctx, span := tracer.Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
			attribute.String("peer.service", c.serviceName),
		),
	)

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	return ctx, span
}

func (c *Client) finishSpan(span trace.Span, resp *http.Response, err error) {
	if resp != nil {
		span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// recordMetrics records client request duration and count metrics.
// Metrics are recorded outside the circuit breaker so that circuit-open
// rejections are captured. Safe to call with nil metrics.
func (c *Client) recordMetrics(ctx context.Context, method string, start time.Time, resp *http.Response, err error) {
	if c.metrics == nil {
		return
	}

	duration := time.Since(start).Seconds()

	statusCode := 0
	result := "error"
	if resp != nil {
		statusCode = resp.StatusCode
		if statusCode < http.StatusBadRequest {
			result = "success"
		}
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		result = "circuit_open"
	}

	attrs := metric.WithAttributes(
		telemetry.AttrHTTPMethod.String(method),
		telemetry.AttrHTTPStatus.Int(statusCode),
		telemetry.AttrPeerService.String(c.serviceName),
		telemetry.AttrResult.String(result),
	)

	c.metrics.ClientRequestDuration.Record(ctx, duration, attrs)
	c.metrics.ClientRequestTotal.Add(ctx, 1, attrs)
}

// toUint32 safely converts a non-negative int to uint32, clamping at the
// uint32 maximum. Negative values are treated as zero.
func toUint32(v int) uint32 {
	if v <= 0 {
		return 0
	}
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
