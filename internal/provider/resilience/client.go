package resilience

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const instrumentationName = "github.com/wayfarer/wayfarer/internal/provider/resilience"

var (
	// ErrCircuitOpen is returned when the circuit breaker rejects a call.
	ErrCircuitOpen = errors.New("circuit breaker is open")

	// ErrMaxRetriesExceeded is returned when every attempt failed without a response.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)

type noRetryKey struct{}

// WithoutRetry marks requests sent with ctx to be attempted once, for calls
// that must not be repeated such as job submissions.
func WithoutRetry(ctx context.Context) context.Context {
	return context.WithValue(ctx, noRetryKey{}, true)
}

func retriesAllowed(ctx context.Context) bool {
	noRetry, _ := ctx.Value(noRetryKey{}).(bool)
	return !noRetry
}

// ClientConfig holds configuration for the resilient HTTP client.
type ClientConfig struct {
	// Name identifies the service this client talks to.
	Name string

	// Timeout bounds each individual HTTP attempt.
	// Default: 10 seconds
	Timeout time.Duration

	// MaxRetries is the number of retries after the first attempt.
	// Default: 3
	MaxRetries uint64

	// DisableRetries sends every request exactly once. Zero MaxRetries alone
	// means the default.
	DisableRetries bool

	// InitialInterval is the first retry backoff.
	// Default: 100ms
	InitialInterval time.Duration

	// MaxInterval caps the retry backoff.
	// Default: 5 seconds
	MaxInterval time.Duration

	// RequestsPerSecond limits outbound attempts. Zero disables the limit.
	RequestsPerSecond float64

	// CircuitBreaker overrides DefaultCircuitBreakerConfig.
	CircuitBreaker *CircuitBreakerConfig

	// Registry receives success/failure reports. Nil disables reporting.
	Registry *Registry

	// TracerProvider and MeterProvider default to the global providers.
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider

	// Logger for breaker transitions and retries.
	Logger zerolog.Logger
}

// DefaultClientConfig returns the defaults every service client starts from.
func DefaultClientConfig(name string) ClientConfig {
	cbConfig := DefaultCircuitBreakerConfig(name)
	return ClientConfig{
		Name:            name,
		Timeout:         10 * time.Second,
		MaxRetries:      3,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		CircuitBreaker:  &cbConfig,
	}
}

// Client is an HTTP client with circuit breaking, bounded retries on 5xx and
// network errors, optional rate limiting, and a client span per call.
type Client struct {
	httpClient     *http.Client
	circuitBreaker *gobreaker.CircuitBreaker[*http.Response]
	limiter        *rate.Limiter
	registry       *Registry
	tracer         trace.Tracer
	requests       metric.Int64Counter
	duration       metric.Float64Histogram
	config         ClientConfig
}

// NewClient creates a resilient client and registers it with cfg.Registry.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	switch {
	case cfg.DisableRetries:
		cfg.MaxRetries = 0
	case cfg.MaxRetries == 0:
		cfg.MaxRetries = 3
	}
	if cfg.InitialInterval == 0 {
		cfg.InitialInterval = 100 * time.Millisecond
	}
	if cfg.MaxInterval == 0 {
		cfg.MaxInterval = 5 * time.Second
	}

	cbConfig := DefaultCircuitBreakerConfig(cfg.Name)
	if cfg.CircuitBreaker != nil {
		cbConfig = *cfg.CircuitBreaker
	}
	if cbConfig.OnStateChange == nil {
		logger := cfg.Logger
		cbConfig.OnStateChange = func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("service", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		}
	}

	tp := cfg.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	mp := cfg.MeterProvider
	if mp == nil {
		mp = otel.GetMeterProvider()
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			// One child span per attempt under the span Do opens.
			Transport: otelhttp.NewTransport(http.DefaultTransport,
				otelhttp.WithTracerProvider(tp),
				otelhttp.WithMeterProvider(mp),
				otelhttp.WithPropagators(otel.GetTextMapPropagator()),
			),
		},
		circuitBreaker: NewCircuitBreaker[*http.Response](cbConfig), //nolint:bodyclose // type param, not response
		registry:       cfg.Registry,
		tracer:         tp.Tracer(instrumentationName),
		config:         cfg,
	}

	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	meter := mp.Meter(instrumentationName)
	if counter, err := meter.Int64Counter(
		"wayfarer.client.requests",
		metric.WithDescription("Outbound service requests"),
		metric.WithUnit("{request}"),
	); err == nil {
		c.requests = counter
	}
	if histogram, err := meter.Float64Histogram(
		"wayfarer.client.duration",
		metric.WithDescription("Duration of outbound service requests including retries"),
		metric.WithUnit("s"),
	); err == nil {
		c.duration = histogram
	}

	if c.registry != nil {
		c.registry.Register(cfg.Name, c)
	}

	return c
}

// Name returns the service name the client was created for.
func (c *Client) Name() string {
	return c.config.Name
}

// Do executes req with breaker protection and retries. A 5xx response that
// survives every retry is returned as a response, not an error, so callers can
// read the service's error body.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx, span := c.tracer.Start(req.Context(), req.Method+" "+req.URL.Host+req.URL.Path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("server.address", req.URL.Host),
			attribute.String("url.path", req.URL.Path),
			attribute.String("wayfarer.service", c.config.Name),
		),
	)
	defer span.End()

	start := time.Now()
	resp, err := c.do(ctx, req)
	elapsed := time.Since(start).Seconds()

	attrs := []attribute.KeyValue{attribute.String("wayfarer.service", c.config.Name)}
	switch {
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		attrs = append(attrs, attribute.Bool("error", true))
		c.reportFailure(err)
	case resp.StatusCode >= 500:
		span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
		attrs = append(attrs, attribute.Int("http.response.status_code", resp.StatusCode), attribute.Bool("error", true))
		c.reportFailure(&ServerError{StatusCode: resp.StatusCode})
	default:
		span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
		attrs = append(attrs, attribute.Int("http.response.status_code", resp.StatusCode))
		if c.registry != nil {
			c.registry.RecordSuccess(c.config.Name)
		}
	}

	if c.requests != nil {
		c.requests.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
	if c.duration != nil {
		c.duration.Record(ctx, elapsed, metric.WithAttributes(attrs...))
	}

	return resp, err
}

func (c *Client) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.config.InitialInterval
	bo.MaxInterval = c.config.MaxInterval
	bo.MaxElapsedTime = 0 // bounded by MaxRetries instead

	retries := c.config.MaxRetries
	if !retriesAllowed(ctx) {
		retries = 0
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, retries), ctx)

	var lastResp *http.Response

	operation := func() error {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return backoff.Permanent(err)
			}
		}

		resp, err := c.circuitBreaker.Execute(func() (*http.Response, error) { //nolint:bodyclose // returned to caller
			attempt, err := cloneRequest(ctx, req)
			if err != nil {
				return nil, err
			}

			r, err := c.httpClient.Do(attempt)
			if err != nil {
				return nil, err
			}
			if r.StatusCode >= 500 {
				return r, &ServerError{StatusCode: r.StatusCode}
			}
			return r, nil
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(ErrCircuitOpen)
			}
			if resp != nil {
				discard(lastResp)
				lastResp = resp
			}
			c.config.Logger.Debug().
				Err(err).
				Str("service", c.config.Name).
				Msg("attempt failed")
			return err
		}

		discard(lastResp)
		lastResp = resp
		return nil
	}

	if err := backoff.Retry(operation, policy); err != nil {
		if lastResp != nil && lastResp.StatusCode >= 500 {
			return lastResp, nil
		}
		discard(lastResp)
		return nil, err
	}

	if lastResp == nil {
		return nil, ErrMaxRetriesExceeded
	}
	return lastResp, nil
}

func (c *Client) reportFailure(err error) {
	if c.registry != nil {
		c.registry.RecordFailure(c.config.Name, err)
	}
}

// cloneRequest copies req for one attempt, rewinding the body when possible.
func cloneRequest(ctx context.Context, req *http.Request) (*http.Request, error) {
	attempt := req.Clone(ctx)
	if req.Body != nil && req.Body != http.NoBody && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		attempt.Body = body
	}
	return attempt, nil
}

func discard(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// ServerError represents an HTTP 5xx response.
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return "server error: " + http.StatusText(e.StatusCode)
}

// CircuitBreakerState returns the current breaker state.
func (c *Client) CircuitBreakerState() gobreaker.State {
	return c.circuitBreaker.State()
}

// CircuitBreakerCounts returns the current breaker counters.
func (c *Client) CircuitBreakerCounts() gobreaker.Counts {
	return c.circuitBreaker.Counts()
}
