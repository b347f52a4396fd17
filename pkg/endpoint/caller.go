package endpoint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wayfarer/wayfarer/internal/provider/resilience"
	"github.com/wayfarer/wayfarer/pkg/geo"
)

// RequestIDHeader carries the id generated for every outbound request.
const RequestIDHeader = "X-Request-ID"

// Request describes one outbound call.
type Request struct {
	// Op names the operation in logs and errors.
	Op string

	// Method defaults to GET.
	Method string

	// Path is appended to the caller's base URL. Ignored when URL is set.
	Path string

	// URL is an absolute target, used for service-provided links such as
	// async status URLs.
	URL string

	// Params are merged into the query string.
	Params Params

	// Body is sent as JSON when non-nil.
	Body any

	// RawBody is sent as is with ContentType when Body is nil.
	RawBody     []byte
	ContentType string

	// Bearer switches authentication from the apiKey query parameter to an
	// Authorization header.
	Bearer string

	// Accept overrides the Accept header.
	Accept string

	// NoRetry sends the request once even when the response is a 5xx.
	NoRetry bool
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	RequestID  string
}

// Caller sends requests for one service.
type Caller struct {
	service    string
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
	logger     zerolog.Logger
}

// NewCaller creates a caller for service. defaultBaseURL is used unless
// cfg.BaseURL is set. Without cfg.HTTPClient a resilient client is built and
// registered for health reporting under the service name.
func NewCaller(service, defaultBaseURL string, cfg Config) *Caller {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		clientCfg := resilience.DefaultClientConfig(service)
		clientCfg.Timeout = DefaultTimeout
		if cfg.Timeout > 0 {
			clientCfg.Timeout = cfg.Timeout
		}
		if cfg.MaxRetries > 0 {
			clientCfg.MaxRetries = cfg.MaxRetries
		}
		clientCfg.DisableRetries = cfg.DisableRetries
		clientCfg.RequestsPerSecond = cfg.RequestsPerSecond
		clientCfg.Registry = resilience.GlobalRegistry
		clientCfg.Logger = cfg.Logger
		clientCfg.TracerProvider = cfg.TracerProvider
		clientCfg.MeterProvider = cfg.MeterProvider
		httpClient = resilience.NewClient(clientCfg)
	}

	return &Caller{
		service:    service,
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     cfg.Logger.With().Str("service", service).Logger(),
	}
}

// Service returns the service name.
func (c *Caller) Service() string {
	return c.service
}

// Logger returns the caller's service-scoped logger.
func (c *Caller) Logger() zerolog.Logger {
	return c.logger
}

// Invalid returns a local validation error for op.
func (c *Caller) Invalid(op, format string, args ...any) *Error {
	return Invalid(c.service, op, format, args...)
}

// Validate checks every coordinate before a request is built.
func (c *Caller) Validate(op string, coords ...geo.Coordinate) error {
	for _, coord := range coords {
		if err := coord.Validate(); err != nil {
			e := Invalid(c.service, op, "%s", err.Error())
			e.Err = fmt.Errorf("%w (%w)", ErrInvalidArgument, geo.ErrInvalidCoordinate)
			return e
		}
	}
	return nil
}

// Do sends req and reads the whole response. Only transport and encoding
// failures are errors; the status code is left to the caller.
func (c *Caller) Do(ctx context.Context, req Request) (*Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	target := req.URL
	if target == "" {
		target = c.baseURL + req.Path
	}

	params := make(Params, len(req.Params)+1)
	for k, v := range req.Params {
		params[k] = v
	}
	if req.Bearer == "" && c.apiKey != "" {
		params["apiKey"] = c.apiKey
	}

	u, err := BuildURL(target, params)
	if err != nil {
		return nil, Wrap(c.service, req.Op, "building request url", err)
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case req.Body != nil:
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, Wrap(c.service, req.Op, "encoding request body", err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	case req.RawBody != nil:
		body = bytes.NewReader(req.RawBody)
		contentType = req.ContentType
	}

	if req.NoRetry {
		ctx = resilience.WithoutRetry(ctx)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, Wrap(c.service, req.Op, "creating request", err)
	}

	requestID := uuid.NewString()
	httpReq.Header.Set(RequestIDHeader, requestID)
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	accept := req.Accept
	if accept == "" {
		accept = "application/json"
	}
	httpReq.Header.Set("Accept", accept)
	if req.Bearer != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Bearer)
	}

	c.logger.Debug().
		Str("op", req.Op).
		Str("method", method).
		Str("path", httpReq.URL.Path).
		Str("request_id", requestID).
		Msg("sending request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		e := Wrap(c.service, req.Op, "request failed", err)
		e.RequestID = requestID
		if errors.Is(err, resilience.ErrCircuitOpen) {
			e.Message = "service temporarily unavailable"
		}
		return nil, e
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		e := Wrap(c.service, req.Op, "reading response body", err)
		e.StatusCode = resp.StatusCode
		e.RequestID = requestID
		return nil, e
	}

	c.logger.Debug().
		Str("op", req.Op).
		Int("status", resp.StatusCode).
		Int("bytes", len(respBody)).
		Str("request_id", requestID).
		Msg("received response")

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
		RequestID:  requestID,
	}, nil
}

// Call sends req and classifies the JSON response with d, decoding successful
// bodies into out.
func (c *Caller) Call(ctx context.Context, d Descriptor, req Request, out any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	return c.Classify(d, req.Op, resp, out)
}

// Classify runs d over an already received response and stamps failures with
// the response's status and request id.
func (c *Caller) Classify(d Descriptor, op string, resp *Response, out any) error {
	if err := d.Classify(op, resp.Body, out); err != nil {
		return c.annotate(err, resp)
	}
	return nil
}

// Reject classifies resp as a failure whatever its body holds. It serves calls
// whose status code alone marks them failed.
func (c *Caller) Reject(d Descriptor, op string, resp *Response) error {
	var envelope map[string]any
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return c.annotate(Wrap(d.Service, op, "decoding response", err), resp)
	}
	return c.annotate(d.Failure(op, envelope), resp)
}

// Fetch sends req to a binary endpoint and returns the payload bytes.
func (c *Caller) Fetch(ctx context.Context, d Descriptor, req Request) ([]byte, error) {
	if req.Accept == "" {
		req.Accept = "*/*"
	}
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	payload, err := d.Binary(req.Op, resp.Body)
	if err != nil {
		return nil, c.annotate(err, resp)
	}
	return payload, nil
}

func (c *Caller) annotate(err error, resp *Response) error {
	var e *Error
	if errors.As(err, &e) {
		e.StatusCode = resp.StatusCode
		e.RequestID = resp.RequestID
		c.logger.Warn().
			Str("op", e.Op).
			Str("kind", e.Kind.String()).
			Int("status", e.StatusCode).
			Str("request_id", e.RequestID).
			Msg(e.Message)
	}
	return err
}
