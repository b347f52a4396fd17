package matrix

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/golang-jwt/jwt/v5"

	"github.com/wayfarer/wayfarer/pkg/endpoint"
)

const (
	// DefaultPollInterval is the wait between two status polls.
	DefaultPollInterval = 5 * time.Second

	// DefaultMaxPolls bounds the number of status polls.
	DefaultMaxPolls = 60
)

var jobDescriptor = endpoint.Descriptor{
	Service:    ServiceName,
	SuccessKey: "statusUrl",
	Rules:      []endpoint.Rule{endpoint.ErrorDescriptionRule, endpoint.TitleCauseRule},
}

var errPending = errors.New("matrix calculation pending")

// PollOptions bounds the status poll loop. Zero fields take the defaults.
type PollOptions struct {
	Interval time.Duration
	MaxPolls int
}

func (o PollOptions) withDefaults() PollOptions {
	if o.Interval <= 0 {
		o.Interval = DefaultPollInterval
	}
	if o.MaxPolls <= 0 {
		o.MaxPolls = DefaultMaxPolls
	}
	return o
}

// CalculateAsync submits a matrix job authenticated with a bearer token and
// polls its status URL until the matrix is ready, the job fails, the poll
// budget runs out or ctx is done. The first poll is sent right after the job
// is accepted. Running out of polls or time yields a Timeout error.
func (c *Client) CalculateAsync(ctx context.Context, req Request, token string, opts PollOptions) (*Response, error) {
	const op = "CalculateAsync"
	if err := c.validate(op, req); err != nil {
		return nil, err
	}
	if err := c.checkToken(op, token); err != nil {
		return nil, err
	}

	job, err := c.submit(ctx, op, req, token)
	if err != nil {
		return nil, err
	}
	return c.poll(ctx, op, job, token, opts.withDefaults())
}

// checkToken rejects a JWT whose exp claim has passed. Tokens that are not
// JWTs are sent as they are.
func (c *Client) checkToken(op, token string) error {
	if token == "" {
		return c.caller.Invalid(op, "bearer token is required")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	if exp.Before(time.Now()) {
		return &endpoint.Error{
			Service: ServiceName,
			Op:      op,
			Kind:    endpoint.KindUnauthorized,
			Message: fmt.Sprintf("bearer token expired at %s", exp.UTC().Format(time.RFC3339)),
			Err:     jwt.ErrTokenExpired,
		}
	}
	return nil
}

func (c *Client) submit(ctx context.Context, op string, req Request, token string) (*Job, error) {
	resp, err := c.caller.Do(ctx, endpoint.Request{
		Op:      op,
		Method:  http.MethodPost,
		Path:    matrixPath,
		Params:  endpoint.Params{"async": true},
		Body:    req,
		Bearer:  token,
		NoRetry: true,
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusAccepted {
		return nil, c.caller.Reject(jobDescriptor, op, resp)
	}

	var job Job
	if err := c.caller.Classify(jobDescriptor, op, resp, &job); err != nil {
		return nil, err
	}

	logger := c.caller.Logger()
	logger.Debug().
		Str("op", op).
		Str("matrix_id", job.MatrixID).
		Str("status", job.Status).
		Msg("matrix job accepted")
	return &job, nil
}

func (c *Client) poll(ctx context.Context, op string, job *Job, token string, opts PollOptions) (*Response, error) {
	var (
		result *Response
		polls  int
	)

	operation := func() error {
		polls++
		resp, err := c.caller.Do(ctx, endpoint.Request{
			Op:     op,
			URL:    job.StatusURL,
			Bearer: token,
		})
		if err != nil {
			return backoff.Permanent(err)
		}

		var envelope map[string]any
		if err := json.Unmarshal(resp.Body, &envelope); err != nil {
			return backoff.Permanent(c.caller.Reject(descriptor, op, resp))
		}

		status, _ := envelope["status"].(string)
		logger := c.caller.Logger()
		logger.Debug().
			Str("op", op).
			Str("matrix_id", job.MatrixID).
			Int("poll", polls).
			Str("status", status).
			Msg("polled matrix job")

		switch {
		case descriptor.Succeeded(envelope):
			var out Response
			if err := c.caller.Classify(descriptor, op, resp, &out); err != nil {
				return backoff.Permanent(err)
			}
			result = &out
			return nil
		case envelope["error"] != nil, envelope["title"] != nil, status == "failed":
			return backoff.Permanent(c.caller.Reject(descriptor, op, resp))
		case status == "completed" && envelope["resultUrl"] != nil:
			out, err := c.fetchResult(ctx, op, envelope["resultUrl"], token)
			if err != nil {
				return backoff.Permanent(err)
			}
			result = out
			return nil
		}
		return errPending
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(opts.Interval), uint64(opts.MaxPolls-1)),
		ctx,
	)
	err := backoff.Retry(operation, policy)
	switch {
	case err == nil:
		return result, nil
	case errors.Is(err, errPending):
		return nil, endpoint.Timeout(ServiceName, op,
			fmt.Sprintf("matrix %s not ready after %d polls", job.MatrixID, polls), nil)
	case ctx.Err() != nil:
		return nil, endpoint.Timeout(ServiceName, op,
			fmt.Sprintf("matrix %s not ready before the deadline", job.MatrixID), ctx.Err())
	}
	return nil, err
}

func (c *Client) fetchResult(ctx context.Context, op string, resultURL any, token string) (*Response, error) {
	u, ok := resultURL.(string)
	if !ok || u == "" {
		return nil, endpoint.Wrap(ServiceName, op, "invalid result url", nil)
	}

	var out Response
	if err := c.caller.Call(ctx, descriptor, endpoint.Request{
		Op:     op,
		URL:    u,
		Bearer: token,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
