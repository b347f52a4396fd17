package endpoint_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wayfarer/wayfarer/pkg/endpoint"
)

func TestError_Message(t *testing.T) {
	err := &endpoint.Error{
		Service: "geocoder",
		Op:      "FreeForm",
		Kind:    endpoint.KindUnauthorized,
		Message: "Invalid token",
	}
	assert.Equal(t, "geocoder.FreeForm: Invalid token", err.Error())

	wrapped := endpoint.Wrap("routing", "CarRoute", "request failed", context.Canceled)
	assert.Equal(t, "routing.CarRoute: request failed: context canceled", wrapped.Error())
}

func TestError_IsKindAndCause(t *testing.T) {
	err := fmt.Errorf("resolving: %w", endpoint.Timeout("matrix", "CalculateAsync", "polling", context.DeadlineExceeded))

	assert.ErrorIs(t, err, endpoint.ErrTimeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, endpoint.ErrGeneric)
	assert.Equal(t, endpoint.KindTimeout, endpoint.KindOf(err))
}

func TestInvalid(t *testing.T) {
	err := endpoint.Invalid("isoline", "Calculate", "exactly one of origin or destination is required")

	assert.Equal(t, endpoint.KindGeneric, err.Kind)
	assert.ErrorIs(t, err, endpoint.ErrInvalidArgument)
	assert.ErrorIs(t, err, endpoint.ErrGeneric)
	assert.Contains(t, err.Error(), "exactly one of origin or destination is required")
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, endpoint.KindGeneric, endpoint.KindOf(errors.New("plain")))
}

func TestKind_String(t *testing.T) {
	tests := map[endpoint.Kind]string{
		endpoint.KindGeneric:               "Generic",
		endpoint.KindUnauthorized:          "Unauthorized",
		endpoint.KindInvalidRequest:        "InvalidRequest",
		endpoint.KindWaypointNotFound:      "WaypointNotFound",
		endpoint.KindNoRouteFound:          "NoRouteFound",
		endpoint.KindLinkIDNotFound:        "LinkIdNotFound",
		endpoint.KindRouteNotReconstructed: "RouteNotReconstructed",
		endpoint.KindTimeout:               "Timeout",
		endpoint.Kind(99):                  "Kind(99)",
	}
	for kind, want := range tests {
		assert.Equal(t, want, kind.String())
	}
	assert.Equal(t, endpoint.ErrGeneric, endpoint.Kind(99).Sentinel())
}
