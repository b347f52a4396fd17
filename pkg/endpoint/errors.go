package endpoint

import (
	"errors"
	"fmt"
)

// Kind is the closed set of failures a service call can end in.
type Kind int

const (
	KindGeneric Kind = iota
	KindUnauthorized
	KindInvalidRequest
	KindWaypointNotFound
	KindNoRouteFound
	KindLinkIDNotFound
	KindRouteNotReconstructed
	KindTimeout
)

// Sentinel errors, one per Kind. Every *Error unwraps to the sentinel of its kind.
var (
	ErrGeneric               = errors.New("service error")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrInvalidRequest        = errors.New("invalid request")
	ErrWaypointNotFound      = errors.New("waypoint not found")
	ErrNoRouteFound          = errors.New("no route found")
	ErrLinkIDNotFound        = errors.New("link id not found")
	ErrRouteNotReconstructed = errors.New("route not reconstructed")
	ErrTimeout               = errors.New("timed out")

	// ErrInvalidArgument marks local validation failures raised before any
	// request is sent. Those errors are of KindGeneric.
	ErrInvalidArgument = errors.New("invalid argument")
)

var kindNames = map[Kind]string{
	KindGeneric:               "Generic",
	KindUnauthorized:          "Unauthorized",
	KindInvalidRequest:        "InvalidRequest",
	KindWaypointNotFound:      "WaypointNotFound",
	KindNoRouteFound:          "NoRouteFound",
	KindLinkIDNotFound:        "LinkIdNotFound",
	KindRouteNotReconstructed: "RouteNotReconstructed",
	KindTimeout:               "Timeout",
}

var kindSentinels = map[Kind]error{
	KindGeneric:               ErrGeneric,
	KindUnauthorized:          ErrUnauthorized,
	KindInvalidRequest:        ErrInvalidRequest,
	KindWaypointNotFound:      ErrWaypointNotFound,
	KindNoRouteFound:          ErrNoRouteFound,
	KindLinkIDNotFound:        ErrLinkIDNotFound,
	KindRouteNotReconstructed: ErrRouteNotReconstructed,
	KindTimeout:               ErrTimeout,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Sentinel returns the sentinel error for k.
func (k Kind) Sentinel() error {
	if err, ok := kindSentinels[k]; ok {
		return err
	}
	return ErrGeneric
}

// Error is the error returned by every service operation.
type Error struct {
	Service    string // Service client that produced the error
	Op         string // Operation name, e.g. "FreeForm"
	Kind       Kind   // Failure kind
	Message    string // Message from the service or from local validation
	StatusCode int    // HTTP status, zero when no response was received
	RequestID  string // X-Request-ID sent with the request
	Err        error  // Underlying cause
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.Sentinel().Error()
	}
	prefix := e.Service
	if e.Op != "" {
		prefix += "." + e.Op
	}
	if prefix != "" {
		msg = prefix + ": " + msg
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes the kind's sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind.Sentinel(), e.Err}
	}
	return []error{e.Kind.Sentinel()}
}

// KindOf returns the kind of err, KindGeneric when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindGeneric
}

// Invalid returns a local validation error.
func Invalid(service, op, format string, args ...any) *Error {
	return &Error{
		Service: service,
		Op:      op,
		Kind:    KindGeneric,
		Message: fmt.Sprintf(format, args...),
		Err:     ErrInvalidArgument,
	}
}

// Wrap returns a Generic error around a transport, encoding or decoding failure.
func Wrap(service, op, message string, err error) *Error {
	return &Error{
		Service: service,
		Op:      op,
		Kind:    KindGeneric,
		Message: message,
		Err:     err,
	}
}

// Timeout returns a Timeout error.
func Timeout(service, op, message string, err error) *Error {
	return &Error{
		Service: service,
		Op:      op,
		Kind:    KindTimeout,
		Message: message,
		Err:     err,
	}
}
