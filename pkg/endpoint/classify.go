package endpoint

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Rule inspects a failed response body. It reports the kind and message when
// it recognizes the body's error shape.
type Rule func(body map[string]any) (Kind, string, bool)

// Descriptor tells the classifier how one service reports success and failure.
type Descriptor struct {
	// Service names the service in errors.
	Service string

	// SuccessKey is the dotted path whose presence marks a successful body,
	// e.g. "items" or "Res.Stations".
	SuccessKey string

	// Rules are tried in order on bodies without the success key.
	Rules []Rule

	// MessageKeys are dotted paths tried before the common message fields
	// when no rule matched.
	MessageKeys []string
}

var defaultMessageKeys = []string{"error_description", "message", "Message", "details", "title", "error"}

// Classify decodes body into out when it carries the success key, and returns
// the typed failure otherwise. A body that is not a JSON object is a Generic
// error wrapping the decode failure.
func (d Descriptor) Classify(op string, body []byte, out any) error {
	var envelope map[string]any
	if err := json.Unmarshal(body, &envelope); err != nil {
		return Wrap(d.Service, op, "decoding response", err)
	}

	if !d.Succeeded(envelope) {
		return d.Failure(op, envelope)
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return Wrap(d.Service, op, "decoding response", err)
		}
	}
	return nil
}

// Succeeded reports whether envelope carries a non-null success key.
func (d Descriptor) Succeeded(envelope map[string]any) bool {
	if d.SuccessKey == "" {
		return envelope != nil
	}
	v, ok := Lookup(envelope, d.SuccessKey)
	return ok && v != nil
}

// Failure maps a failed body to an *Error. It never returns nil.
func (d Descriptor) Failure(op string, envelope map[string]any) *Error {
	for _, rule := range d.Rules {
		if kind, msg, ok := rule(envelope); ok {
			return &Error{Service: d.Service, Op: op, Kind: kind, Message: msg}
		}
	}

	for _, key := range d.MessageKeys {
		if msg := stringAt(envelope, key); msg != "" {
			return &Error{Service: d.Service, Op: op, Kind: KindGeneric, Message: msg}
		}
	}
	for _, key := range defaultMessageKeys {
		if msg := stringAt(envelope, key); msg != "" {
			return &Error{Service: d.Service, Op: op, Kind: KindGeneric, Message: msg}
		}
	}

	return &Error{
		Service: d.Service,
		Op:      op,
		Kind:    KindGeneric,
		Message: "error occurred on function " + op,
	}
}

// Binary returns body unchanged unless it decodes as a JSON object, which the
// binary endpoints only send on failure.
func (d Descriptor) Binary(op string, body []byte) ([]byte, error) {
	var envelope map[string]any
	if err := json.Unmarshal(body, &envelope); err != nil || envelope == nil {
		return body, nil
	}
	return nil, d.Failure(op, envelope)
}

// Lookup walks a dotted path through nested JSON objects.
func Lookup(envelope map[string]any, path string) (any, bool) {
	var cur any = envelope
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// stringAt returns the value at path as text, or "" when absent or null.
func stringAt(envelope map[string]any, path string) string {
	v, ok := Lookup(envelope, path)
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case map[string]any, []any:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return fmt.Sprint(t)
	}
}

// UnauthorizedRule matches {"error": "Unauthorized", "error_description": ...}.
func UnauthorizedRule(body map[string]any) (Kind, string, bool) {
	if stringAt(body, "error") != "Unauthorized" {
		return 0, "", false
	}
	return KindUnauthorized, stringAt(body, "error_description"), true
}

// ErrorDescriptionRule matches any body with an "error" field. "Unauthorized"
// maps to KindUnauthorized, everything else to KindGeneric.
func ErrorDescriptionRule(body map[string]any) (Kind, string, bool) {
	v, ok := body["error"]
	if !ok || v == nil {
		return 0, "", false
	}
	errValue := stringAt(body, "error")
	msg := stringAt(body, "error_description")
	if msg == "" {
		msg = errValue
	}
	if errValue == "Unauthorized" {
		return KindUnauthorized, msg, true
	}
	return KindGeneric, msg, true
}

// InvalidRequestRule matches {"Type": "Invalid Request", "Message": ...}.
func InvalidRequestRule(body map[string]any) (Kind, string, bool) {
	if stringAt(body, "Type") != "Invalid Request" {
		return 0, "", false
	}
	return KindInvalidRequest, stringAt(body, "Message"), true
}

// Subtypes maps the "subtype" discriminator of routing-style errors to kinds.
var Subtypes = map[string]Kind{
	"InvalidInputData":      KindInvalidRequest,
	"WaypointNotFound":      KindWaypointNotFound,
	"NoRouteFound":          KindNoRouteFound,
	"LinkIdNotFound":        KindLinkIDNotFound,
	"RouteNotReconstructed": KindRouteNotReconstructed,
}

// SubtypeRule matches {"subtype": ..., "details": ...} through Subtypes.
func SubtypeRule(body map[string]any) (Kind, string, bool) {
	kind, ok := Subtypes[stringAt(body, "subtype")]
	if !ok {
		return 0, "", false
	}
	return kind, stringAt(body, "details"), true
}

// TitleCauseRule matches {"title": ..., "cause": ...} problem bodies.
func TitleCauseRule(body map[string]any) (Kind, string, bool) {
	title := stringAt(body, "title")
	if title == "" {
		return 0, "", false
	}
	if cause := stringAt(body, "cause"); cause != "" {
		return KindGeneric, title + ": " + cause, true
	}
	return KindGeneric, title, true
}
