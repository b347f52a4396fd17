// Package endpoint holds the pieces every service client is assembled from:
// shared configuration, the query builder, the response classifier and the
// HTTP caller.
package endpoint

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"time"
)

// Params are the flattened query parameters of one call. Nil values and nil
// pointers are dropped by BuildURL.
type Params map[string]any

// Set stores v under key and returns p for chaining.
func (p Params) Set(key string, v any) Params {
	p[key] = v
	return p
}

// SetIf stores v under key only when ok is true.
func (p Params) SetIf(ok bool, key string, v any) Params {
	if ok {
		p[key] = v
	}
	return p
}

// BuildURL merges params into the query string of base. Keys already present
// on base are replaced. Output keys are sorted, so equal inputs always produce
// the same URL.
func BuildURL(base string, params Params) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing base url %q: %w", base, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("base url %q must be absolute", base)
	}

	query := u.Query()
	for key, raw := range params {
		values, ok := formatValue(raw)
		if !ok {
			continue
		}
		query.Del(key)
		for _, v := range values {
			query.Add(key, v)
		}
	}

	u.RawQuery = query.Encode()
	return u.String(), nil
}

// formatValue renders a parameter value. It reports false for absent values.
func formatValue(raw any) ([]string, bool) {
	if raw == nil {
		return nil, false
	}

	rv := reflect.ValueOf(raw)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	v := rv.Interface()

	switch t := v.(type) {
	case string:
		return []string{t}, true
	case []string:
		if t == nil {
			return nil, false
		}
		return t, true
	case bool:
		return []string{strconv.FormatBool(t)}, true
	case int:
		return []string{strconv.Itoa(t)}, true
	case int64:
		return []string{strconv.FormatInt(t, 10)}, true
	case uint64:
		return []string{strconv.FormatUint(t, 10)}, true
	case float64:
		return []string{strconv.FormatFloat(t, 'f', -1, 64)}, true
	case float32:
		return []string{strconv.FormatFloat(float64(t), 'f', -1, 32)}, true
	case time.Time:
		return []string{t.Format(time.RFC3339)}, true
	case fmt.Stringer:
		return []string{t.String()}, true
	}

	switch rv.Kind() {
	case reflect.String:
		return []string{rv.String()}, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return []string{strconv.FormatInt(rv.Int(), 10)}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return []string{strconv.FormatUint(rv.Uint(), 10)}, true
	}
	return []string{fmt.Sprint(v)}, true
}
