package geocoder

// DefaultLang is the response language used when none is given.
const DefaultLang = "en-US"

// Option configures one geocoding call.
type Option func(*options)

type options struct {
	lang   string
	limit  int
	radius int
}

// WithLang sets the response language, e.g. "de-DE".
func WithLang(lang string) Option {
	return func(o *options) {
		o.lang = lang
	}
}

// WithLimit caps the number of results.
func WithLimit(n int) Option {
	return func(o *options) {
		o.limit = n
	}
}

// WithRadius sets the autosuggest search radius in meters.
func WithRadius(meters int) Option {
	return func(o *options) {
		o.radius = meters
	}
}

func apply(defaults options, opts []Option) options {
	o := defaults
	for _, opt := range opts {
		opt(&o)
	}
	if o.lang == "" {
		o.lang = DefaultLang
	}
	return o
}

// limitParam drops a non-positive limit so the service default applies.
func (o options) limitParam() any {
	if o.limit <= 0 {
		return nil
	}
	return o.limit
}
