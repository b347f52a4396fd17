package endpoint

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTimeout bounds each HTTP attempt when Config.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// HTTPDoer is an interface for executing HTTP requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config is the immutable configuration shared by every service client.
type Config struct {
	// APIKey is sent as the apiKey query parameter on key-authenticated calls.
	APIKey string

	// BaseURL replaces the service's default scheme and host (optional).
	BaseURL string

	// Timeout bounds each HTTP attempt (optional, defaults to 10s).
	Timeout time.Duration

	// MaxRetries is the number of retries on 5xx and network errors
	// (optional, defaults to 3). Ignored when HTTPClient is set.
	MaxRetries uint64

	// DisableRetries sends every request once. Ignored when HTTPClient is set.
	DisableRetries bool

	// RequestsPerSecond limits outbound calls per service client. Zero
	// disables the limit. Ignored when HTTPClient is set.
	RequestsPerSecond float64

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient HTTPDoer

	// Logger for client operations.
	Logger zerolog.Logger

	// TracerProvider and MeterProvider receive client spans and request
	// metrics. Nil uses the global providers. Ignored when HTTPClient is set.
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
}

// ConfigFromEnv builds a Config from WAYFARER_* environment variables.
// Unparsable values fall back to their defaults with a warning on stderr.
func ConfigFromEnv() Config {
	return configFromEnv(zerolog.New(os.Stderr).With().Timestamp().Logger())
}

func configFromEnv(logger zerolog.Logger) Config {
	timeout := parseEnv(logger, "WAYFARER_TIMEOUT", "10s", time.ParseDuration)
	retries := parseEnv(logger, "WAYFARER_MAX_RETRIES", "3", func(s string) (uint64, error) {
		return strconv.ParseUint(s, 10, 64)
	})
	rps := parseEnv(logger, "WAYFARER_RATE_LIMIT", "0", func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})

	return Config{
		APIKey:            os.Getenv("WAYFARER_API_KEY"),
		BaseURL:           os.Getenv("WAYFARER_BASE_URL"),
		Timeout:           timeout,
		MaxRetries:        retries,
		DisableRetries:    os.Getenv("WAYFARER_DISABLE_RETRIES") == "true",
		RequestsPerSecond: rps,
	}
}

// parseEnv parses key with parse, using defaultValue when the variable is
// unset or invalid. defaultValue must parse.
func parseEnv[T any](logger zerolog.Logger, key, defaultValue string, parse func(string) (T, error)) T {
	value, err := parse(getEnvOrDefault(key, defaultValue))
	if err != nil {
		logger.Warn().
			Err(err).
			Str("key", key).
			Str("default", defaultValue).
			Msg("invalid environment value, using default")
		value, _ = parse(defaultValue)
	}
	return value
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
