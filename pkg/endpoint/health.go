package endpoint

import (
	"time"

	"github.com/wayfarer/wayfarer/internal/provider/resilience"
)

// Health reports the state of one service client built without a custom
// HTTPClient.
type Health struct {
	Service       string
	State         string // "closed", "half-open" or "open"
	Requests      uint32
	TotalFailures uint32
	LastSuccessAt *time.Time
	LastFailureAt *time.Time
	LastError     string
}

// Healthy reports a closed circuit breaker.
func (h Health) Healthy() bool {
	return h.State == "closed"
}

// HealthOf returns the health of service. ok is false when no client for the
// service has been created.
func HealthOf(service string) (Health, bool) {
	h := resilience.GlobalRegistry.Health(service)
	if h == nil {
		return Health{}, false
	}
	return toHealth(h), true
}

// Healths returns the health of every service client, sorted by name.
func Healths() []Health {
	all := resilience.GlobalRegistry.All()
	out := make([]Health, 0, len(all))
	for _, h := range all {
		out = append(out, toHealth(h))
	}
	return out
}

func toHealth(h *resilience.Health) Health {
	return Health{
		Service:       h.Name,
		State:         h.CircuitState.String(),
		Requests:      h.Counts.Requests,
		TotalFailures: h.Counts.TotalFailures,
		LastSuccessAt: h.LastSuccessAt,
		LastFailureAt: h.LastFailureAt,
		LastError:     h.LastError,
	}
}
