package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	storeStatements = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "frontdesk",
			Name:      "store_statements_total",
			Help:      "SQL statements executed against the store by verb and outcome.",
		},
		[]string{"verb", "outcome"},
	)

	managerOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "frontdesk",
			Name:      "manager_operations_total",
			Help:      "Entity manager operations by entity and operation.",
		},
		[]string{"entity", "op"},
	)

	logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "frontdesk",
			Name:      "login_attempts_total",
			Help:      "Login attempts by outcome.",
		},
		[]string{"outcome"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(storeStatements, managerOps, logins)
	})
}

// IncStatement increments the store statement counter.
func IncStatement(verb, outcome string) {
	storeStatements.WithLabelValues(verb, outcome).Inc()
}

// IncOperation increments the manager operation counter.
func IncOperation(entity, op string) {
	managerOps.WithLabelValues(entity, op).Inc()
}

// IncLogin increments the login attempt counter.
func IncLogin(outcome string) {
	logins.WithLabelValues(outcome).Inc()
}
