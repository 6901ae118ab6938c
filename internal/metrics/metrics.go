package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	Interactions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clabot",
			Subsystem: "interactions",
			Name:      "handled_total",
			Help:      "Total number of command and button interactions handled.",
		},
		[]string{"kind", "name"},
	)

	PointMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clabot",
			Subsystem: "ledger",
			Name:      "point_mutations_total",
			Help:      "Total number of point ledger mutations.",
		},
		[]string{"direction"},
	)

	AutoBans = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clabot",
			Subsystem: "ledger",
			Name:      "autobans_total",
			Help:      "Total number of automatic ban attempts.",
		},
		[]string{"outcome"},
	)

	OrdersCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clabot",
			Subsystem: "orders",
			Name:      "created_total",
			Help:      "Total number of order sessions created.",
		},
		[]string{"type"},
	)

	OrdersCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "clabot",
			Subsystem: "orders",
			Name:      "completed_total",
			Help:      "Total number of order sessions completed.",
		},
	)
)

func init() {
	Registry.MustRegister(
		Interactions,
		PointMutations,
		AutoBans,
		OrdersCreated,
		OrdersCompleted,
	)
}

// Handler serves the registry for the /metrics route.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
