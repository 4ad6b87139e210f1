// Package metrics holds the service's Prometheus collectors.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ScreenVisits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ussd_screen_visits_total",
			Help: "Count of screen entries",
		},
		[]string{"screen"},
	)
	InvalidSelections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ussd_invalid_selections_total",
			Help: "Count of keypresses rejected by a screen",
		},
		[]string{"screen"},
	)
	DialogsEnded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ussd_dialogs_ended_total",
			Help: "Count of ended dialogs by outcome",
		},
		[]string{"outcome"},
	)
)

func Init() {
	prometheus.MustRegister(
		ScreenVisits,
		InvalidSelections,
		DialogsEnded,
	)
}

// RegisterActiveSessions exposes a live-session gauge fed by the given
// counter, typically the session store's List.
func RegisterActiveSessions(count func() int) {
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "ussd_active_sessions",
			Help: "Current number of live sessions",
		},
		func() float64 { return float64(count()) },
	))
}
