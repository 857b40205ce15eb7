// Package metrics holds Prometheus instruments that are used across the
// API.  All collectors are registered with the global registry, so
// importing this package in cmd/api is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Requests served, labelled by method and status code.",
		},
		[]string{"method", "code"})

	LoginSuccessTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "login_success_total",
			Help: "Cumulative number of successful logins.",
		})

	LoginFailureTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "login_failure_total",
			Help: "Cumulative number of rejected login attempts.",
		})

	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_sessions",
			Help: "Number of live server-side sessions.",
		})
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		LoginSuccessTotal,
		LoginFailureTotal,
		ActiveSessions,
	)
}
