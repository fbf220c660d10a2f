// Package metrics holds the Prometheus instruments for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	StudentsRegistered prometheus.Counter
	LoginsSucceeded    prometheus.Counter
	LoginsFailed       prometheus.Counter
	CoursesAssigned    prometheus.Counter
	RequestDuration    *prometheus.HistogramVec
}

// New creates all metrics and registers them on the given registerer.
// Passing prometheus.NewRegistry() keeps tests isolated from the default
// registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		StudentsRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "campusgate_students_registered_total",
			Help: "Total number of students registered",
		}),
		LoginsSucceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "campusgate_logins_succeeded_total",
			Help: "Total number of successful logins",
		}),
		LoginsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "campusgate_logins_failed_total",
			Help: "Total number of failed login attempts",
		}),
		CoursesAssigned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "campusgate_courses_assigned_total",
			Help: "Total number of course assignments",
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "campusgate_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status class",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route", "status"}),
	}

	reg.MustRegister(
		m.StudentsRegistered,
		m.LoginsSucceeded,
		m.LoginsFailed,
		m.CoursesAssigned,
		m.RequestDuration,
	)

	return m
}

// ObserveRequest records one HTTP request observation.
func (m *Metrics) ObserveRequest(route, status string, seconds float64) {
	m.RequestDuration.WithLabelValues(route, status).Observe(seconds)
}
