// Package observability exposes Prometheus metrics for the rotation
// controller. Counters are registered on the default registry and served
// from the /metrics endpoint.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RotationsStartedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "buildconnect", Name: "rotations_started_total",
		Help: "Total delivery requests that entered rotation"})
	ProvidersContactedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "buildconnect", Name: "providers_contacted_total",
		Help: "Total provider contact attempts across all rotations"})
	RotationOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "buildconnect", Name: "rotation_outcomes_total",
			Help: "Terminal rotation outcomes by status"},
		[]string{"outcome"},
	)
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "buildconnect", Name: "notifications_total",
			Help: "Notifications dispatched by kind"},
		[]string{"kind"},
	)
	ContactDisclosuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "buildconnect", Name: "contact_disclosures_total",
			Help: "Driver contact disclosure decisions by result"},
		[]string{"result"},
	)
	TimeoutScansTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "buildconnect", Name: "timeout_scans_total",
		Help: "Completed deadline scan job runs"})
	TimeoutsProcessedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "buildconnect", Name: "timeouts_processed_total",
		Help: "Expired provider contacts processed by the deadline scan"})
)
