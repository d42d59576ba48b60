// Package notify delivers rotation notifications to builders and providers.
// The current channel is structured log output feeding the SMS gateway relay;
// dispatch is best-effort and never affects rotation state.
package notify

import (
	"context"
	"log/slog"

	"buildconnect/internal/core/ports"
	"buildconnect/internal/observability"
)

var _ ports.NotificationDispatcher = &Dispatcher{}

// Dispatcher implements ports.NotificationDispatcher by emitting structured
// notification records and counting dispatches.
type Dispatcher struct {
	logger *slog.Logger
}

// NewDispatcher creates a notification dispatcher.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{logger: logger}
}

// NotifyProviderContacted tells a provider it is next in rotation.
func (d *Dispatcher) NotifyProviderContacted(_ context.Context, notification ports.ProviderContactNotification) {
	observability.NotificationsTotal.WithLabelValues("provider_contacted").Inc()
	observability.ProvidersContactedTotal.Inc()

	d.logger.Info("provider contact notification",
		"request_id", notification.RequestID.String(),
		"provider_id", notification.ProviderID.String(),
		"provider_phone", notification.ProviderPhone,
		"material", notification.Material,
		"quantity", notification.Quantity,
		"pickup_address", notification.PickupAddress,
		"delivery_address", notification.DeliveryAddress,
		"distance_km", notification.DistanceKm,
		"attempt", notification.Attempt,
		"deadline_minutes", notification.DeadlineMinutes)
}

// NotifyRotationOutcome tells the builder the rotation finished.
func (d *Dispatcher) NotifyRotationOutcome(_ context.Context, notification ports.RotationOutcomeNotification) {
	observability.NotificationsTotal.WithLabelValues("rotation_outcome").Inc()
	observability.RotationOutcomesTotal.WithLabelValues(notification.Outcome).Inc()

	attrs := []any{
		"request_id", notification.RequestID.String(),
		"builder_id", notification.BuilderID.String(),
		"outcome", notification.Outcome,
		"message", notification.Message,
	}
	if notification.ProviderID != nil {
		attrs = append(attrs, "provider_id", notification.ProviderID.String())
	}

	d.logger.Info("rotation outcome notification", attrs...)
}
