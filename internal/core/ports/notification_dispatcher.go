package ports

import (
	"context"

	"buildconnect/internal/core/domain/model/kernel"
)

// ProviderContactNotification carries everything a channel needs to reach a
// provider about a delivery opportunity.
type ProviderContactNotification struct {
	RequestID       kernel.UUID
	ProviderID      kernel.UUID
	ProviderPhone   string
	Material        string
	Quantity        string
	PickupAddress   string
	DeliveryAddress string
	DistanceKm      float64
	Attempt         int
	DeadlineMinutes int
}

// RotationOutcomeNotification informs the builder about a terminal rotation
// outcome (accepted, failed, or no providers available).
type RotationOutcomeNotification struct {
	RequestID  kernel.UUID
	BuilderID  kernel.UUID
	ProviderID *kernel.UUID
	Outcome    string
	Message    string
}

// NotificationDispatcher sends rotation notifications over external channels
// (SMS, push). Dispatch is best-effort: implementations log and absorb
// channel failures, rotation state never depends on delivery of a
// notification. Called after the owning transaction commits.
type NotificationDispatcher interface {
	// NotifyProviderContacted tells a provider it is next in rotation.
	NotifyProviderContacted(ctx context.Context, notification ProviderContactNotification)

	// NotifyRotationOutcome tells the builder the rotation finished.
	NotifyRotationOutcome(ctx context.Context, notification RotationOutcomeNotification)
}
