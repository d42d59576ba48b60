package ports

import (
	"context"
	"time"

	"buildconnect/internal/core/domain/model/kernel"
)

// Rotation event types published to the message broker.
const (
	EventRequestCreated      = "delivery_request.created"
	EventProviderContacted   = "delivery_request.provider_contacted"
	EventProviderResponded   = "delivery_request.provider_responded"
	EventRequestAccepted     = "delivery_request.accepted"
	EventRotationFailed      = "delivery_request.rotation_failed"
	EventNoProviders         = "delivery_request.no_providers_available"
	EventRequestCancelled    = "delivery_request.cancelled"
	EventDriverContactViewed = "delivery_request.driver_contact_viewed"
)

// RotationEvent is the integration event envelope emitted on every rotation
// state change. Payload keys follow the communication record metadata keys.
type RotationEvent struct {
	EventID    kernel.UUID    `json:"event_id"`
	EventType  string         `json:"event_type"`
	RequestID  kernel.UUID    `json:"request_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// EventPublisher publishes rotation events for downstream consumers
// (analytics, provider apps). Publishing is best-effort and happens after
// the owning transaction commits.
type EventPublisher interface {
	// Publish sends a rotation event to the broker, keyed by request ID.
	Publish(ctx context.Context, event RotationEvent) error
}
