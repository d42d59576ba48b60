package ports

import (
	"context"

	"buildconnect/internal/core/domain/model/kernel"
)

// DriverContact is the contact card disclosed through the access gate.
type DriverContact struct {
	ProviderID   kernel.UUID
	ProviderName string
	DriverName   string
	Phone        string
	VehiclePlate string
}

// ContactResolver looks up driver contact details for the provider serving a
// request. Only the disclosure gate may call it, and only after the access
// policy allowed the disclosure.
type ContactResolver interface {
	// Resolve returns the driver contact card for the given provider.
	Resolve(ctx context.Context, providerID kernel.UUID) (DriverContact, error)
}
