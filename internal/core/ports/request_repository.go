// Package ports defines the contracts between the marketplace core and the
// infrastructure adapters: repositories, the unit of work, and the outbound
// notification and event interfaces. The core depends only on these
// interfaces, enabling dependency inversion and testability.
package ports

import (
	"context"

	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/core/domain/model/request"
)

// DeliveryRequestRepository defines the persistence contract for delivery
// request aggregates.
type DeliveryRequestRepository interface {
	// Add persists a new delivery request aggregate to storage.
	Add(ctx context.Context, aggregate *request.DeliveryRequest) error

	// Update persists changes to an existing delivery request. The stored
	// row's version must match the aggregate's version at load time; on a
	// mismatch Update returns a VersionIsInvalidError and writes nothing.
	// A successful update increments the stored version.
	Update(ctx context.Context, aggregate *request.DeliveryRequest) error

	// Get retrieves a delivery request aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*request.DeliveryRequest, error)

	// GetAllActive retrieves every request still in rotation (Pending status).
	GetAllActive(ctx context.Context) ([]*request.DeliveryRequest, error)
}
