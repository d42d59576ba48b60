package queries

import (
	"errors"
	"time"

	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/pkg/guard"
)

var (
	ErrGetActiveRequestsQueryIsNotConstructed = errors.New(
		"GetActiveRequestsQuery must be created via NewGetActiveRequestsQuery constructor",
	)
)

// GetActiveRequestsQuery retrieves all delivery requests still in rotation,
// optionally scoped to one builder for dashboard views.
type GetActiveRequestsQuery struct {
	builderID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetActiveRequestsQuery creates a query for non-terminal requests.
// A nil builderID returns every active request.
func NewGetActiveRequestsQuery(builderID *kernel.UUID) (GetActiveRequestsQuery, error) {
	if builderID != nil {
		if err := builderID.Validate(); err != nil {
			return GetActiveRequestsQuery{}, err
		}
	}

	return GetActiveRequestsQuery{
		builderID: builderID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveRequestsQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveRequestsQueryIsNotConstructed)
}

// BuilderID returns the optional builder scope.
func (q GetActiveRequestsQuery) BuilderID() *kernel.UUID {
	return q.builderID
}

// GetActiveRequestsQueryResponse is one active request in the dashboard
// read model.
type GetActiveRequestsQueryResponse struct {
	ID              kernel.UUID
	BuilderID       kernel.UUID
	Material        string
	Quantity        string
	PickupAddress   string
	DeliveryAddress string
	AttemptsUsed    int
	CreatedAt       time.Time
}
