// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/pkg/guard"
)

var (
	ErrGetRotationStatusQueryIsNotConstructed = errors.New(
		"GetRotationStatusQuery must be created via NewGetRotationStatusQuery constructor",
	)
)

// GetRotationStatusQuery retrieves a delivery request's rotation progress:
// the request snapshot plus its ranked provider queue.
//
// Example:
//
//	query, err := NewGetRotationStatusQuery(requestID)
//	if err != nil {
//	    return err
//	}
//	status, err := handler.Handle(ctx, query)
type GetRotationStatusQuery struct {
	requestID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetRotationStatusQuery creates a query for a request's rotation status.
func NewGetRotationStatusQuery(requestID kernel.UUID) (GetRotationStatusQuery, error) {
	if err := requestID.Validate(); err != nil {
		return GetRotationStatusQuery{}, err
	}

	return GetRotationStatusQuery{
		requestID: requestID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRotationStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetRotationStatusQueryIsNotConstructed)
}

// RequestID returns the request being inspected.
func (q GetRotationStatusQuery) RequestID() kernel.UUID {
	return q.requestID
}

// QueueEntryResponse is one ranked provider in the rotation queue read model.
type QueueEntryResponse struct {
	ProviderID       kernel.UUID
	Position         int
	Status           string
	DistanceKm       float64
	PriorityScore    float64
	ContactedAt      *time.Time
	RespondedAt      *time.Time
	ResponseDeadline *time.Time
}

// GetRotationStatusQueryResponse is the rotation progress read model.
type GetRotationStatusQueryResponse struct {
	ID                  kernel.UUID
	BuilderID           kernel.UUID
	Status              string
	Phase               string
	Material            string
	Quantity            string
	PickupAddress       string
	DeliveryAddress     string
	AttemptsUsed        int
	MaxRotationAttempts int
	RadiusKm            float64
	CreatedAt           time.Time
	CompletedAt         *time.Time
	Queue               []QueueEntryResponse
}
