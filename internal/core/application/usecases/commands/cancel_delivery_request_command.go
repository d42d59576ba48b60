package commands

import (
	"errors"

	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/pkg/guard"
)

var (
	ErrCancelDeliveryRequestCommandIsNotConstructed = errors.New(
		"CancelDeliveryRequestCommand must be created via NewCancelDeliveryRequestCommand constructor",
	)
)

// CancelDeliveryRequestCommand represents a builder's request to withdraw a
// delivery request that is still in rotation.
type CancelDeliveryRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	builderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelDeliveryRequestCommand creates a command to cancel a delivery
// request. The builder ID is checked against the request's owner by the
// handler.
func NewCancelDeliveryRequestCommand(requestID, builderID kernel.UUID) (CancelDeliveryRequestCommand, error) {
	cmd := CancelDeliveryRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(requestID.Validate(), builderID.Validate()); err != nil {
		return CancelDeliveryRequestCommand{}, err
	}

	cmd.requestID = requestID
	cmd.builderID = builderID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelDeliveryRequestCommand) Validate() error {
	return c.guard.Validate(ErrCancelDeliveryRequestCommandIsNotConstructed)
}

// RequestID returns the request to cancel.
func (c CancelDeliveryRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// BuilderID returns the actor requesting the cancellation.
func (c CancelDeliveryRequestCommand) BuilderID() kernel.UUID {
	return c.builderID
}
