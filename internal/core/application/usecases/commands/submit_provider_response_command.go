package commands

import (
	"errors"
	"fmt"

	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/pkg/errs"
	"buildconnect/internal/pkg/guard"
)

var (
	ErrSubmitProviderResponseCommandIsNotConstructed = errors.New(
		"SubmitProviderResponseCommand must be created via NewSubmitProviderResponseCommand constructor",
	)
)

// ResponseAction is a provider's answer to a rotation contact.
type ResponseAction int

const (
	// ActionUnknown represents an invalid or undefined action.
	ActionUnknown ResponseAction = iota
	// ActionAccept means the provider takes the delivery.
	ActionAccept
	// ActionReject means the provider declines the delivery.
	ActionReject
	// ActionTimeout means the provider's response deadline expired.
	// Only the timeout scanner submits this action.
	ActionTimeout
)

func getResponseActionStrings() map[ResponseAction]string {
	return map[ResponseAction]string{
		ActionUnknown: "unknown",
		ActionAccept:  "accept",
		ActionReject:  "reject",
		ActionTimeout: "timeout",
	}
}

// ResponseActionFromString parses an action from its wire representation.
func ResponseActionFromString(s string) (ResponseAction, error) {
	switch s {
	case "accept":
		return ActionAccept, nil
	case "reject":
		return ActionReject, nil
	case "timeout":
		return ActionTimeout, nil
	default:
		return ActionUnknown, errs.NewValueIsInvalidErrorWithCause("action is invalid",
			fmt.Errorf("%q is not a known response action", s))
	}
}

// Validate checks if the ResponseAction is one of the defined actions.
func (a ResponseAction) Validate() error {
	if a == ActionUnknown {
		return errs.NewValueIsInvalidErrorWithCause("action is invalid",
			fmt.Errorf("%d is not a valid response action", a))
	}
	if _, ok := getResponseActionStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("action is invalid",
			fmt.Errorf("%d is not a valid response action", a))
	}
	return nil
}

// String returns the wire representation of the action.
func (a ResponseAction) String() string {
	if str, ok := getResponseActionStrings()[a]; ok {
		return str
	}
	return "unknown"
}

// SubmitProviderResponseCommand represents a provider's answer to a rotation
// contact: accept, reject, or deadline timeout. Optional fields carry the
// provider's quote when accepting.
//
// The handler is idempotent: answers from providers that are not the current
// in-flight contact, or answers arriving after the request went terminal,
// are recorded as suspicious and rejected with a ConflictError.
type SubmitProviderResponseCommand struct { //nolint:recvcheck //using for validation
	requestID              kernel.UUID
	providerID             kernel.UUID
	action                 ResponseAction
	message                string
	estimatedCost          float64
	estimatedDurationHours float64

	guard guard.ConstructorGuard
}

// NewSubmitProviderResponseCommand creates a command carrying a provider's
// response. Message and estimates are optional, zero means not supplied.
func NewSubmitProviderResponseCommand(
	requestID kernel.UUID,
	providerID kernel.UUID,
	action ResponseAction,
	message string,
	estimatedCost float64,
	estimatedDurationHours float64,
) (SubmitProviderResponseCommand, error) {
	cmd := SubmitProviderResponseCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIDs(requestID, providerID),
		cmd.setAction(action),
		cmd.setEstimates(estimatedCost, estimatedDurationHours),
	); err != nil {
		return SubmitProviderResponseCommand{}, err
	}

	cmd.message = message
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitProviderResponseCommand) Validate() error {
	return c.guard.Validate(ErrSubmitProviderResponseCommandIsNotConstructed)
}

// RequestID returns the delivery request being answered.
func (c SubmitProviderResponseCommand) RequestID() kernel.UUID {
	return c.requestID
}

// ProviderID returns the responding provider.
func (c SubmitProviderResponseCommand) ProviderID() kernel.UUID {
	return c.providerID
}

// Action returns the response action.
func (c SubmitProviderResponseCommand) Action() ResponseAction {
	return c.action
}

// Message returns the provider's optional free-text note.
func (c SubmitProviderResponseCommand) Message() string {
	return c.message
}

// EstimatedCost returns the provider's quote in KES, zero when not supplied.
func (c SubmitProviderResponseCommand) EstimatedCost() float64 {
	return c.estimatedCost
}

// EstimatedDurationHours returns the quoted duration, zero when not supplied.
func (c SubmitProviderResponseCommand) EstimatedDurationHours() float64 {
	return c.estimatedDurationHours
}

func (c *SubmitProviderResponseCommand) setIDs(requestID, providerID kernel.UUID) error {
	if err := errors.Join(requestID.Validate(), providerID.Validate()); err != nil {
		return err
	}

	c.requestID = requestID
	c.providerID = providerID
	return nil
}

func (c *SubmitProviderResponseCommand) setAction(action ResponseAction) error {
	if err := action.Validate(); err != nil {
		return err
	}

	c.action = action
	return nil
}

func (c *SubmitProviderResponseCommand) setEstimates(cost, durationHours float64) error {
	if cost < 0 {
		return errs.NewValueIsOutOfRangeError("estimatedCost", cost, 0, nil)
	}
	if durationHours < 0 {
		return errs.NewValueIsOutOfRangeError("estimatedDurationHours", durationHours, 0, nil)
	}

	c.estimatedCost = cost
	c.estimatedDurationHours = durationHours
	return nil
}
