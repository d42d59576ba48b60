package commands

import (
	"errors"

	"buildconnect/internal/core/domain/model/access"
	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/pkg/guard"
)

var (
	ErrDiscloseDriverContactCommandIsNotConstructed = errors.New(
		"DiscloseDriverContactCommand must be created via NewDiscloseDriverContactCommand constructor",
	)
)

// DiscloseDriverContactCommand represents a request to see the contact
// details of the driver serving a delivery. Every invocation is audited,
// disclosed or not.
type DiscloseDriverContactCommand struct { //nolint:recvcheck //using for validation
	requestID     kernel.UUID
	accessorID    kernel.UUID
	accessorRole  access.Role
	justification string

	guard guard.ConstructorGuard
}

// NewDiscloseDriverContactCommand creates a command to request driver
// contact disclosure. The justification is the accessor's stated purpose
// and may be empty.
func NewDiscloseDriverContactCommand(
	requestID kernel.UUID,
	accessorID kernel.UUID,
	accessorRole access.Role,
	justification string,
) (DiscloseDriverContactCommand, error) {
	cmd := DiscloseDriverContactCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requestID.Validate(),
		accessorID.Validate(),
		accessorRole.Validate(),
	); err != nil {
		return DiscloseDriverContactCommand{}, err
	}

	cmd.requestID = requestID
	cmd.accessorID = accessorID
	cmd.accessorRole = accessorRole
	cmd.justification = justification
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DiscloseDriverContactCommand) Validate() error {
	return c.guard.Validate(ErrDiscloseDriverContactCommandIsNotConstructed)
}

// RequestID returns the delivery request whose driver is being looked up.
func (c DiscloseDriverContactCommand) RequestID() kernel.UUID {
	return c.requestID
}

// AccessorID returns the actor requesting disclosure.
func (c DiscloseDriverContactCommand) AccessorID() kernel.UUID {
	return c.accessorID
}

// AccessorRole returns the actor's role.
func (c DiscloseDriverContactCommand) AccessorRole() access.Role {
	return c.accessorRole
}

// Justification returns the actor's stated purpose for the lookup.
func (c DiscloseDriverContactCommand) Justification() string {
	return c.justification
}
