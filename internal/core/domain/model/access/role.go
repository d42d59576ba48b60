package access

import (
	"fmt"

	"buildconnect/internal/pkg/errs"
)

// Role is the closed enumeration of marketplace roles. All authorization
// decisions go through HasCapability; no component compares role strings.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota
	// RoleBuilder is a construction builder requesting materials and deliveries.
	RoleBuilder
	// RoleSupplier is a material supplier fulfilling orders.
	RoleSupplier
	// RoleProvider is a delivery provider moving materials.
	RoleProvider
	// RoleAdmin is a marketplace administrator.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "Unknown",
		RoleBuilder:  "Builder",
		RoleSupplier: "Supplier",
		RoleProvider: "Provider",
		RoleAdmin:    "Admin",
	}
}

// RoleFromString parses a role from its wire representation.
func RoleFromString(s string) (Role, error) {
	switch s {
	case "builder":
		return RoleBuilder, nil
	case "supplier":
		return RoleSupplier, nil
	case "provider", "delivery_provider":
		return RoleProvider, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role is invalid",
			fmt.Errorf("%q is not a known role", s))
	}
}

// Validate checks if the Role is one of the defined roles.
func (r Role) Validate() error {
	if r == RoleUnknown {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid",
			fmt.Errorf("%d is not a valid role", r))
	}
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the human-readable name of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// Capability names a discrete permission a role may hold.
type Capability int

const (
	// CapabilityCreateRequest allows creating delivery requests.
	CapabilityCreateRequest Capability = iota + 1
	// CapabilityRespondToRequest allows answering a rotation contact.
	CapabilityRespondToRequest
	// CapabilityCancelRequest allows cancelling an own delivery request.
	CapabilityCancelRequest
	// CapabilityViewRotation allows reading rotation progress.
	CapabilityViewRotation
	// CapabilityRequestDriverContact allows asking the disclosure gate for
	// driver contact data. Holding the capability does not bypass the gate's
	// per-request policy.
	CapabilityRequestDriverContact
	// CapabilityAdministerRequests allows administrative access to any request.
	CapabilityAdministerRequests
)

func roleCapabilities() map[Role]map[Capability]bool {
	return map[Role]map[Capability]bool{
		RoleBuilder: {
			CapabilityCreateRequest:        true,
			CapabilityCancelRequest:        true,
			CapabilityViewRotation:         true,
			CapabilityRequestDriverContact: true,
		},
		RoleSupplier: {
			CapabilityViewRotation:         true,
			CapabilityRequestDriverContact: true,
		},
		RoleProvider: {
			CapabilityRespondToRequest: true,
			CapabilityViewRotation:     true,
		},
		RoleAdmin: {
			CapabilityCreateRequest:        true,
			CapabilityRespondToRequest:     true,
			CapabilityCancelRequest:        true,
			CapabilityViewRotation:         true,
			CapabilityRequestDriverContact: true,
			CapabilityAdministerRequests:   true,
		},
	}
}

// HasCapability reports whether the role holds the given capability.
// It is the single authorization predicate for the marketplace core.
func HasCapability(role Role, capability Capability) bool {
	return roleCapabilities()[role][capability]
}
