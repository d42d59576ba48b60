package request

import (
	"fmt"

	"buildconnect/internal/pkg/errs"
)

// Phase represents the physical delivery phase of a request after a provider
// accepted it. The phase is advanced by the delivery-tracking collaborators,
// never by the rotation controller, which treats it as read-only input to the
// driver-contact disclosure gate.
type Phase int

const (
	// PhaseUnknown represents an invalid or undefined phase.
	PhaseUnknown Phase = iota

	// PhasePending means the delivery has not started moving yet.
	PhasePending

	// PhaseInProgress means the provider is en route to the pickup address.
	PhaseInProgress

	// PhaseOutForDelivery means the materials are on the vehicle heading to
	// the delivery address.
	PhaseOutForDelivery

	// PhaseDelivered means the delivery completed.
	PhaseDelivered
)

func getPhaseStrings() map[Phase]string {
	return map[Phase]string{
		PhaseUnknown:        "Unknown",
		PhasePending:        "Pending",
		PhaseInProgress:     "InProgress",
		PhaseOutForDelivery: "OutForDelivery",
		PhaseDelivered:      "Delivered",
	}
}

// Validate checks if the Phase value is one of the defined phases.
func (p Phase) Validate() error {
	if p == PhaseUnknown {
		return errs.NewValueIsInvalidErrorWithCause("phase is invalid",
			fmt.Errorf("%d is not a valid phase", p))
	}
	if _, ok := getPhaseStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("phase is invalid",
			fmt.Errorf("%d is not a valid phase", p))
	}
	return nil
}

// String returns the human-readable name of the phase.
func (p Phase) String() string {
	if str, ok := getPhaseStrings()[p]; ok {
		return str
	}
	return "Unknown"
}

// IsActiveDelivery reports whether the delivery is actively moving.
// Driver contact may only be disclosed during an active phase.
func (p Phase) IsActiveDelivery() bool {
	return p == PhaseInProgress || p == PhaseOutForDelivery
}
