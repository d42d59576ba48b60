package request

import (
	"fmt"

	"buildconnect/internal/pkg/errs"
)

// Status represents the rotation lifecycle state of a delivery request.
// It implements a state machine with defined transitions so a request always
// follows the rotation workflow and terminal states stay terminal.
//
// State transitions:
//
//	Pending ──┬──> Accepted
//	          ├──> RotationFailed        (attempt budget exhausted)
//	          ├──> NoProvidersAvailable  (candidate queue exhausted)
//	          └──> Cancelled             (builder cancels before acceptance)
//
// A provider rejection or timeout does not change the request status by
// itself: the request stays Pending while the rotation controller contacts
// the next candidate, and only lands in a terminal status when no further
// candidate can be contacted.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending means rotation is underway: the request is waiting for a
	// contacted provider to respond, or for the first candidate to be contacted.
	StatusPending

	// StatusAccepted means a provider accepted the delivery. Terminal.
	StatusAccepted

	// StatusRotationFailed means the maximum rotation attempts were exhausted
	// without an acceptance. Terminal.
	StatusRotationFailed

	// StatusNoProvidersAvailable means the candidate queue ran dry before the
	// attempt budget did. Terminal.
	StatusNoProvidersAvailable

	// StatusCancelled means the builder cancelled the request before any
	// provider accepted it. Terminal.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:              "Unknown",
		StatusPending:              "Pending",
		StatusAccepted:             "Accepted",
		StatusRotationFailed:       "RotationFailed",
		StatusNoProvidersAvailable: "NoProvidersAvailable",
		StatusCancelled:            "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:              "Pending",
		StatusAccepted:             "Accepted",
		StatusRotationFailed:       "RotationFailed",
		StatusNoProvidersAvailable: "NoProvidersAvailable",
		StatusCancelled:            "Cancelled",
	}
}

// Validate checks if the Status value is one of the defined statuses.
// StatusUnknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status permits no further rotation activity.
// Accepted, RotationFailed, NoProvidersAvailable, and Cancelled are terminal.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusAccepted, StatusRotationFailed, StatusNoProvidersAvailable, StatusCancelled:
		return true
	default:
		return false
	}
}

// Accept transitions the status to Accepted.
//
// Valid transitions:
//   - Pending -> Accepted (contacted provider accepted the delivery)
//
// Returns (0, error) if the request is not in rotation.
func (s Status) Accept() (Status, error) {
	if s != StatusPending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to accept", s.String()),
		)
	}

	return StatusAccepted, nil
}

// FailRotation transitions the status to RotationFailed.
//
// Valid transitions:
//   - Pending -> RotationFailed (attempt budget exhausted)
func (s Status) FailRotation() (Status, error) {
	if s != StatusPending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to fail rotation", s.String()),
		)
	}

	return StatusRotationFailed, nil
}

// ExhaustProviders transitions the status to NoProvidersAvailable.
//
// Valid transitions:
//   - Pending -> NoProvidersAvailable (no eligible candidate left)
func (s Status) ExhaustProviders() (Status, error) {
	if s != StatusPending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to exhaust providers", s.String()),
		)
	}

	return StatusNoProvidersAvailable, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Pending -> Cancelled (builder cancels before acceptance)
//
// Accepted requests cannot be cancelled through the rotation controller.
func (s Status) Cancel() (Status, error) {
	if s != StatusPending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}

	return StatusCancelled, nil
}
