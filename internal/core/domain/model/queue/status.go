package queue

import (
	"fmt"

	"buildconnect/internal/pkg/errs"
)

// Status represents the lifecycle state of a single queue entry, i.e. one
// provider's position in one request's candidate ordering.
//
// State transitions:
//
//	Pending ──┬──> Contacted ──┬──> Accepted
//	          │                ├──> Rejected
//	          │                └──> Timeout
//	          └──> Skipped (request cancelled or rotation terminated)
//	     Contacted ──> Skipped
//
// Accepted, Rejected, Timeout, and Skipped are final for the entry. At most
// one entry per request may be Contacted at any time; that invariant is
// enforced by the rotation controller, not by this type.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusPending means the provider is queued but has not been contacted.
	StatusPending

	// StatusContacted means the provider has been notified and the response
	// deadline clock is running.
	StatusContacted

	// StatusAccepted means the provider accepted the delivery. Final.
	StatusAccepted

	// StatusRejected means the provider declined the delivery. Final.
	StatusRejected

	// StatusTimeout means the provider failed to respond before the deadline. Final.
	StatusTimeout

	// StatusSkipped means the entry was voided without a response, e.g. the
	// builder cancelled the request or rotation terminated early. Final.
	StatusSkipped
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "Unknown",
		StatusPending:   "Pending",
		StatusContacted: "Contacted",
		StatusAccepted:  "Accepted",
		StatusRejected:  "Rejected",
		StatusTimeout:   "Timeout",
		StatusSkipped:   "Skipped",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:   "Pending",
		StatusContacted: "Contacted",
		StatusAccepted:  "Accepted",
		StatusRejected:  "Rejected",
		StatusTimeout:   "Timeout",
		StatusSkipped:   "Skipped",
	}
}

// Validate checks if the Status value is one of the defined statuses.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid queue entry status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsFinal reports whether the entry can undergo no further transitions.
func (s Status) IsFinal() bool {
	switch s {
	case StatusAccepted, StatusRejected, StatusTimeout, StatusSkipped:
		return true
	default:
		return false
	}
}

// Contact transitions the status to Contacted. Only Pending entries can be contacted.
func (s Status) Contact() (Status, error) {
	if s != StatusPending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to contact", s.String()),
		)
	}

	return StatusContacted, nil
}

// Accept transitions the status to Accepted. Only Contacted entries can respond.
func (s Status) Accept() (Status, error) {
	return s.respond(StatusAccepted)
}

// Reject transitions the status to Rejected. Only Contacted entries can respond.
func (s Status) Reject() (Status, error) {
	return s.respond(StatusRejected)
}

// Timeout transitions the status to Timeout. Only Contacted entries can time out.
func (s Status) Timeout() (Status, error) {
	return s.respond(StatusTimeout)
}

// Skip transitions the status to Skipped. Pending and Contacted entries can be voided.
func (s Status) Skip() (Status, error) {
	if s != StatusPending && s != StatusContacted {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to skip", s.String()),
		)
	}

	return StatusSkipped, nil
}

func (s Status) respond(target Status) (Status, error) {
	if s != StatusContacted {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to record a %s response", s.String(), target.String()),
		)
	}

	return target, nil
}
