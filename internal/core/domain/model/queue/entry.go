package queue

import (
	"errors"
	"fmt"
	"time"

	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/pkg/errs"
)

var (
	// ErrEntryIsNotConstructed is returned when an Entry instance was not created
	// through the NewEntry factory method.
	ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

	// ErrDeadlineIsRequired is returned when contacting an entry without a
	// response deadline.
	ErrDeadlineIsRequired = errs.NewValueIsRequiredError("response deadline")
)

// Entry represents one provider's position and status within one request's
// candidate ordering. Entries are created in a batch when the queue is built
// and mutated only by the rotation controller.
//
// Invariants:
//   - Position is 1-based and unique per request (uniqueness enforced by the
//     persistence schema)
//   - A response (accept/reject/timeout) is only valid while Contacted
//   - Final statuses accept no further transitions
type Entry struct {
	id         kernel.UUID
	requestID  kernel.UUID
	providerID kernel.UUID

	position int
	status   Status

	distanceKm    float64
	priorityScore float64

	contactedAt      *time.Time
	respondedAt      *time.Time
	responseDeadline *time.Time

	isConstructed bool
}

// NewEntry creates a queue entry in Pending status.
//
// Parameters:
//   - id: Unique identifier for the entry
//   - requestID: The delivery request this entry belongs to
//   - providerID: The candidate provider
//   - position: 1-based rank within the request's queue
//   - distanceKm: Distance from the provider to the pickup point
//   - priorityScore: Ranking score (lower ranks first)
func NewEntry(
	id kernel.UUID,
	requestID kernel.UUID,
	providerID kernel.UUID,
	position int,
	distanceKm float64,
	priorityScore float64,
) (*Entry, error) {
	entry := &Entry{
		status:        StatusPending,
		isConstructed: true,
	}

	if err := errors.Join(
		entry.setIDs(id, requestID, providerID),
		entry.setPosition(position),
		entry.setRanking(distanceKm, priorityScore),
	); err != nil {
		return nil, err
	}

	return entry, nil
}

// RestoreEntry reconstructs an Entry from persistence.
func RestoreEntry(
	id kernel.UUID,
	requestID kernel.UUID,
	providerID kernel.UUID,
	position int,
	status Status,
	distanceKm float64,
	priorityScore float64,
	contactedAt *time.Time,
	respondedAt *time.Time,
	responseDeadline *time.Time,
) (*Entry, error) {
	entry, err := NewEntry(id, requestID, providerID, position, distanceKm, priorityScore)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	entry.status = status
	entry.contactedAt = contactedAt
	entry.respondedAt = respondedAt
	entry.responseDeadline = responseDeadline
	return entry, nil
}

// Validate ensures the Entry was properly constructed.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID {
	return e.id
}

// RequestID returns the delivery request this entry belongs to.
func (e *Entry) RequestID() kernel.UUID {
	return e.requestID
}

// ProviderID returns the candidate provider's identifier.
func (e *Entry) ProviderID() kernel.UUID {
	return e.providerID
}

// Position returns the 1-based rank within the request's queue.
func (e *Entry) Position() int {
	return e.position
}

// Status returns the entry's current status.
func (e *Entry) Status() Status {
	return e.status
}

// DistanceKm returns the provider-to-pickup distance computed at ranking time.
func (e *Entry) DistanceKm() float64 {
	return e.distanceKm
}

// PriorityScore returns the ranking score computed at ranking time.
func (e *Entry) PriorityScore() float64 {
	return e.priorityScore
}

// ContactedAt returns when the provider was notified, or nil.
func (e *Entry) ContactedAt() *time.Time {
	return e.contactedAt
}

// RespondedAt returns when the provider responded, or nil.
func (e *Entry) RespondedAt() *time.Time {
	return e.respondedAt
}

// ResponseDeadline returns the response-timeout deadline, or nil before contact.
func (e *Entry) ResponseDeadline() *time.Time {
	return e.responseDeadline
}

// IsDeadlineExpired reports whether a contacted entry's deadline passed at the
// given observation time. Entries without a deadline never expire.
func (e *Entry) IsDeadlineExpired(now time.Time) bool {
	return e.status == StatusContacted &&
		e.responseDeadline != nil &&
		now.After(*e.responseDeadline)
}

// Contact marks the entry as contacted and starts the response clock.
// The deadline must be in the future relative to the contact time.
func (e *Entry) Contact(now time.Time, deadline time.Time) error {
	if deadline.IsZero() {
		return ErrDeadlineIsRequired
	}
	if !deadline.After(now) {
		return errs.NewValueIsInvalidErrorWithCause("response deadline",
			fmt.Errorf("deadline %s is not after contact time %s", deadline, now))
	}

	newStatus, err := e.status.Contact()
	if err != nil {
		return err
	}

	e.status = newStatus
	contactedAt := now.UTC()
	deadlineUTC := deadline.UTC()
	e.contactedAt = &contactedAt
	e.responseDeadline = &deadlineUTC
	return nil
}

// Accept records the provider's acceptance.
func (e *Entry) Accept(now time.Time) error {
	return e.respond(now, Status.Accept)
}

// Reject records the provider's rejection.
func (e *Entry) Reject(now time.Time) error {
	return e.respond(now, Status.Reject)
}

// Timeout records that the provider missed the response deadline.
func (e *Entry) Timeout(now time.Time) error {
	return e.respond(now, Status.Timeout)
}

// Skip voids the entry without a response.
func (e *Entry) Skip() error {
	newStatus, err := e.status.Skip()
	if err != nil {
		return err
	}

	e.status = newStatus
	return nil
}

func (e *Entry) respond(now time.Time, transition func(Status) (Status, error)) error {
	newStatus, err := transition(e.status)
	if err != nil {
		return err
	}

	e.status = newStatus
	respondedAt := now.UTC()
	e.respondedAt = &respondedAt
	return nil
}

func (e *Entry) setIDs(id, requestID, providerID kernel.UUID) error {
	if err := errors.Join(id.Validate(), requestID.Validate(), providerID.Validate()); err != nil {
		return err
	}
	e.id = id
	e.requestID = requestID
	e.providerID = providerID
	return nil
}

func (e *Entry) setPosition(position int) error {
	if position < 1 {
		return errs.NewValueIsInvalidErrorWithCause("position",
			fmt.Errorf("%d is not a valid 1-based queue position", position))
	}
	e.position = position
	return nil
}

func (e *Entry) setRanking(distanceKm, priorityScore float64) error {
	if distanceKm < 0 {
		return errs.NewValueIsInvalidErrorWithCause("distanceKm",
			fmt.Errorf("%f is negative", distanceKm))
	}
	e.distanceKm = distanceKm
	e.priorityScore = priorityScore
	return nil
}
