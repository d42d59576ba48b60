package access

import (
	"errors"
	"time"

	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/pkg/errs"
)

var ErrLogEntryIsNotConstructed = errs.NewValueIsRequiredError(
	"log entry is not constructed, use constructor to create it")

// LogEntry is an immutable audit record of a single driver contact
// disclosure decision. Every request through the gate produces exactly
// one entry, whether the contact was disclosed or withheld.
type LogEntry struct {
	id            kernel.UUID
	requestID     kernel.UUID
	actorID       kernel.UUID
	actorRole     Role
	allowed       bool
	reason        string
	justification string
	occurredAt    time.Time

	isConstructed bool
}

// NewLogEntry records a disclosure decision for the given actor and request.
// The reason is required so the audit trail explains every outcome; the
// justification is the actor's own stated purpose and may be empty.
func NewLogEntry(id kernel.UUID, requestID kernel.UUID, actorID kernel.UUID,
	actorRole Role, allowed bool, reason string, justification string) (LogEntry, error) {
	entry := LogEntry{
		id:            id,
		requestID:     requestID,
		actorID:       actorID,
		actorRole:     actorRole,
		allowed:       allowed,
		reason:        reason,
		justification: justification,
		occurredAt:    time.Now().UTC(),

		isConstructed: true,
	}

	if err := entry.Validate(); err != nil {
		return LogEntry{}, err
	}
	return entry, nil
}

// RestoreLogEntry creates a LogEntry from stored data without business checks
// beyond structural validity.
func RestoreLogEntry(id kernel.UUID, requestID kernel.UUID, actorID kernel.UUID,
	actorRole Role, allowed bool, reason string, justification string,
	occurredAt time.Time) (LogEntry, error) {
	entry := LogEntry{
		id:            id,
		requestID:     requestID,
		actorID:       actorID,
		actorRole:     actorRole,
		allowed:       allowed,
		reason:        reason,
		justification: justification,
		occurredAt:    occurredAt,

		isConstructed: true,
	}

	if err := entry.Validate(); err != nil {
		return LogEntry{}, err
	}
	return entry, nil
}

// Validate checks that the LogEntry is correctly constructed.
func (e *LogEntry) Validate() error {
	if !e.isConstructed {
		return ErrLogEntryIsNotConstructed
	}

	return errors.Join(
		e.id.Validate(),
		e.requestID.Validate(),
		e.actorID.Validate(),
		e.actorRole.Validate(),
		func() error {
			if e.reason == "" {
				return errs.NewValueIsRequiredError("reason")
			}
			return nil
		}(),
	)
}

func (e *LogEntry) ID() kernel.UUID         { return e.id }
func (e *LogEntry) RequestID() kernel.UUID  { return e.requestID }
func (e *LogEntry) ActorID() kernel.UUID    { return e.actorID }
func (e *LogEntry) ActorRole() Role         { return e.actorRole }
func (e *LogEntry) Allowed() bool           { return e.allowed }
func (e *LogEntry) Reason() string          { return e.reason }
func (e *LogEntry) Justification() string   { return e.justification }
func (e *LogEntry) OccurredAt() time.Time   { return e.occurredAt }
