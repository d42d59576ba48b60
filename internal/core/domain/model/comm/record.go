// Package comm provides the CommunicationRecord entity: the append-only
// message feed attached to each delivery request. Records double as the
// user-visible activity feed and the rotation audit trail; once written they
// are never mutated.
package comm

import (
	"errors"
	"fmt"
	"time"

	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/pkg/errs"
)

// SenderType identifies who authored a communication record.
type SenderType int

const (
	// SenderUnknown represents an invalid or undefined sender type.
	SenderUnknown SenderType = iota
	// SenderSystem marks records written by the rotation controller itself.
	SenderSystem
	// SenderBuilder marks records written by the requesting builder.
	SenderBuilder
	// SenderProvider marks records written by a delivery provider.
	SenderProvider
)

func getSenderTypeStrings() map[SenderType]string {
	return map[SenderType]string{
		SenderUnknown:  "Unknown",
		SenderSystem:   "System",
		SenderBuilder:  "Builder",
		SenderProvider: "Provider",
	}
}

// Validate checks if the SenderType is one of the defined senders.
func (s SenderType) Validate() error {
	if s == SenderUnknown {
		return errs.NewValueIsInvalidErrorWithCause("sender type is invalid",
			fmt.Errorf("%d is not a valid sender type", s))
	}
	if _, ok := getSenderTypeStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("sender type is invalid",
			fmt.Errorf("%d is not a valid sender type", s))
	}
	return nil
}

// String returns the human-readable name of the sender type.
func (s SenderType) String() string {
	if str, ok := getSenderTypeStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Message type tags written by the rotation controller. Providers and builders
// may write free-form "message" records through the UI collaborators.
const (
	TypeQueueBuilt        = "queue_built"
	TypeProviderContacted = "provider_contacted"
	TypeResponseRecorded  = "response_recorded"
	TypeDuplicateResponse = "duplicate_response"
	TypeRequestAccepted   = "request_accepted"
	TypeRotationFailed    = "rotation_failed"
	TypeNoProviders       = "no_providers_available"
	TypeRequestCancelled  = "request_cancelled"
	TypeMessage           = "message"
)

// ErrRecordIsNotConstructed is returned when using an improperly initialized Record.
var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord constructor")

// systemSenderID is the well-known actor ID for records the rotation
// controller writes on its own behalf.
const systemSenderID = "00000000-0000-0000-0000-000000000001"

// SystemSenderID returns the well-known sender identifier used for
// SenderSystem records.
func SystemSenderID() kernel.UUID {
	id, err := kernel.UUIDFromString(systemSenderID)
	if err != nil {
		panic(err)
	}
	return id
}

// Metadata carries the structured payload attached to a record. Keys the
// rotation controller writes: distance_km, priority_score, attempt,
// used_fallback_coords, provider_id.
type Metadata map[string]any

// Record is an append-only communication entry tied to a delivery request.
type Record struct {
	id          kernel.UUID
	requestID   kernel.UUID
	senderID    kernel.UUID
	senderType  SenderType
	messageType string
	content     string
	metadata    Metadata
	createdAt   time.Time

	isConstructed bool
}

// NewRecord creates a communication record. The metadata map is copied so the
// record stays immutable after construction.
func NewRecord(
	id kernel.UUID,
	requestID kernel.UUID,
	senderID kernel.UUID,
	senderType SenderType,
	messageType string,
	content string,
	metadata Metadata,
) (*Record, error) {
	if err := errors.Join(id.Validate(), requestID.Validate(), senderID.Validate()); err != nil {
		return nil, err
	}
	if err := senderType.Validate(); err != nil {
		return nil, err
	}
	if messageType == "" {
		return nil, errs.NewValueIsRequiredError("message type")
	}

	copied := make(Metadata, len(metadata))
	for k, v := range metadata {
		copied[k] = v
	}

	return &Record{
		id:            id,
		requestID:     requestID,
		senderID:      senderID,
		senderType:    senderType,
		messageType:   messageType,
		content:       content,
		metadata:      copied,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreRecord reconstructs a Record from persistence.
func RestoreRecord(
	id kernel.UUID,
	requestID kernel.UUID,
	senderID kernel.UUID,
	senderType SenderType,
	messageType string,
	content string,
	metadata Metadata,
	createdAt time.Time,
) (*Record, error) {
	record, err := NewRecord(id, requestID, senderID, senderType, messageType, content, metadata)
	if err != nil {
		return nil, err
	}

	record.createdAt = createdAt
	return record, nil
}

// Validate ensures the Record was properly constructed.
func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

// ID returns the record's unique identifier.
func (r *Record) ID() kernel.UUID {
	return r.id
}

// RequestID returns the delivery request the record belongs to.
func (r *Record) RequestID() kernel.UUID {
	return r.requestID
}

// SenderID returns the author's identifier.
func (r *Record) SenderID() kernel.UUID {
	return r.senderID
}

// SenderType returns who authored the record.
func (r *Record) SenderType() SenderType {
	return r.senderType
}

// MessageType returns the record's type tag.
func (r *Record) MessageType() string {
	return r.messageType
}

// Content returns the free-text message content.
func (r *Record) Content() string {
	return r.content
}

// Metadata returns a copy of the structured payload.
func (r *Record) Metadata() Metadata {
	copied := make(Metadata, len(r.metadata))
	for k, v := range r.metadata {
		copied[k] = v
	}
	return copied
}

// CreatedAt returns the record's creation timestamp.
func (r *Record) CreatedAt() time.Time {
	return r.createdAt
}
