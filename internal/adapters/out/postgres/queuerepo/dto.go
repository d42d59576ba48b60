// Package queuerepo provides data transfer objects and mapping functions for
// rotation queue persistence. Queue entries belong to a delivery request and
// record each ranked provider's contact lifecycle.
package queuerepo

import (
	"time"

	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/core/domain/model/queue"

	"github.com/google/uuid"
)

// EntryDTO represents the database structure for persisting rotation queue
// entries. Position is 1-based and unique within a request.
type EntryDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestID        uuid.UUID `gorm:"type:uuid;index"`
	ProviderID       uuid.UUID `gorm:"type:uuid;index"`
	Position         int
	Status           int `gorm:"index"`
	DistanceKm       float64
	PriorityScore    float64
	ContactedAt      *time.Time
	RespondedAt      *time.Time
	ResponseDeadline *time.Time `gorm:"index"`
}

// TableName specifies the database table name for queue entries.
func (EntryDTO) TableName() string {
	return "delivery_provider_queue"
}

// fromDomain converts a queue entry to its database representation.
func fromDomain(entry *queue.Entry) EntryDTO {
	return EntryDTO{
		ID:               entry.ID().Bytes(),
		RequestID:        entry.RequestID().Bytes(),
		ProviderID:       entry.ProviderID().Bytes(),
		Position:         entry.Position(),
		Status:           int(entry.Status()),
		DistanceKm:       entry.DistanceKm(),
		PriorityScore:    entry.PriorityScore(),
		ContactedAt:      entry.ContactedAt(),
		RespondedAt:      entry.RespondedAt(),
		ResponseDeadline: entry.ResponseDeadline(),
	}
}

// toDomain converts a database DTO to a queue entry using RestoreEntry.
func toDomain(dto EntryDTO) (*queue.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	requestID, err := kernel.UUIDFromBytes(dto.RequestID[:])
	if err != nil {
		return nil, err
	}
	providerID, err := kernel.UUIDFromBytes(dto.ProviderID[:])
	if err != nil {
		return nil, err
	}

	return queue.RestoreEntry(
		id, requestID, providerID,
		dto.Position, queue.Status(dto.Status),
		dto.DistanceKm, dto.PriorityScore,
		dto.ContactedAt, dto.RespondedAt, dto.ResponseDeadline,
	)
}
