// Package commrepo persists the append-only communication feed. Structured
// metadata is stored as jsonb so dashboards can query rotation attempts
// without parsing message text.
package commrepo

import (
	"encoding/json"
	"time"

	"buildconnect/internal/core/domain/model/comm"
	"buildconnect/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// RecordDTO represents the database structure of a communication record.
type RecordDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestID   uuid.UUID `gorm:"type:uuid;index"`
	SenderID    uuid.UUID `gorm:"type:uuid"`
	SenderType  int
	MessageType string `gorm:"index"`
	Content     string
	Metadata    []byte `gorm:"type:jsonb"`
	CreatedAt   time.Time
}

// TableName specifies the database table name for communication records.
func (RecordDTO) TableName() string {
	return "delivery_communications"
}

// fromDomain converts a communication record to its database representation.
func fromDomain(record *comm.Record) (RecordDTO, error) {
	metadata, err := json.Marshal(record.Metadata())
	if err != nil {
		return RecordDTO{}, err
	}

	return RecordDTO{
		ID:          record.ID().Bytes(),
		RequestID:   record.RequestID().Bytes(),
		SenderID:    record.SenderID().Bytes(),
		SenderType:  int(record.SenderType()),
		MessageType: record.MessageType(),
		Content:     record.Content(),
		Metadata:    metadata,
		CreatedAt:   record.CreatedAt(),
	}, nil
}

// toDomain converts a database DTO to a communication record.
func toDomain(dto RecordDTO) (*comm.Record, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	requestID, err := kernel.UUIDFromBytes(dto.RequestID[:])
	if err != nil {
		return nil, err
	}
	senderID, err := kernel.UUIDFromBytes(dto.SenderID[:])
	if err != nil {
		return nil, err
	}

	var metadata comm.Metadata
	if len(dto.Metadata) > 0 {
		if err := json.Unmarshal(dto.Metadata, &metadata); err != nil {
			return nil, err
		}
	}

	return comm.RestoreRecord(
		id, requestID, senderID,
		comm.SenderType(dto.SenderType),
		dto.MessageType, dto.Content, metadata, dto.CreatedAt,
	)
}
