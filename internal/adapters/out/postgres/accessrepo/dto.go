// Package accessrepo persists the driver contact disclosure audit trail.
// Entries are append-only and never modified after the fact.
package accessrepo

import (
	"time"

	"buildconnect/internal/core/domain/model/access"

	"github.com/google/uuid"
)

// LogEntryDTO represents the database structure of a disclosure decision.
type LogEntryDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestID     uuid.UUID `gorm:"type:uuid;index"`
	ActorID       uuid.UUID `gorm:"type:uuid;index"`
	ActorRole     int
	Allowed       bool
	Reason        string
	Justification string
	OccurredAt    time.Time
}

// TableName specifies the database table name for the access log.
func (LogEntryDTO) TableName() string {
	return "driver_contact_access_log"
}

// fromDomain converts a log entry to its database representation.
func fromDomain(entry access.LogEntry) LogEntryDTO {
	return LogEntryDTO{
		ID:            entry.ID().Bytes(),
		RequestID:     entry.RequestID().Bytes(),
		ActorID:       entry.ActorID().Bytes(),
		ActorRole:     int(entry.ActorRole()),
		Allowed:       entry.Allowed(),
		Reason:        entry.Reason(),
		Justification: entry.Justification(),
		OccurredAt:    entry.OccurredAt(),
	}
}
