package ports

import (
	"context"

	"buildconnect/internal/core/domain/model/comm"
	"buildconnect/internal/core/domain/model/kernel"
)

// CommunicationRepository defines the persistence contract for the
// append-only communication feed. Records are never updated or deleted.
type CommunicationRepository interface {
	// Add persists a new communication record.
	Add(ctx context.Context, record *comm.Record) error

	// GetByRequest retrieves all records for a request ordered by creation time.
	GetByRequest(ctx context.Context, requestID kernel.UUID) ([]*comm.Record, error)
}
