package ports

import (
	"context"
	"time"

	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/core/domain/model/queue"
)

// ProviderQueueRepository defines the persistence contract for rotation queue
// entries. Entries are owned by their delivery request and are only mutated
// through the rotation controller.
type ProviderQueueRepository interface {
	// Add persists a new queue entry.
	Add(ctx context.Context, entry *queue.Entry) error

	// Update persists changes to an existing queue entry.
	Update(ctx context.Context, entry *queue.Entry) error

	// GetByRequest retrieves all entries for a request ordered by position.
	GetByRequest(ctx context.Context, requestID kernel.UUID) ([]*queue.Entry, error)

	// GetContacted retrieves the single in-flight (Contacted) entry for a
	// request. Returns ObjectNotFoundError when no provider is in flight.
	GetContacted(ctx context.Context, requestID kernel.UUID) (*queue.Entry, error)

	// GetAllExpiredContacted retrieves every Contacted entry across all
	// requests whose response deadline is at or before the given time.
	// Used by the timeout scanner.
	GetAllExpiredContacted(ctx context.Context, now time.Time) ([]*queue.Entry, error)
}
