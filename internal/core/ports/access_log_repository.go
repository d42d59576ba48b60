package ports

import (
	"context"

	"buildconnect/internal/core/domain/model/access"
)

// AccessLogRepository defines the persistence contract for the driver contact
// disclosure audit trail. The log is append-only.
type AccessLogRepository interface {
	// Add persists a disclosure decision.
	Add(ctx context.Context, entry access.LogEntry) error
}
