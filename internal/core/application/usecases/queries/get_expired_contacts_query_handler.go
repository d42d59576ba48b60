package queries

import (
	"context"

	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/core/domain/model/queue"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetExpiredContactsQueryHandler finds rotation contacts past their response
// deadline across all requests.
type GetExpiredContactsQueryHandler struct {
	db *gorm.DB
}

// NewGetExpiredContactsQueryHandler creates a handler for expired contact
// queries. Requires a GORM database connection for query execution.
func NewGetExpiredContactsQueryHandler(db *gorm.DB) GetExpiredContactsQueryHandler {
	return GetExpiredContactsQueryHandler{db: db}
}

// Handle executes the query. Oldest deadlines come back first so the scanner
// times out the longest-waiting requests before fresher ones.
func (h GetExpiredContactsQueryHandler) Handle(
	ctx context.Context,
	query GetExpiredContactsQuery,
) ([]GetExpiredContactsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			request_id,
			provider_id,
			response_deadline
		FROM delivery_provider_queue
		WHERE status = ?
		  AND response_deadline <= ?
		ORDER BY response_deadline
	`, int(queue.StatusContacted), query.Now()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]GetExpiredContactsQueryResponse, 0)
	for rows.Next() {
		var response GetExpiredContactsQueryResponse
		var requestID, providerID uuid.UUID

		if err = rows.Scan(&requestID, &providerID, &response.ResponseDeadline); err != nil {
			return nil, err
		}
		if response.RequestID, err = kernel.UUIDFromBytes(requestID[:]); err != nil {
			return nil, err
		}
		if response.ProviderID, err = kernel.UUIDFromBytes(providerID[:]); err != nil {
			return nil, err
		}

		responses = append(responses, response)
	}

	return responses, rows.Err()
}
