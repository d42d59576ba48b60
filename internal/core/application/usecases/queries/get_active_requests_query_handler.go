package queries

import (
	"context"
	"database/sql"
	"strings"

	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/core/domain/model/request"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveRequestsQueryHandler lists requests still in rotation.
type GetActiveRequestsQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveRequestsQueryHandler creates a handler for active request
// queries. Requires a GORM database connection for query execution.
func NewGetActiveRequestsQueryHandler(db *gorm.DB) GetActiveRequestsQueryHandler {
	return GetActiveRequestsQueryHandler{db: db}
}

// Handle executes the query. Results come back newest first.
func (h GetActiveRequestsQueryHandler) Handle(
	ctx context.Context,
	query GetActiveRequestsQuery,
) ([]GetActiveRequestsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlQuery := `
		SELECT
			id,
			builder_id,
			material,
			quantity,
			pickup_address,
			delivery_address,
			attempted_providers,
			created_at
		FROM delivery_requests
		WHERE status = ?
	`
	args := []any{int(request.StatusPending)}
	if query.BuilderID() != nil {
		sqlQuery += " AND builder_id = ?"
		args = append(args, query.BuilderID().Bytes())
	}
	sqlQuery += " ORDER BY created_at DESC"

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]GetActiveRequestsQueryResponse, 0)
	for rows.Next() {
		var response GetActiveRequestsQueryResponse
		var id, builderID uuid.UUID
		var attemptedProviders sql.NullString

		err = rows.Scan(
			&id,
			&builderID,
			&response.Material,
			&response.Quantity,
			&response.PickupAddress,
			&response.DeliveryAddress,
			&attemptedProviders,
			&response.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if response.BuilderID, err = kernel.UUIDFromBytes(builderID[:]); err != nil {
			return nil, err
		}
		if attemptedProviders.Valid && attemptedProviders.String != "" {
			response.AttemptsUsed = len(strings.Split(attemptedProviders.String, ","))
		}

		responses = append(responses, response)
	}

	return responses, rows.Err()
}
