package queries

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/core/domain/model/queue"
	"buildconnect/internal/core/domain/model/request"
	"buildconnect/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRotationStatusQueryHandler reads a request's rotation progress straight
// from the database. Uses direct SQL for optimal read performance in the
// CQRS pattern.
type GetRotationStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetRotationStatusQueryHandler creates a handler for rotation status
// queries. Requires a GORM database connection for query execution.
func NewGetRotationStatusQueryHandler(db *gorm.DB) GetRotationStatusQueryHandler {
	return GetRotationStatusQueryHandler{db: db}
}

// Handle executes the query. Returns ObjectNotFoundError when the request
// does not exist. Queue entries come back ordered by position.
func (h GetRotationStatusQueryHandler) Handle(
	ctx context.Context,
	query GetRotationStatusQuery,
) (GetRotationStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRotationStatusQueryResponse{}, err
	}

	response, err := h.loadRequest(ctx, query.RequestID())
	if err != nil {
		return GetRotationStatusQueryResponse{}, err
	}

	if response.Queue, err = h.loadQueue(ctx, query.RequestID()); err != nil {
		return GetRotationStatusQueryResponse{}, err
	}

	return response, nil
}

func (h GetRotationStatusQueryHandler) loadRequest(
	ctx context.Context, requestID kernel.UUID,
) (GetRotationStatusQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			builder_id,
			status,
			phase,
			material,
			quantity,
			pickup_address,
			delivery_address,
			attempted_providers,
			max_rotation_attempts,
			radius_km,
			created_at,
			completed_at
		FROM delivery_requests
		WHERE id = ?
	`, requestID.Bytes()).Row()

	var response GetRotationStatusQueryResponse
	var id, builderID uuid.UUID
	var status, phase int
	var attemptedProviders sql.NullString
	var completedAt sql.NullTime

	err := row.Scan(
		&id,
		&builderID,
		&status,
		&phase,
		&response.Material,
		&response.Quantity,
		&response.PickupAddress,
		&response.DeliveryAddress,
		&attemptedProviders,
		&response.MaxRotationAttempts,
		&response.RadiusKm,
		&response.CreatedAt,
		&completedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetRotationStatusQueryResponse{}, errs.NewObjectNotFoundError("requestId", requestID)
	}
	if err != nil {
		return GetRotationStatusQueryResponse{}, err
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetRotationStatusQueryResponse{}, err
	}
	if response.BuilderID, err = kernel.UUIDFromBytes(builderID[:]); err != nil {
		return GetRotationStatusQueryResponse{}, err
	}

	response.Status = request.Status(status).String()
	response.Phase = request.Phase(phase).String()
	if attemptedProviders.Valid && attemptedProviders.String != "" {
		response.AttemptsUsed = len(strings.Split(attemptedProviders.String, ","))
	}
	if completedAt.Valid {
		response.CompletedAt = &completedAt.Time
	}

	return response, nil
}

func (h GetRotationStatusQueryHandler) loadQueue(
	ctx context.Context, requestID kernel.UUID,
) ([]QueueEntryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			provider_id,
			position,
			status,
			distance_km,
			priority_score,
			contacted_at,
			responded_at,
			response_deadline
		FROM delivery_provider_queue
		WHERE request_id = ?
		ORDER BY position
	`, requestID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]QueueEntryResponse, 0)
	for rows.Next() {
		var entry QueueEntryResponse
		var providerID uuid.UUID
		var status int
		var contactedAt, respondedAt, responseDeadline sql.NullTime

		err = rows.Scan(
			&providerID,
			&entry.Position,
			&status,
			&entry.DistanceKm,
			&entry.PriorityScore,
			&contactedAt,
			&respondedAt,
			&responseDeadline,
		)
		if err != nil {
			return nil, err
		}

		if entry.ProviderID, err = kernel.UUIDFromBytes(providerID[:]); err != nil {
			return nil, err
		}
		entry.Status = queue.Status(status).String()
		if contactedAt.Valid {
			entry.ContactedAt = &contactedAt.Time
		}
		if respondedAt.Valid {
			entry.RespondedAt = &respondedAt.Time
		}
		if responseDeadline.Valid {
			entry.ResponseDeadline = &responseDeadline.Time
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
