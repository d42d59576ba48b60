package commrepo

import (
	"context"

	"buildconnect/internal/core/domain/model/comm"
	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/core/ports"

	"gorm.io/gorm"
)

var _ ports.CommunicationRepository = &GormCommunicationRepository{}

// aggregateTracker is implemented by the unit of work to collect aggregates
// touched during a transaction.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormCommunicationRepository persists communication records using GORM.
// The feed is append-only, so there is no Update.
type GormCommunicationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormCommunicationRepository creates a communication repository bound to
// the given transaction handle.
func NewGormCommunicationRepository(db *gorm.DB, tracker aggregateTracker) *GormCommunicationRepository {
	return &GormCommunicationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add persists a new communication record.
func (r *GormCommunicationRepository) Add(ctx context.Context, record *comm.Record) error {
	r.tracker.TrackAggregate(record.ID(), record)

	dto, err := fromDomain(record)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	return nil
}

// GetByRequest returns all records for a request in chronological order.
func (r *GormCommunicationRepository) GetByRequest(ctx context.Context, requestID kernel.UUID) ([]*comm.Record, error) {
	var dtos []RecordDTO
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID.Bytes()).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*comm.Record, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}
