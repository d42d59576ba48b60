package queuerepo

import (
	"context"
	"errors"
	"time"

	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/core/domain/model/queue"
	"buildconnect/internal/core/ports"
	"buildconnect/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.ProviderQueueRepository = &GormProviderQueueRepository{}

// aggregateTracker is implemented by the unit of work to collect aggregates
// touched during a transaction.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormProviderQueueRepository persists rotation queue entries using GORM.
type GormProviderQueueRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormProviderQueueRepository creates a queue repository bound to the
// given transaction handle.
func NewGormProviderQueueRepository(db *gorm.DB, tracker aggregateTracker) *GormProviderQueueRepository {
	return &GormProviderQueueRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add persists a new queue entry.
func (r *GormProviderQueueRepository) Add(ctx context.Context, entry *queue.Entry) error {
	r.tracker.TrackAggregate(entry.ID(), entry)

	dto := fromDomain(entry)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	return nil
}

// Update persists changes to an existing queue entry.
func (r *GormProviderQueueRepository) Update(ctx context.Context, entry *queue.Entry) error {
	r.tracker.TrackAggregate(entry.ID(), entry)

	dto := fromDomain(entry)
	if err := r.db.WithContext(ctx).Select("*").Updates(&dto).Error; err != nil {
		return err
	}

	return nil
}

// GetByRequest returns all queue entries for a request ordered by position.
func (r *GormProviderQueueRepository) GetByRequest(ctx context.Context, requestID kernel.UUID) ([]*queue.Entry, error) {
	var dtos []EntryDTO
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID.Bytes()).
		Order("position").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*queue.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// GetContacted returns the entry currently awaiting a provider response for
// the given request. At most one entry is contacted at a time.
func (r *GormProviderQueueRepository) GetContacted(ctx context.Context, requestID kernel.UUID) (*queue.Entry, error) {
	var dto EntryDTO
	err := r.db.WithContext(ctx).
		Where("request_id = ? AND status = ?", requestID.Bytes(), int(queue.StatusContacted)).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("contacted queue entry", requestID.String())
		}

		return nil, err
	}

	return toDomain(dto)
}

// GetAllExpiredContacted returns contacted entries whose response deadline
// has passed at the given moment, oldest deadline first.
func (r *GormProviderQueueRepository) GetAllExpiredContacted(ctx context.Context, now time.Time) ([]*queue.Entry, error) {
	var dtos []EntryDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND response_deadline <= ?", int(queue.StatusContacted), now).
		Order("response_deadline").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*queue.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
