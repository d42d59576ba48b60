package requestrepo

import (
	"context"
	"errors"

	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/core/domain/model/request"
	"buildconnect/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDeliveryRequestRepository implements DeliveryRequestRepository using GORM.
type GormDeliveryRequestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryRequestRepository creates a new GORM delivery request repository.
func NewGormDeliveryRequestRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRequestRepository {
	return &GormDeliveryRequestRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery request to the database with version 1.
func (r *GormDeliveryRequestRepository) Add(ctx context.Context, aggregate *request.DeliveryRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing delivery request. The write is guarded by the
// version the aggregate was loaded with: a concurrent rotation step that
// already bumped the row makes this update match zero rows, and the caller
// gets a VersionIsInvalidError instead of silently clobbering state.
func (r *GormDeliveryRequestRepository) Update(ctx context.Context, aggregate *request.DeliveryRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).
		Model(&DeliveryRequestDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("delivery request", errs.ErrConflict)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a delivery request by ID.
func (r *GormDeliveryRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.DeliveryRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryRequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery request", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive retrieves all requests still in rotation.
func (r *GormDeliveryRequestRepository) GetAllActive(ctx context.Context) ([]*request.DeliveryRequest, error) {
	var dtos []DeliveryRequestDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "status = ?", int(request.StatusPending)).Error; err != nil {
		return nil, err
	}

	requests := make([]*request.DeliveryRequest, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		requests = append(requests, aggregate)
	}

	return requests, nil
}
