package accessrepo

import (
	"context"

	"buildconnect/internal/core/domain/model/access"
	"buildconnect/internal/core/ports"

	"gorm.io/gorm"
)

var _ ports.AccessLogRepository = &GormAccessLogRepository{}

// GormAccessLogRepository persists disclosure audit entries using GORM.
type GormAccessLogRepository struct {
	db *gorm.DB
}

// NewGormAccessLogRepository creates an access log repository bound to the
// given transaction handle.
func NewGormAccessLogRepository(db *gorm.DB) *GormAccessLogRepository {
	return &GormAccessLogRepository{db: db}
}

// Add persists a disclosure decision.
func (r *GormAccessLogRepository) Add(ctx context.Context, entry access.LogEntry) error {
	dto := fromDomain(entry)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	return nil
}
