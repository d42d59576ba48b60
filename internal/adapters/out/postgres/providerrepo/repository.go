package providerrepo

import (
	"context"
	"errors"

	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/core/domain/model/provider"
	"buildconnect/internal/core/ports"
	"buildconnect/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.ProviderRepository = &GormProviderRepository{}

// GormProviderRepository reads delivery providers using GORM.
type GormProviderRepository struct {
	db *gorm.DB
}

// NewGormProviderRepository creates a provider repository.
func NewGormProviderRepository(db *gorm.DB) *GormProviderRepository {
	return &GormProviderRepository{db: db}
}

// Get retrieves a provider by its identifier.
func (r *GormProviderRepository) Get(ctx context.Context, providerID kernel.UUID) (*provider.Provider, error) {
	var dto ProviderDTO
	err := r.db.WithContext(ctx).First(&dto, providerID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("provider", providerID.String())
		}

		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive returns every provider currently accepting delivery requests.
func (r *GormProviderRepository) GetAllActive(ctx context.Context) ([]*provider.Provider, error) {
	var dtos []ProviderDTO
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	providers := make([]*provider.Provider, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}

	return providers, nil
}
