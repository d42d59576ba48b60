// Package providerrepo provides read access to the delivery provider
// directory. Providers are managed by an upstream onboarding flow, so the
// rotation controller never writes to this table.
package providerrepo

import (
	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/core/domain/model/provider"

	"github.com/google/uuid"
)

// ProviderDTO represents the database structure of a delivery provider.
// DriverName and VehiclePlate are directory-only columns read by the contact
// resolver; the rotation core never sees them.
type ProviderDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string
	Rating       float64
	Latitude     float64
	Longitude    float64
	Phone        string
	DriverName   string
	VehiclePlate string
	IsActive     bool `gorm:"index"`
}

// TableName specifies the database table name for providers.
func (ProviderDTO) TableName() string {
	return "delivery_providers"
}

// toDomain converts a database DTO to a provider aggregate.
func toDomain(dto ProviderDTO) (*provider.Provider, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	location, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}

	return provider.NewProvider(id, dto.Name, dto.Rating, location, dto.Phone, dto.IsActive)
}
