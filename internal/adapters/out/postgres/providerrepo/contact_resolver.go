package providerrepo

import (
	"context"
	"errors"

	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/core/ports"
	"buildconnect/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.ContactResolver = &GormContactResolver{}

// GormContactResolver reads the driver contact card from the provider
// directory. Only the disclosure gate calls it, after the access policy
// allowed the disclosure.
type GormContactResolver struct {
	db *gorm.DB
}

// NewGormContactResolver creates a contact resolver.
func NewGormContactResolver(db *gorm.DB) *GormContactResolver {
	return &GormContactResolver{db: db}
}

// Resolve returns the driver contact card for the given provider.
func (r *GormContactResolver) Resolve(ctx context.Context, providerID kernel.UUID) (ports.DriverContact, error) {
	var dto ProviderDTO
	err := r.db.WithContext(ctx).First(&dto, providerID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.DriverContact{}, errs.NewObjectNotFoundError("provider", providerID.String())
		}

		return ports.DriverContact{}, err
	}

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.DriverContact{}, err
	}

	driverName := dto.DriverName
	if driverName == "" {
		driverName = dto.Name
	}

	return ports.DriverContact{
		ProviderID:   id,
		ProviderName: dto.Name,
		DriverName:   driverName,
		Phone:        dto.Phone,
		VehiclePlate: dto.VehiclePlate,
	}, nil
}
