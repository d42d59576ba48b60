// Package requestrepo provides data transfer objects and mapping functions for
// delivery request persistence. This package implements the repository pattern
// for the delivery request aggregate, handling the conversion between domain
// entities and database representations.
package requestrepo

import (
	"strings"
	"time"

	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/core/domain/model/request"

	"github.com/google/uuid"
)

// DeliveryRequestDTO represents the database structure for persisting
// delivery request aggregates. The attempted provider history is stored as a
// comma-joined, ordered list of UUIDs; the version column backs optimistic
// locking on rotation updates.
type DeliveryRequestDTO struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BuilderID           uuid.UUID  `gorm:"type:uuid;index"`
	SupplierID          *uuid.UUID `gorm:"type:uuid;index"`
	Material            string
	Quantity            string
	PickupAddress       string
	DeliveryAddress     string
	PickupLat           *float64
	PickupLng           *float64
	DeliveryLat         *float64
	DeliveryLng         *float64
	Status              int `gorm:"index"`
	Phase               int
	AttemptedProviders  string
	MaxRotationAttempts int
	AutoRotation        bool
	RadiusKm            float64
	Version             int
	CreatedAt           time.Time
	CompletedAt         *time.Time
}

// TableName specifies the database table name for delivery request entities.
func (DeliveryRequestDTO) TableName() string {
	return "delivery_requests"
}

// fromDomain converts a delivery request aggregate to its database
// representation.
func fromDomain(aggregate *request.DeliveryRequest) DeliveryRequestDTO {
	var supplierID *uuid.UUID
	if id := aggregate.SupplierID(); id != nil {
		raw := id.Bytes()
		supplierID = &raw
	}

	attempted := make([]string, 0, len(aggregate.AttemptedProviders()))
	for _, providerID := range aggregate.AttemptedProviders() {
		attempted = append(attempted, providerID.String())
	}

	pickupLat, pickupLng := coords(aggregate.PickupLocation())
	deliveryLat, deliveryLng := coords(aggregate.DeliveryLocation())

	return DeliveryRequestDTO{
		ID:                  aggregate.ID().Bytes(),
		BuilderID:           aggregate.BuilderID().Bytes(),
		SupplierID:          supplierID,
		Material:            aggregate.Material(),
		Quantity:            aggregate.Quantity(),
		PickupAddress:       aggregate.PickupAddress(),
		DeliveryAddress:     aggregate.DeliveryAddress(),
		PickupLat:           pickupLat,
		PickupLng:           pickupLng,
		DeliveryLat:         deliveryLat,
		DeliveryLng:         deliveryLng,
		Status:              int(aggregate.Status()),
		Phase:               int(aggregate.Phase()),
		AttemptedProviders:  strings.Join(attempted, ","),
		MaxRotationAttempts: aggregate.MaxRotationAttempts(),
		AutoRotation:        aggregate.AutoRotation(),
		RadiusKm:            aggregate.RadiusKm(),
		Version:             aggregate.Version(),
		CreatedAt:           aggregate.CreatedAt(),
		CompletedAt:         aggregate.CompletedAt(),
	}
}

func coords(point *kernel.GeoPoint) (*float64, *float64) {
	if point == nil {
		return nil, nil
	}
	lat := point.Latitude()
	lng := point.Longitude()
	return &lat, &lng
}

// toDomain converts a database DTO to a delivery request aggregate using
// RestoreDeliveryRequest.
func toDomain(dto DeliveryRequestDTO) (*request.DeliveryRequest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	builderID, err := kernel.UUIDFromBytes(dto.BuilderID[:])
	if err != nil {
		return nil, err
	}

	var supplierID *kernel.UUID
	if dto.SupplierID != nil {
		sID, supplierErr := kernel.UUIDFromBytes((*dto.SupplierID)[:])
		if supplierErr != nil {
			return nil, supplierErr
		}
		supplierID = &sID
	}

	pickupLocation, err := toGeoPoint(dto.PickupLat, dto.PickupLng)
	if err != nil {
		return nil, err
	}
	deliveryLocation, err := toGeoPoint(dto.DeliveryLat, dto.DeliveryLng)
	if err != nil {
		return nil, err
	}

	attempted, err := toAttemptedProviders(dto.AttemptedProviders)
	if err != nil {
		return nil, err
	}

	return request.RestoreDeliveryRequest(
		id, builderID, supplierID,
		dto.Material, dto.Quantity,
		dto.PickupAddress, dto.DeliveryAddress,
		pickupLocation, deliveryLocation,
		request.Status(dto.Status), request.Phase(dto.Phase),
		attempted,
		dto.MaxRotationAttempts, dto.AutoRotation, dto.RadiusKm,
		dto.Version, dto.CreatedAt, dto.CompletedAt,
	)
}

func toGeoPoint(lat, lng *float64) (*kernel.GeoPoint, error) {
	if lat == nil || lng == nil {
		return nil, nil
	}
	point, err := kernel.NewGeoPoint(*lat, *lng)
	if err != nil {
		return nil, err
	}
	return &point, nil
}

func toAttemptedProviders(joined string) ([]kernel.UUID, error) {
	if joined == "" {
		return nil, nil
	}

	parts := strings.Split(joined, ",")
	attempted := make([]kernel.UUID, 0, len(parts))
	for _, part := range parts {
		providerID, err := kernel.UUIDFromString(part)
		if err != nil {
			return nil, err
		}
		attempted = append(attempted, providerID)
	}
	return attempted, nil
}
