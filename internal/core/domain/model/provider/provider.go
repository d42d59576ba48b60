// Package provider holds the DeliveryProvider read model. Provider records are
// maintained by the marketplace's registration flows; the rotation controller
// only reads them when ranking candidates and resolving notifications.
package provider

import (
	"errors"

	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/pkg/errs"
)

const (
	// MinRating is the lowest provider rating.
	MinRating = 0.0
	// MaxRating is the highest provider rating.
	MaxRating = 5.0
)

var (
	// ErrProviderIsNotConstructed is returned when using an improperly
	// initialized Provider.
	ErrProviderIsNotConstructed = errors.New("Provider must be created via NewProvider constructor")

	// ErrNameIsRequired is returned when creating a provider without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
)

// Provider represents a delivery provider registered on the marketplace.
// Read-only from the rotation controller's perspective.
type Provider struct {
	id       kernel.UUID
	name     string
	rating   float64
	location kernel.GeoPoint
	phone    string
	isActive bool

	isConstructed bool
}

// NewProvider creates a Provider with a validated identity, rating, and location.
func NewProvider(
	id kernel.UUID,
	name string,
	rating float64,
	location kernel.GeoPoint,
	phone string,
	isActive bool,
) (*Provider, error) {
	p := &Provider{
		phone:         phone,
		isActive:      isActive,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setRating(rating),
		p.setLocation(location),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the Provider was properly constructed.
func (p *Provider) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProviderIsNotConstructed
	}
	return nil
}

// ID returns the provider's unique identifier.
func (p *Provider) ID() kernel.UUID {
	return p.id
}

// Name returns the provider's display name.
func (p *Provider) Name() string {
	return p.name
}

// Rating returns the provider's marketplace rating in [MinRating..MaxRating].
func (p *Provider) Rating() float64 {
	return p.rating
}

// Location returns the provider's registered location.
func (p *Provider) Location() kernel.GeoPoint {
	return p.location
}

// Phone returns the provider's contact phone. Disclosure of this value to
// builders goes through the driver-contact gate, never directly.
func (p *Provider) Phone() string {
	return p.phone
}

// IsActive reports whether the provider currently takes deliveries.
func (p *Provider) IsActive() bool {
	return p.isActive
}

func (p *Provider) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Provider) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	p.name = name
	return nil
}

func (p *Provider) setRating(rating float64) error {
	if rating < MinRating || rating > MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating)
	}
	p.rating = rating
	return nil
}

func (p *Provider) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	p.location = location
	return nil
}
