package commands

import (
	"errors"

	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/core/domain/model/request"
	"buildconnect/internal/pkg/guard"
)

var (
	ErrCreateDeliveryRequestCommandIsNotConstructed = errors.New(
		"CreateDeliveryRequestCommand must be created via NewCreateDeliveryRequestCommand constructor",
	)
)

// CreateDeliveryRequestCommand represents a builder's request for material
// delivery. Encapsulates the cargo details, the pickup and drop-off points,
// and the rotation tuning knobs. Zero values for maxRotationAttempts and
// radiusKm select the marketplace defaults.
//
// Example:
//
//	cmd, err := NewCreateDeliveryRequestCommand(
//	    kernel.NewUUID(), builderID,
//	    "cement", "200 bags",
//	    "Bamburi depot, Athi River", "Kamakis, Eastern Bypass",
//	    &pickupPoint, nil,
//	    0, 0,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid request data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create delivery request: %w", err)
//	}
type CreateDeliveryRequestCommand struct { //nolint:recvcheck //using for validation
	requestID           kernel.UUID
	builderID           kernel.UUID
	material            string
	quantity            string
	pickupAddress       string
	deliveryAddress     string
	pickupLocation      *kernel.GeoPoint
	deliveryLocation    *kernel.GeoPoint
	maxRotationAttempts int
	radiusKm            float64

	guard guard.ConstructorGuard
}

// NewCreateDeliveryRequestCommand creates a command to register a new
// delivery request. Locations are optional, addresses are not. Zero
// maxRotationAttempts and radiusKm mean "use defaults"; the aggregate
// constructor enforces the upper bounds.
func NewCreateDeliveryRequestCommand(
	requestID kernel.UUID,
	builderID kernel.UUID,
	material string,
	quantity string,
	pickupAddress string,
	deliveryAddress string,
	pickupLocation *kernel.GeoPoint,
	deliveryLocation *kernel.GeoPoint,
	maxRotationAttempts int,
	radiusKm float64,
) (CreateDeliveryRequestCommand, error) {
	cmd := CreateDeliveryRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIDs(requestID, builderID),
		cmd.setCargo(material, quantity),
		cmd.setAddresses(pickupAddress, deliveryAddress),
		cmd.setLocations(pickupLocation, deliveryLocation),
		cmd.setRotationTuning(maxRotationAttempts, radiusKm),
	); err != nil {
		return CreateDeliveryRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDeliveryRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryRequestCommandIsNotConstructed)
}

// RequestID returns the unique identifier for the new request.
func (c CreateDeliveryRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// BuilderID returns the requesting builder's identifier.
func (c CreateDeliveryRequestCommand) BuilderID() kernel.UUID {
	return c.builderID
}

// Material returns the material to be delivered.
func (c CreateDeliveryRequestCommand) Material() string {
	return c.material
}

// Quantity returns the free-text quantity description.
func (c CreateDeliveryRequestCommand) Quantity() string {
	return c.quantity
}

// PickupAddress returns the pickup street address.
func (c CreateDeliveryRequestCommand) PickupAddress() string {
	return c.pickupAddress
}

// DeliveryAddress returns the drop-off street address.
func (c CreateDeliveryRequestCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

// PickupLocation returns the optional pickup coordinates.
func (c CreateDeliveryRequestCommand) PickupLocation() *kernel.GeoPoint {
	return c.pickupLocation
}

// DeliveryLocation returns the optional drop-off coordinates.
func (c CreateDeliveryRequestCommand) DeliveryLocation() *kernel.GeoPoint {
	return c.deliveryLocation
}

// MaxRotationAttempts returns the rotation attempt budget.
func (c CreateDeliveryRequestCommand) MaxRotationAttempts() int {
	return c.maxRotationAttempts
}

// RadiusKm returns the provider search radius in kilometers.
func (c CreateDeliveryRequestCommand) RadiusKm() float64 {
	return c.radiusKm
}

func (c *CreateDeliveryRequestCommand) setIDs(requestID, builderID kernel.UUID) error {
	if err := errors.Join(requestID.Validate(), builderID.Validate()); err != nil {
		return err
	}

	c.requestID = requestID
	c.builderID = builderID
	return nil
}

func (c *CreateDeliveryRequestCommand) setCargo(material, quantity string) error {
	if material == "" {
		return request.ErrMaterialIsRequired
	}

	c.material = material
	c.quantity = quantity
	return nil
}

func (c *CreateDeliveryRequestCommand) setAddresses(pickupAddress, deliveryAddress string) error {
	if pickupAddress == "" {
		return request.ErrPickupAddressIsRequired
	}
	if deliveryAddress == "" {
		return request.ErrDeliveryAddressIsRequired
	}

	c.pickupAddress = pickupAddress
	c.deliveryAddress = deliveryAddress
	return nil
}

func (c *CreateDeliveryRequestCommand) setLocations(pickup, delivery *kernel.GeoPoint) error {
	if pickup != nil {
		if err := pickup.Validate(); err != nil {
			return err
		}
		c.pickupLocation = pickup
	}
	if delivery != nil {
		if err := delivery.Validate(); err != nil {
			return err
		}
		c.deliveryLocation = delivery
	}
	return nil
}

func (c *CreateDeliveryRequestCommand) setRotationTuning(maxRotationAttempts int, radiusKm float64) error {
	if maxRotationAttempts == 0 {
		maxRotationAttempts = request.DefaultMaxRotationAttempts
	}
	if radiusKm == 0 {
		radiusKm = request.DefaultRadiusKm
	}

	c.maxRotationAttempts = maxRotationAttempts
	c.radiusKm = radiusKm
	return nil
}
