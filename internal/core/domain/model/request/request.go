package request

import (
	"errors"
	"fmt"
	"time"

	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/pkg/errs"
)

const (
	// DefaultMaxRotationAttempts is the rotation attempt budget applied when a
	// builder does not specify one.
	DefaultMaxRotationAttempts = 5

	// MaxRotationAttemptsLimit caps how large a builder may set the budget.
	MaxRotationAttemptsLimit = 20

	// DefaultRadiusKm is the provider search radius applied when a builder
	// does not specify one.
	DefaultRadiusKm = 25.0

	// MaxRadiusKm caps the provider search radius.
	MaxRadiusKm = 200.0
)

var (
	// ErrDeliveryRequestIsNotConstructed is returned when a DeliveryRequest instance was
	// not created through NewDeliveryRequest or RestoreDeliveryRequest.
	ErrDeliveryRequestIsNotConstructed = errors.New(
		"DeliveryRequest must be created via NewDeliveryRequest constructor")

	// ErrMaterialIsRequired is returned when creating a request without a material description.
	ErrMaterialIsRequired = errs.NewValueIsRequiredError("material")
	// ErrPickupAddressIsRequired is returned when creating a request without a pickup address.
	ErrPickupAddressIsRequired = errs.NewValueIsRequiredError("pickup address")
	// ErrDeliveryAddressIsRequired is returned when creating a request without a delivery address.
	ErrDeliveryAddressIsRequired = errs.NewValueIsRequiredError("delivery address")

	// ErrProviderAlreadyAttempted is returned when recording an attempt for a
	// provider already present in the attempted list.
	ErrProviderAlreadyAttempted = errors.New("provider was already attempted for this request")
	// ErrAttemptBudgetExceeded is returned when recording an attempt would push
	// the attempted list past the request's rotation budget.
	ErrAttemptBudgetExceeded = errors.New("rotation attempt budget exceeded")
)

// DeliveryRequest is the aggregate root of the provider rotation protocol.
// It tracks the builder's material delivery order, the ordered history of
// providers already contacted, the rotation budget, and the request status.
//
// Invariants:
//   - len(AttemptedProviders()) <= MaxRotationAttempts() at all times
//   - Once the status is terminal, no transition method succeeds
//   - AttemptedProviders never contains duplicates
//   - Can only be created through NewDeliveryRequest or RestoreDeliveryRequest
//
// The rotation controller is the only writer of request state; all other
// components treat the aggregate as read-only.
type DeliveryRequest struct {
	id        kernel.UUID
	builderID kernel.UUID

	// supplierID is the material supplier attached to the order, if any.
	// Relevant to the driver-contact disclosure gate only.
	supplierID *kernel.UUID

	material string
	quantity string

	pickupAddress   string
	deliveryAddress string

	// pickupLocation and deliveryLocation are nil when geocoding produced no
	// usable coordinates; the queue builder then falls back to a fixed point.
	pickupLocation   *kernel.GeoPoint
	deliveryLocation *kernel.GeoPoint

	status Status
	phase  Phase

	attemptedProviders  []kernel.UUID
	maxRotationAttempts int
	autoRotation        bool
	radiusKm            float64

	// version supports optimistic locking in the persistence layer.
	version int

	createdAt   time.Time
	completedAt *time.Time

	isConstructed bool
}

// NewDeliveryRequest creates a new DeliveryRequest in Pending status with an
// empty attempted-provider history.
//
// Parameters:
//   - id: Unique identifier for the request (must be a valid UUID)
//   - builderID: The requesting builder (must be a valid UUID)
//   - supplierID: Optional material supplier attached to the order
//   - material, quantity: Material description (material must be non-empty)
//   - pickupAddress, deliveryAddress: Human-readable addresses (must be non-empty)
//   - pickupLocation, deliveryLocation: Optional geocoded coordinates
//   - maxRotationAttempts: Rotation budget in [1..MaxRotationAttemptsLimit]
//   - radiusKm: Provider search radius in (0..MaxRadiusKm]
func NewDeliveryRequest(
	id kernel.UUID,
	builderID kernel.UUID,
	supplierID *kernel.UUID,
	material string,
	quantity string,
	pickupAddress string,
	deliveryAddress string,
	pickupLocation *kernel.GeoPoint,
	deliveryLocation *kernel.GeoPoint,
	maxRotationAttempts int,
	radiusKm float64,
) (*DeliveryRequest, error) {
	req := &DeliveryRequest{
		quantity:      quantity,
		status:        StatusPending,
		phase:         PhasePending,
		autoRotation:  true,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		req.setID(id),
		req.setBuilderID(builderID),
		req.setSupplierID(supplierID),
		req.setMaterial(material),
		req.setAddresses(pickupAddress, deliveryAddress),
		req.setLocations(pickupLocation, deliveryLocation),
		req.setMaxRotationAttempts(maxRotationAttempts),
		req.setRadiusKm(radiusKm),
	); err != nil {
		return nil, err
	}

	return req, nil
}

// RestoreDeliveryRequest reconstructs a DeliveryRequest from persistence.
// Validates the status, phase, and the attempted-provider budget invariant.
func RestoreDeliveryRequest(
	id kernel.UUID,
	builderID kernel.UUID,
	supplierID *kernel.UUID,
	material string,
	quantity string,
	pickupAddress string,
	deliveryAddress string,
	pickupLocation *kernel.GeoPoint,
	deliveryLocation *kernel.GeoPoint,
	status Status,
	phase Phase,
	attemptedProviders []kernel.UUID,
	maxRotationAttempts int,
	autoRotation bool,
	radiusKm float64,
	version int,
	createdAt time.Time,
	completedAt *time.Time,
) (*DeliveryRequest, error) {
	req, err := NewDeliveryRequest(
		id, builderID, supplierID, material, quantity,
		pickupAddress, deliveryAddress, pickupLocation, deliveryLocation,
		maxRotationAttempts, radiusKm,
	)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	if err = phase.Validate(); err != nil {
		return nil, err
	}
	if len(attemptedProviders) > maxRotationAttempts {
		return nil, errs.NewValueIsInvalidErrorWithCause("attempted providers",
			fmt.Errorf("%d attempts exceed budget of %d", len(attemptedProviders), maxRotationAttempts))
	}

	req.status = status
	req.phase = phase
	req.attemptedProviders = append([]kernel.UUID(nil), attemptedProviders...)
	req.autoRotation = autoRotation
	req.version = version
	req.createdAt = createdAt
	req.completedAt = completedAt
	return req, nil
}

// Validate ensures the DeliveryRequest was properly constructed.
func (r *DeliveryRequest) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrDeliveryRequestIsNotConstructed
	}
	return nil
}

// IsEqual compares two requests by their unique identifiers.
func (r *DeliveryRequest) IsEqual(other *DeliveryRequest) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the request's unique identifier.
func (r *DeliveryRequest) ID() kernel.UUID {
	return r.id
}

// BuilderID returns the requesting builder's identifier.
func (r *DeliveryRequest) BuilderID() kernel.UUID {
	return r.builderID
}

// SupplierID returns the attached material supplier's identifier, or nil.
func (r *DeliveryRequest) SupplierID() *kernel.UUID {
	return r.supplierID
}

// Material returns the material description.
func (r *DeliveryRequest) Material() string {
	return r.material
}

// Quantity returns the free-text quantity description.
func (r *DeliveryRequest) Quantity() string {
	return r.quantity
}

// PickupAddress returns the human-readable pickup address.
func (r *DeliveryRequest) PickupAddress() string {
	return r.pickupAddress
}

// DeliveryAddress returns the human-readable delivery address.
func (r *DeliveryRequest) DeliveryAddress() string {
	return r.deliveryAddress
}

// PickupLocation returns the geocoded pickup coordinates, or nil when unknown.
func (r *DeliveryRequest) PickupLocation() *kernel.GeoPoint {
	return r.pickupLocation
}

// DeliveryLocation returns the geocoded delivery coordinates, or nil when unknown.
func (r *DeliveryRequest) DeliveryLocation() *kernel.GeoPoint {
	return r.deliveryLocation
}

// Status returns the current rotation status.
func (r *DeliveryRequest) Status() Status {
	return r.status
}

// Phase returns the current physical delivery phase.
func (r *DeliveryRequest) Phase() Phase {
	return r.phase
}

// AttemptedProviders returns the ordered history of providers that rejected
// or timed out. The returned slice is a copy.
func (r *DeliveryRequest) AttemptedProviders() []kernel.UUID {
	return append([]kernel.UUID(nil), r.attemptedProviders...)
}

// HasAttempted reports whether the given provider already appears in the
// attempted history.
func (r *DeliveryRequest) HasAttempted(providerID kernel.UUID) bool {
	for _, attempted := range r.attemptedProviders {
		if attempted.IsEqual(providerID) {
			return true
		}
	}
	return false
}

// MaxRotationAttempts returns the rotation attempt budget.
func (r *DeliveryRequest) MaxRotationAttempts() int {
	return r.maxRotationAttempts
}

// AttemptsExhausted reports whether the attempted history has consumed the
// full rotation budget.
func (r *DeliveryRequest) AttemptsExhausted() bool {
	return len(r.attemptedProviders) >= r.maxRotationAttempts
}

// AutoRotation reports whether the request rotates to the next candidate
// automatically on rejection or timeout.
func (r *DeliveryRequest) AutoRotation() bool {
	return r.autoRotation
}

// RadiusKm returns the provider search radius in kilometers.
func (r *DeliveryRequest) RadiusKm() float64 {
	return r.radiusKm
}

// Version returns the optimistic-lock version loaded from persistence.
func (r *DeliveryRequest) Version() int {
	return r.version
}

// CreatedAt returns the creation timestamp.
func (r *DeliveryRequest) CreatedAt() time.Time {
	return r.createdAt
}

// CompletedAt returns the time rotation reached a terminal status, or nil.
func (r *DeliveryRequest) CompletedAt() *time.Time {
	return r.completedAt
}

// IsTerminal reports whether the request reached a terminal status.
func (r *DeliveryRequest) IsTerminal() bool {
	return r.status.IsTerminal()
}

// RecordAttempt appends a provider to the attempted history after that
// provider rejected or timed out.
//
// Business rules:
//   - The request must be in rotation (non-terminal)
//   - The provider must not already be in the attempted history
//   - The append must not exceed the rotation budget
func (r *DeliveryRequest) RecordAttempt(providerID kernel.UUID) error {
	if err := providerID.Validate(); err != nil {
		return err
	}
	if r.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s permits no further attempts", r.status.String()))
	}
	if r.HasAttempted(providerID) {
		return ErrProviderAlreadyAttempted
	}
	if len(r.attemptedProviders) >= r.maxRotationAttempts {
		return ErrAttemptBudgetExceeded
	}

	r.attemptedProviders = append(r.attemptedProviders, providerID)
	return nil
}

// Accept marks the request as accepted by a provider. Terminal.
func (r *DeliveryRequest) Accept() error {
	newStatus, err := r.status.Accept()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.complete()
	return nil
}

// FailRotation marks the request as having exhausted its attempt budget. Terminal.
func (r *DeliveryRequest) FailRotation() error {
	newStatus, err := r.status.FailRotation()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.complete()
	return nil
}

// ExhaustProviders marks the request as having run out of eligible candidates
// before the attempt budget was consumed. Terminal.
func (r *DeliveryRequest) ExhaustProviders() error {
	newStatus, err := r.status.ExhaustProviders()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.complete()
	return nil
}

// Cancel marks the request as cancelled by the builder. Terminal.
// Only non-accepted, non-terminal requests can be cancelled.
func (r *DeliveryRequest) Cancel() error {
	newStatus, err := r.status.Cancel()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.complete()
	return nil
}

// AssignSupplier attaches the supplier fulfilling the material order.
// Called by the order collaborators, not by the rotation controller.
func (r *DeliveryRequest) AssignSupplier(supplierID kernel.UUID) error {
	if err := supplierID.Validate(); err != nil {
		return err
	}

	r.supplierID = &supplierID
	return nil
}

// AdvancePhase moves the delivery phase forward. Phases only progress, a
// delivered request cannot go back out for delivery.
func (r *DeliveryRequest) AdvancePhase(phase Phase) error {
	if err := phase.Validate(); err != nil {
		return err
	}
	if phase < r.phase {
		return errs.NewValueIsInvalidErrorWithCause("phase is invalid",
			fmt.Errorf("cannot move from %s back to %s", r.phase.String(), phase.String()))
	}

	r.phase = phase
	return nil
}

func (r *DeliveryRequest) complete() {
	now := time.Now().UTC()
	r.completedAt = &now
}

func (r *DeliveryRequest) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *DeliveryRequest) setBuilderID(builderID kernel.UUID) error {
	if err := builderID.Validate(); err != nil {
		return err
	}
	r.builderID = builderID
	return nil
}

func (r *DeliveryRequest) setSupplierID(supplierID *kernel.UUID) error {
	if supplierID == nil {
		return nil
	}
	if err := supplierID.Validate(); err != nil {
		return err
	}
	id := *supplierID
	r.supplierID = &id
	return nil
}

func (r *DeliveryRequest) setMaterial(material string) error {
	if material == "" {
		return ErrMaterialIsRequired
	}
	r.material = material
	return nil
}

func (r *DeliveryRequest) setAddresses(pickupAddress, deliveryAddress string) error {
	if pickupAddress == "" {
		return ErrPickupAddressIsRequired
	}
	if deliveryAddress == "" {
		return ErrDeliveryAddressIsRequired
	}
	r.pickupAddress = pickupAddress
	r.deliveryAddress = deliveryAddress
	return nil
}

func (r *DeliveryRequest) setLocations(pickup, delivery *kernel.GeoPoint) error {
	if pickup != nil {
		if err := pickup.Validate(); err != nil {
			return err
		}
		point := *pickup
		r.pickupLocation = &point
	}
	if delivery != nil {
		if err := delivery.Validate(); err != nil {
			return err
		}
		point := *delivery
		r.deliveryLocation = &point
	}
	return nil
}

func (r *DeliveryRequest) setMaxRotationAttempts(maxRotationAttempts int) error {
	if maxRotationAttempts < 1 || maxRotationAttempts > MaxRotationAttemptsLimit {
		return errs.NewValueIsOutOfRangeError(
			"maxRotationAttempts", maxRotationAttempts, 1, MaxRotationAttemptsLimit)
	}
	r.maxRotationAttempts = maxRotationAttempts
	return nil
}

func (r *DeliveryRequest) setRadiusKm(radiusKm float64) error {
	if radiusKm <= 0 || radiusKm > MaxRadiusKm {
		return errs.NewValueIsOutOfRangeError("radiusKm", radiusKm, 0.0, MaxRadiusKm)
	}
	r.radiusKm = radiusKm
	return nil
}
