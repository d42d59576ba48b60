package http

import (
	"time"

	"github.com/google/uuid"
)

// Error is the JSON error envelope returned on every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// GeoPointModel is an optional coordinate pair in a request body.
type GeoPointModel struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewDeliveryRequest is the body of POST /api/v1/delivery-requests.
type NewDeliveryRequest struct {
	BuilderID           uuid.UUID      `json:"builder_id"`
	Material            string         `json:"material"`
	Quantity            string         `json:"quantity"`
	PickupAddress       string         `json:"pickup_address"`
	DeliveryAddress     string         `json:"delivery_address"`
	PickupLocation      *GeoPointModel `json:"pickup_location,omitempty"`
	DeliveryLocation    *GeoPointModel `json:"delivery_location,omitempty"`
	MaxRotationAttempts int            `json:"max_rotation_attempts,omitempty"`
	RadiusKm            float64        `json:"radius_km,omitempty"`
}

// DeliveryRequestCreated is the response of POST /api/v1/delivery-requests.
type DeliveryRequestCreated struct {
	RequestID uuid.UUID `json:"request_id"`
}

// ProviderResponse is the body of POST /api/v1/delivery-requests/:id/response.
type ProviderResponse struct {
	ProviderID             uuid.UUID `json:"provider_id"`
	Action                 string    `json:"action"`
	Message                string    `json:"message,omitempty"`
	EstimatedCost          float64   `json:"estimated_cost,omitempty"`
	EstimatedDurationHours float64   `json:"estimated_duration_hours,omitempty"`
}

// CancelRequest is the body of POST /api/v1/delivery-requests/:id/cancel.
type CancelRequest struct {
	BuilderID uuid.UUID `json:"builder_id"`
}

// DriverContactRequest is the body of POST /api/v1/delivery-requests/:id/driver-contact.
type DriverContactRequest struct {
	AccessorID    uuid.UUID `json:"accessor_id"`
	AccessorRole  string    `json:"accessor_role"`
	Justification string    `json:"justification,omitempty"`
}

// DriverContactResponse is the disclosure gate's answer. Contact is present
// only when the disclosure was allowed.
type DriverContactResponse struct {
	Allowed bool           `json:"allowed"`
	Message string         `json:"message,omitempty"`
	Contact *DriverContact `json:"contact,omitempty"`
}

// DriverContact is the disclosed contact card.
type DriverContact struct {
	ProviderID   uuid.UUID `json:"provider_id"`
	ProviderName string    `json:"provider_name"`
	DriverName   string    `json:"driver_name"`
	Phone        string    `json:"phone"`
	VehiclePlate string    `json:"vehicle_plate,omitempty"`
}

// QueueEntry is one ranked provider in the rotation status response.
type QueueEntry struct {
	ProviderID       uuid.UUID  `json:"provider_id"`
	Position         int        `json:"position"`
	Status           string     `json:"status"`
	DistanceKm       float64    `json:"distance_km"`
	PriorityScore    float64    `json:"priority_score"`
	ContactedAt      *time.Time `json:"contacted_at,omitempty"`
	RespondedAt      *time.Time `json:"responded_at,omitempty"`
	ResponseDeadline *time.Time `json:"response_deadline,omitempty"`
}

// RotationStatus is the response of GET /api/v1/delivery-requests/:id/rotation.
type RotationStatus struct {
	RequestID           uuid.UUID    `json:"request_id"`
	BuilderID           uuid.UUID    `json:"builder_id"`
	Status              string       `json:"status"`
	Phase               string       `json:"phase"`
	Material            string       `json:"material"`
	Quantity            string       `json:"quantity"`
	PickupAddress       string       `json:"pickup_address"`
	DeliveryAddress     string       `json:"delivery_address"`
	AttemptsUsed        int          `json:"attempts_used"`
	MaxRotationAttempts int          `json:"max_rotation_attempts"`
	RadiusKm            float64      `json:"radius_km"`
	CreatedAt           time.Time    `json:"created_at"`
	CompletedAt         *time.Time   `json:"completed_at,omitempty"`
	Queue               []QueueEntry `json:"queue"`
}

// ActiveRequest is one element of GET /api/v1/delivery-requests.
type ActiveRequest struct {
	RequestID       uuid.UUID `json:"request_id"`
	BuilderID       uuid.UUID `json:"builder_id"`
	Material        string    `json:"material"`
	Quantity        string    `json:"quantity"`
	PickupAddress   string    `json:"pickup_address"`
	DeliveryAddress string    `json:"delivery_address"`
	AttemptsUsed    int       `json:"attempts_used"`
	CreatedAt       time.Time `json:"created_at"`
}
