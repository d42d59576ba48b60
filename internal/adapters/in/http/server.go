// Package http exposes the rotation controller over a REST API.
// It coordinates between HTTP handlers and application use cases.
package http

import (
	"errors"
	"net/http"

	"buildconnect/internal/core/application/usecases/commands"
	"buildconnect/internal/core/application/usecases/queries"
	"buildconnect/internal/core/domain/model/access"
	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/observability"
	"buildconnect/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server handles the delivery request rotation API.
type Server struct {
	// Command handlers
	createRequestHandler   commands.CreateDeliveryRequestCommandHandler
	submitResponseHandler  commands.SubmitProviderResponseCommandHandler
	cancelRequestHandler   commands.CancelDeliveryRequestCommandHandler
	discloseContactHandler commands.DiscloseDriverContactCommandHandler

	// Query handlers
	getRotationStatusHandler queries.GetRotationStatusQueryHandler
	getActiveRequestsHandler queries.GetActiveRequestsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createRequestHandler commands.CreateDeliveryRequestCommandHandler,
	submitResponseHandler commands.SubmitProviderResponseCommandHandler,
	cancelRequestHandler commands.CancelDeliveryRequestCommandHandler,
	discloseContactHandler commands.DiscloseDriverContactCommandHandler,
	getRotationStatusHandler queries.GetRotationStatusQueryHandler,
	getActiveRequestsHandler queries.GetActiveRequestsQueryHandler,
) *Server {
	return &Server{
		createRequestHandler:     createRequestHandler,
		submitResponseHandler:    submitResponseHandler,
		cancelRequestHandler:     cancelRequestHandler,
		discloseContactHandler:   discloseContactHandler,
		getRotationStatusHandler: getRotationStatusHandler,
		getActiveRequestsHandler: getActiveRequestsHandler,
	}
}

// RegisterRoutes attaches the API routes to the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/delivery-requests", s.CreateDeliveryRequest)
	api.GET("/delivery-requests", s.GetActiveRequests)
	api.GET("/delivery-requests/:id/rotation", s.GetRotationStatus)
	api.POST("/delivery-requests/:id/response", s.SubmitProviderResponse)
	api.POST("/delivery-requests/:id/cancel", s.CancelDeliveryRequest)
	api.POST("/delivery-requests/:id/driver-contact", s.DiscloseDriverContact)
}

// CreateDeliveryRequest handles POST /api/v1/delivery-requests.
// Creates the request and immediately runs the first rotation step.
func (s *Server) CreateDeliveryRequest(ctx echo.Context) error {
	var body NewDeliveryRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	builderID, err := kernel.UUIDFromBytes(body.BuilderID[:])
	if err != nil {
		return badRequest(ctx, "Invalid builder ID")
	}

	pickupLocation, err := toGeoPoint(body.PickupLocation)
	if err != nil {
		return badRequest(ctx, "Invalid pickup location: "+err.Error())
	}
	deliveryLocation, err := toGeoPoint(body.DeliveryLocation)
	if err != nil {
		return badRequest(ctx, "Invalid delivery location: "+err.Error())
	}

	requestID := kernel.NewUUID()
	cmd, err := commands.NewCreateDeliveryRequestCommand(
		requestID, builderID,
		body.Material, body.Quantity,
		body.PickupAddress, body.DeliveryAddress,
		pickupLocation, deliveryLocation,
		body.MaxRotationAttempts, body.RadiusKm,
	)
	if err != nil {
		return badRequest(ctx, "Invalid delivery request: "+err.Error())
	}

	if err := s.createRequestHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err, "Failed to create delivery request")
	}

	observability.RotationsStartedTotal.Inc()
	return ctx.JSON(http.StatusCreated, DeliveryRequestCreated{RequestID: requestID.Bytes()})
}

// SubmitProviderResponse handles POST /api/v1/delivery-requests/:id/response.
// Accepts a provider's accept or reject answer for the active contact.
func (s *Server) SubmitProviderResponse(ctx echo.Context) error {
	requestID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid request ID")
	}

	var body ProviderResponse
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	providerID, err := kernel.UUIDFromBytes(body.ProviderID[:])
	if err != nil {
		return badRequest(ctx, "Invalid provider ID")
	}

	action, err := commands.ResponseActionFromString(body.Action)
	if err != nil {
		return badRequest(ctx, "Invalid action: "+err.Error())
	}

	cmd, err := commands.NewSubmitProviderResponseCommand(
		requestID, providerID, action,
		body.Message, body.EstimatedCost, body.EstimatedDurationHours,
	)
	if err != nil {
		return badRequest(ctx, "Invalid provider response: "+err.Error())
	}

	if err := s.submitResponseHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err, "Failed to record provider response")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelDeliveryRequest handles POST /api/v1/delivery-requests/:id/cancel.
func (s *Server) CancelDeliveryRequest(ctx echo.Context) error {
	requestID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid request ID")
	}

	var body CancelRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	builderID, err := kernel.UUIDFromBytes(body.BuilderID[:])
	if err != nil {
		return badRequest(ctx, "Invalid builder ID")
	}

	cmd, err := commands.NewCancelDeliveryRequestCommand(requestID, builderID)
	if err != nil {
		return badRequest(ctx, "Invalid cancellation: "+err.Error())
	}

	if err := s.cancelRequestHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, commands.ErrNotRequestOwner) {
			return ctx.JSON(http.StatusForbidden, Error{
				Code:    http.StatusForbidden,
				Message: "Only the requesting builder may cancel",
			})
		}
		return writeError(ctx, err, "Failed to cancel delivery request")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DiscloseDriverContact handles POST /api/v1/delivery-requests/:id/driver-contact.
// Every call is audited; a denied disclosure still returns 200 with the
// withheld message.
func (s *Server) DiscloseDriverContact(ctx echo.Context) error {
	requestID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid request ID")
	}

	var body DriverContactRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	accessorID, err := kernel.UUIDFromBytes(body.AccessorID[:])
	if err != nil {
		return badRequest(ctx, "Invalid accessor ID")
	}

	role, err := access.RoleFromString(body.AccessorRole)
	if err != nil {
		return badRequest(ctx, "Invalid accessor role: "+err.Error())
	}

	cmd, err := commands.NewDiscloseDriverContactCommand(requestID, accessorID, role, body.Justification)
	if err != nil {
		return badRequest(ctx, "Invalid disclosure request: "+err.Error())
	}

	result, err := s.discloseContactHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err, "Failed to process disclosure request")
	}

	if result.Allowed {
		observability.ContactDisclosuresTotal.WithLabelValues("disclosed").Inc()
	} else {
		observability.ContactDisclosuresTotal.WithLabelValues("withheld").Inc()
	}

	response := DriverContactResponse{
		Allowed: result.Allowed,
		Message: result.Message,
	}
	if result.Contact != nil {
		response.Contact = &DriverContact{
			ProviderID:   result.Contact.ProviderID.Bytes(),
			ProviderName: result.Contact.ProviderName,
			DriverName:   result.Contact.DriverName,
			Phone:        result.Contact.Phone,
			VehiclePlate: result.Contact.VehiclePlate,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetRotationStatus handles GET /api/v1/delivery-requests/:id/rotation.
func (s *Server) GetRotationStatus(ctx echo.Context) error {
	requestID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid request ID")
	}

	query, err := queries.NewGetRotationStatusQuery(requestID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	status, err := s.getRotationStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err, "Failed to retrieve rotation status")
	}

	queue := make([]QueueEntry, len(status.Queue))
	for i, entry := range status.Queue {
		queue[i] = QueueEntry{
			ProviderID:       entry.ProviderID.Bytes(),
			Position:         entry.Position,
			Status:           entry.Status,
			DistanceKm:       entry.DistanceKm,
			PriorityScore:    entry.PriorityScore,
			ContactedAt:      entry.ContactedAt,
			RespondedAt:      entry.RespondedAt,
			ResponseDeadline: entry.ResponseDeadline,
		}
	}

	return ctx.JSON(http.StatusOK, RotationStatus{
		RequestID:           status.ID.Bytes(),
		BuilderID:           status.BuilderID.Bytes(),
		Status:              status.Status,
		Phase:               status.Phase,
		Material:            status.Material,
		Quantity:            status.Quantity,
		PickupAddress:       status.PickupAddress,
		DeliveryAddress:     status.DeliveryAddress,
		AttemptsUsed:        status.AttemptsUsed,
		MaxRotationAttempts: status.MaxRotationAttempts,
		RadiusKm:            status.RadiusKm,
		CreatedAt:           status.CreatedAt,
		CompletedAt:         status.CompletedAt,
		Queue:               queue,
	})
}

// GetActiveRequests handles GET /api/v1/delivery-requests.
// An optional builder_id query parameter scopes the listing.
func (s *Server) GetActiveRequests(ctx echo.Context) error {
	var builderID *kernel.UUID
	if raw := ctx.QueryParam("builder_id"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return badRequest(ctx, "Invalid builder ID")
		}
		builderID = &id
	}

	query, err := queries.NewGetActiveRequestsQuery(builderID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	requests, err := s.getActiveRequestsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err, "Failed to retrieve active requests")
	}

	response := make([]ActiveRequest, len(requests))
	for i, deliveryRequest := range requests {
		response[i] = ActiveRequest{
			RequestID:       deliveryRequest.ID.Bytes(),
			BuilderID:       deliveryRequest.BuilderID.Bytes(),
			Material:        deliveryRequest.Material,
			Quantity:        deliveryRequest.Quantity,
			PickupAddress:   deliveryRequest.PickupAddress,
			DeliveryAddress: deliveryRequest.DeliveryAddress,
			AttemptsUsed:    deliveryRequest.AttemptsUsed,
			CreatedAt:       deliveryRequest.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func toGeoPoint(model *GeoPointModel) (*kernel.GeoPoint, error) {
	if model == nil {
		return nil, nil
	}
	point, err := kernel.NewGeoPoint(model.Latitude, model.Longitude)
	if err != nil {
		return nil, err
	}
	return &point, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps application errors onto HTTP status codes.
func writeError(ctx echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound), errors.Is(err, commands.ErrRequestNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "Delivery request not found",
		})
	case errors.Is(err, errs.ErrConflict), errors.Is(err, errs.ErrVersionIsInvalid):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: fallback,
		})
	}
}
