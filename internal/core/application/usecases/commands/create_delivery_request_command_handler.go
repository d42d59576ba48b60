package commands

import (
	"context"
	"log/slog"
	"time"

	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/core/domain/model/request"
	"buildconnect/internal/core/ports"
)

// DefaultResponseTimeout is how long a contacted provider has to respond
// before the timeout scanner rotates past them.
const DefaultResponseTimeout = 30 * time.Minute

// CreateDeliveryRequestCommandHandler handles the business logic for
// delivery request creation. Persists the request, seeds the ranked provider
// queue, and contacts the first candidate in one transaction. When no
// provider is eligible the request goes terminal immediately.
//
// Notifications and integration events are dispatched after the transaction
// commits and never affect the outcome.
type CreateDeliveryRequestCommandHandler struct {
	uowFactory      RotationUoWFactory
	dispatcher      ports.NotificationDispatcher
	publisher       ports.EventPublisher
	responseTimeout time.Duration
	logger          *slog.Logger
}

// NewCreateDeliveryRequestCommandHandler creates a handler for delivery
// request creation. A non-positive responseTimeout selects the default.
func NewCreateDeliveryRequestCommandHandler(
	uowFactory RotationUoWFactory,
	dispatcher ports.NotificationDispatcher,
	publisher ports.EventPublisher,
	responseTimeout time.Duration,
	logger *slog.Logger,
) CreateDeliveryRequestCommandHandler {
	if responseTimeout <= 0 {
		responseTimeout = DefaultResponseTimeout
	}
	return CreateDeliveryRequestCommandHandler{
		uowFactory:      uowFactory,
		dispatcher:      dispatcher,
		publisher:       publisher,
		responseTimeout: responseTimeout,
		logger:          logger,
	}
}

// Handle processes the delivery request creation command.
// Creates the aggregate, seeds the ranked rotation queue, and contacts the
// top candidate. When the queue comes up empty the request is stored in
// NoProvidersAvailable so the builder learns the outcome right away.
func (h CreateDeliveryRequestCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryRequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	deliveryRequest, err := request.NewDeliveryRequest(
		cmd.RequestID(), cmd.BuilderID(), nil,
		cmd.Material(), cmd.Quantity(),
		cmd.PickupAddress(), cmd.DeliveryAddress(),
		cmd.PickupLocation(), cmd.DeliveryLocation(),
		cmd.MaxRotationAttempts(), cmd.RadiusKm(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requestRepo := uow.DeliveryRequestRepository()
	if err = requestRepo.Add(ctx, deliveryRequest); err != nil {
		return err
	}

	if _, err = seedQueue(ctx, uow, deliveryRequest); err != nil {
		return err
	}

	step, err := advanceRotation(ctx, uow, deliveryRequest, h.responseTimeout)
	if err != nil {
		return err
	}

	if step.exhausted {
		if err = requestRepo.Update(ctx, deliveryRequest); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.afterCommit(ctx, deliveryRequest, step)
	return nil
}

func (h CreateDeliveryRequestCommandHandler) afterCommit(ctx context.Context,
	deliveryRequest *request.DeliveryRequest, step rotationStep) {
	h.publish(ctx, ports.RotationEvent{
		EventID:    kernel.NewUUID(),
		EventType:  ports.EventRequestCreated,
		RequestID:  deliveryRequest.ID(),
		OccurredAt: time.Now().UTC(),
		Payload: map[string]any{
			"builder_id": deliveryRequest.BuilderID().String(),
			"material":   deliveryRequest.Material(),
		},
	})

	if step.exhausted {
		h.publish(ctx, ports.RotationEvent{
			EventID:    kernel.NewUUID(),
			EventType:  ports.EventNoProviders,
			RequestID:  deliveryRequest.ID(),
			OccurredAt: time.Now().UTC(),
		})
		h.dispatcher.NotifyRotationOutcome(ctx, ports.RotationOutcomeNotification{
			RequestID: deliveryRequest.ID(),
			BuilderID: deliveryRequest.BuilderID(),
			Outcome:   request.StatusNoProvidersAvailable.String(),
			Message:   "No delivery providers are available near your pickup point right now",
		})
		return
	}

	h.publish(ctx, ports.RotationEvent{
		EventID:    kernel.NewUUID(),
		EventType:  ports.EventProviderContacted,
		RequestID:  deliveryRequest.ID(),
		OccurredAt: time.Now().UTC(),
		Payload: map[string]any{
			"provider_id": step.candidate.ProviderID.String(),
			"attempt":     len(deliveryRequest.AttemptedProviders()) + 1,
		},
	})

	if step.provider != nil {
		h.dispatcher.NotifyProviderContacted(ctx, ports.ProviderContactNotification{
			RequestID:       deliveryRequest.ID(),
			ProviderID:      step.provider.ID(),
			ProviderPhone:   step.provider.Phone(),
			Material:        deliveryRequest.Material(),
			Quantity:        deliveryRequest.Quantity(),
			PickupAddress:   deliveryRequest.PickupAddress(),
			DeliveryAddress: deliveryRequest.DeliveryAddress(),
			DistanceKm:      step.candidate.DistanceKm,
			Attempt:         len(deliveryRequest.AttemptedProviders()) + 1,
			DeadlineMinutes: int(h.responseTimeout.Minutes()),
		})
	}
}

func (h CreateDeliveryRequestCommandHandler) publish(ctx context.Context, event ports.RotationEvent) {
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("failed to publish rotation event",
			"event_type", event.EventType,
			"request_id", event.RequestID.String(),
			"error", err)
	}
}
