package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"buildconnect/internal/core/domain/model/comm"
	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/core/domain/model/queue"
	"buildconnect/internal/core/domain/model/request"
	"buildconnect/internal/core/ports"
	"buildconnect/internal/pkg/errs"
)

var (
	// ErrRequestNotFound is returned when answering a request that does not exist.
	ErrRequestNotFound = errors.New("delivery request not found")
)

// SubmitProviderResponseCommandHandler drives the rotation state machine.
// A provider's accept ends the rotation; a reject or timeout appends the
// provider to the attempted history and either contacts the next ranked
// candidate, fails the rotation on an exhausted budget, or goes terminal
// when no eligible providers remain.
//
// Responses from anyone but the current in-flight contact, and responses
// arriving after the request went terminal, are conflict no-ops: the answer
// is logged to the feed as suspicious and a ConflictError is returned, the
// rotation state is untouched. This makes the timeout scanner safe to race
// against live provider responses.
type SubmitProviderResponseCommandHandler struct {
	uowFactory      RotationUoWFactory
	dispatcher      ports.NotificationDispatcher
	publisher       ports.EventPublisher
	responseTimeout time.Duration
	logger          *slog.Logger
}

// NewSubmitProviderResponseCommandHandler creates a handler for provider
// response processing. A non-positive responseTimeout selects the default.
func NewSubmitProviderResponseCommandHandler(
	uowFactory RotationUoWFactory,
	dispatcher ports.NotificationDispatcher,
	publisher ports.EventPublisher,
	responseTimeout time.Duration,
	logger *slog.Logger,
) SubmitProviderResponseCommandHandler {
	if responseTimeout <= 0 {
		responseTimeout = DefaultResponseTimeout
	}
	return SubmitProviderResponseCommandHandler{
		uowFactory:      uowFactory,
		dispatcher:      dispatcher,
		publisher:       publisher,
		responseTimeout: responseTimeout,
		logger:          logger,
	}
}

// Handle processes a provider's response to a rotation contact.
func (h SubmitProviderResponseCommandHandler) Handle(ctx context.Context, cmd SubmitProviderResponseCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requestRepo := uow.DeliveryRequestRepository()
	deliveryRequest, err := requestRepo.Get(ctx, cmd.RequestID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrRequestNotFound
	}
	if err != nil {
		return err
	}

	if deliveryRequest.IsTerminal() {
		return h.rejectAsConflict(ctx, uow, cmd,
			fmt.Sprintf("request already %s", deliveryRequest.Status().String()))
	}

	entry, err := uow.ProviderQueueRepository().GetContacted(ctx, cmd.RequestID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return h.rejectAsConflict(ctx, uow, cmd, "no provider is currently contacted")
	}
	if err != nil {
		return err
	}
	if !entry.ProviderID().IsEqual(cmd.ProviderID()) {
		return h.rejectAsConflict(ctx, uow, cmd, "responder is not the contacted provider")
	}

	if cmd.Action() == ActionAccept {
		return h.handleAccept(ctx, uow, cmd, deliveryRequest, entry)
	}
	return h.handleDecline(ctx, uow, cmd, deliveryRequest, entry)
}

// rejectAsConflict records the suspicious answer on the feed, commits that
// record, and returns a ConflictError. The rotation state is not modified.
func (h SubmitProviderResponseCommandHandler) rejectAsConflict(ctx context.Context,
	uow RotationUoW, cmd SubmitProviderResponseCommand, reason string) error {
	record, err := comm.NewRecord(kernel.NewUUID(), cmd.RequestID(), cmd.ProviderID(),
		comm.SenderProvider, comm.TypeDuplicateResponse,
		fmt.Sprintf("Ignored %s response: %s", cmd.Action().String(), reason),
		comm.Metadata{
			"provider_id": cmd.ProviderID().String(),
			"action":      cmd.Action().String(),
		})
	if err != nil {
		return err
	}
	if err = uow.CommunicationRepository().Add(ctx, record); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return errs.NewConflictError(reason)
}

func (h SubmitProviderResponseCommandHandler) handleAccept(ctx context.Context,
	uow RotationUoW, cmd SubmitProviderResponseCommand,
	deliveryRequest *request.DeliveryRequest, entry *queue.Entry) error {
	now := time.Now().UTC()
	if err := entry.Accept(now); err != nil {
		return err
	}
	if err := uow.ProviderQueueRepository().Update(ctx, entry); err != nil {
		return err
	}

	if err := deliveryRequest.Accept(); err != nil {
		return err
	}
	if err := uow.DeliveryRequestRepository().Update(ctx, deliveryRequest); err != nil {
		return err
	}

	if err := h.recordResponse(ctx, uow, cmd); err != nil {
		return err
	}
	err := writeSystemRecord(ctx, uow, deliveryRequest.ID(), comm.TypeRequestAccepted,
		"Delivery request accepted", comm.Metadata{
			"provider_id":   cmd.ProviderID().String(),
			"attempts_used": len(deliveryRequest.AttemptedProviders()),
		})
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	providerID := cmd.ProviderID()
	h.publishResponded(ctx, cmd)
	h.publish(ctx, ports.RotationEvent{
		EventID:    kernel.NewUUID(),
		EventType:  ports.EventRequestAccepted,
		RequestID:  deliveryRequest.ID(),
		OccurredAt: time.Now().UTC(),
		Payload:    map[string]any{"provider_id": providerID.String()},
	})
	h.dispatcher.NotifyRotationOutcome(ctx, ports.RotationOutcomeNotification{
		RequestID:  deliveryRequest.ID(),
		BuilderID:  deliveryRequest.BuilderID(),
		ProviderID: &providerID,
		Outcome:    request.StatusAccepted.String(),
		Message:    "A delivery provider accepted your request",
	})
	return nil
}

func (h SubmitProviderResponseCommandHandler) handleDecline(ctx context.Context,
	uow RotationUoW, cmd SubmitProviderResponseCommand,
	deliveryRequest *request.DeliveryRequest, entry *queue.Entry) error {
	now := time.Now().UTC()

	var err error
	if cmd.Action() == ActionTimeout {
		err = entry.Timeout(now)
	} else {
		err = entry.Reject(now)
	}
	if err != nil {
		return err
	}
	if err = uow.ProviderQueueRepository().Update(ctx, entry); err != nil {
		return err
	}

	if err = h.recordResponse(ctx, uow, cmd); err != nil {
		return err
	}

	if err = deliveryRequest.RecordAttempt(cmd.ProviderID()); err != nil {
		return err
	}

	step := rotationStep{}
	switch {
	case deliveryRequest.AttemptsExhausted():
		if err = deliveryRequest.FailRotation(); err != nil {
			return err
		}
		err = writeSystemRecord(ctx, uow, deliveryRequest.ID(), comm.TypeRotationFailed,
			"No provider accepted within the rotation attempt budget", comm.Metadata{
				"attempts_used": len(deliveryRequest.AttemptedProviders()),
			})
		if err != nil {
			return err
		}
	case deliveryRequest.AutoRotation():
		if step, err = advanceRotation(ctx, uow, deliveryRequest, h.responseTimeout); err != nil {
			return err
		}
	}

	if err = uow.DeliveryRequestRepository().Update(ctx, deliveryRequest); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publishResponded(ctx, cmd)
	h.afterDecline(ctx, deliveryRequest, step)
	return nil
}

// recordResponse appends the provider's answer to the feed.
func (h SubmitProviderResponseCommandHandler) recordResponse(ctx context.Context,
	uow RotationUoW, cmd SubmitProviderResponseCommand) error {
	metadata := comm.Metadata{
		"provider_id": cmd.ProviderID().String(),
		"action":      cmd.Action().String(),
	}
	if cmd.EstimatedCost() > 0 {
		metadata["estimated_cost"] = cmd.EstimatedCost()
	}
	if cmd.EstimatedDurationHours() > 0 {
		metadata["estimated_duration_hours"] = cmd.EstimatedDurationHours()
	}

	content := cmd.Message()
	if content == "" {
		content = fmt.Sprintf("Provider responded: %s", cmd.Action().String())
	}

	senderType := comm.SenderProvider
	senderID := cmd.ProviderID()
	if cmd.Action() == ActionTimeout {
		senderType = comm.SenderSystem
		senderID = comm.SystemSenderID()
		content = "Provider did not respond before the deadline"
	}

	record, err := comm.NewRecord(kernel.NewUUID(), cmd.RequestID(), senderID,
		senderType, comm.TypeResponseRecorded, content, metadata)
	if err != nil {
		return err
	}
	return uow.CommunicationRepository().Add(ctx, record)
}

func (h SubmitProviderResponseCommandHandler) afterDecline(ctx context.Context,
	deliveryRequest *request.DeliveryRequest, step rotationStep) {
	switch {
	case deliveryRequest.Status() == request.StatusRotationFailed:
		h.publish(ctx, ports.RotationEvent{
			EventID:    kernel.NewUUID(),
			EventType:  ports.EventRotationFailed,
			RequestID:  deliveryRequest.ID(),
			OccurredAt: time.Now().UTC(),
			Payload:    map[string]any{"attempts_used": len(deliveryRequest.AttemptedProviders())},
		})
		h.dispatcher.NotifyRotationOutcome(ctx, ports.RotationOutcomeNotification{
			RequestID: deliveryRequest.ID(),
			BuilderID: deliveryRequest.BuilderID(),
			Outcome:   request.StatusRotationFailed.String(),
			Message:   "No provider accepted your delivery request, please try again later",
		})

	case step.exhausted:
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
			Message:   "No more delivery providers are available near your pickup point",
		})

	case step.contacted != nil:
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
}

func (h SubmitProviderResponseCommandHandler) publishResponded(ctx context.Context,
	cmd SubmitProviderResponseCommand) {
	h.publish(ctx, ports.RotationEvent{
		EventID:    kernel.NewUUID(),
		EventType:  ports.EventProviderResponded,
		RequestID:  cmd.RequestID(),
		OccurredAt: time.Now().UTC(),
		Payload: map[string]any{
			"provider_id": cmd.ProviderID().String(),
			"action":      cmd.Action().String(),
		},
	})
}

func (h SubmitProviderResponseCommandHandler) publish(ctx context.Context, event ports.RotationEvent) {
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("failed to publish rotation event",
			"event_type", event.EventType,
			"request_id", event.RequestID.String(),
			"error", err)
	}
}
