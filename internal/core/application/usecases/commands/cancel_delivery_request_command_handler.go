package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"buildconnect/internal/core/domain/model/comm"
	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/core/ports"
	"buildconnect/internal/pkg/errs"
)

var (
	// ErrNotRequestOwner is returned when someone other than the requesting
	// builder tries to cancel.
	ErrNotRequestOwner = errors.New("only the requesting builder can cancel a delivery request")
)

// CancelDeliveryRequestCommandHandler withdraws a request from rotation.
// Only the requesting builder may cancel, and only while the request is
// non-terminal. Open queue entries (Pending or Contacted) are voided as
// Skipped so a late provider response hits the conflict path.
type CancelDeliveryRequestCommandHandler struct {
	uowFactory RotationUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCancelDeliveryRequestCommandHandler creates a handler for request
// cancellation operations.
func NewCancelDeliveryRequestCommandHandler(
	uowFactory RotationUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CancelDeliveryRequestCommandHandler {
	return CancelDeliveryRequestCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the cancellation command.
func (h CancelDeliveryRequestCommandHandler) Handle(ctx context.Context, cmd CancelDeliveryRequestCommand) error {
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

	if !deliveryRequest.BuilderID().IsEqual(cmd.BuilderID()) {
		return ErrNotRequestOwner
	}
	if deliveryRequest.IsTerminal() {
		return errs.NewConflictError("request already " + deliveryRequest.Status().String())
	}

	if err = deliveryRequest.Cancel(); err != nil {
		return err
	}

	queueRepo := uow.ProviderQueueRepository()
	entries, err := queueRepo.GetByRequest(ctx, cmd.RequestID())
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.Status().IsFinal() {
			continue
		}
		if err = entry.Skip(); err != nil {
			return err
		}
		if err = queueRepo.Update(ctx, entry); err != nil {
			return err
		}
	}

	err = writeSystemRecord(ctx, uow, deliveryRequest.ID(), comm.TypeRequestCancelled,
		"Delivery request cancelled by the builder", comm.Metadata{
			"attempts_used": len(deliveryRequest.AttemptedProviders()),
		})
	if err != nil {
		return err
	}

	if err = requestRepo.Update(ctx, deliveryRequest); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.afterCommit(ctx, deliveryRequest.ID())
	return nil
}

func (h CancelDeliveryRequestCommandHandler) afterCommit(ctx context.Context, requestID kernel.UUID) {
	event := ports.RotationEvent{
		EventID:    kernel.NewUUID(),
		EventType:  ports.EventRequestCancelled,
		RequestID:  requestID,
		OccurredAt: time.Now().UTC(),
	}
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("failed to publish rotation event",
			"event_type", event.EventType,
			"request_id", requestID.String(),
			"error", err)
	}
}
