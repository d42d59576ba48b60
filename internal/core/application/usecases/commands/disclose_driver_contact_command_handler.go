package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"buildconnect/internal/core/domain/model/access"
	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/core/domain/model/queue"
	"buildconnect/internal/core/ports"
	"buildconnect/internal/pkg/errs"
)

// DisclosureResult is the gate's answer. Contact is set only when Allowed;
// when withheld, Message carries the fixed builder-facing explanation and no
// contact data leaves the gate.
type DisclosureResult struct {
	Allowed bool
	Contact *ports.DriverContact
	Message string
}

// DiscloseDriverContactCommandHandler is the driver contact disclosure gate.
// It evaluates the access policy, appends exactly one audit log entry per
// invocation regardless of outcome, and only then resolves the raw contact
// through the opaque resolver. Denied callers get the fixed withheld message,
// never a hint of the underlying data.
type DiscloseDriverContactCommandHandler struct {
	uowFactory DisclosureUoWFactory
	resolver   ports.ContactResolver
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewDiscloseDriverContactCommandHandler creates a handler for the
// disclosure gate.
func NewDiscloseDriverContactCommandHandler(
	uowFactory DisclosureUoWFactory,
	resolver ports.ContactResolver,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) DiscloseDriverContactCommandHandler {
	return DiscloseDriverContactCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes a disclosure request. The audit entry is committed before
// any contact data is resolved, so a resolver failure still leaves the
// attempt on record.
func (h DiscloseDriverContactCommandHandler) Handle(ctx context.Context,
	cmd DiscloseDriverContactCommand) (DisclosureResult, error) {
	if err := cmd.Validate(); err != nil {
		return DisclosureResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DisclosureResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRequest, err := uow.DeliveryRequestRepository().Get(ctx, cmd.RequestID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return DisclosureResult{}, ErrRequestNotFound
	}
	if err != nil {
		return DisclosureResult{}, err
	}

	decision := access.CanDiscloseDriverContact(cmd.AccessorID(), cmd.AccessorRole(), deliveryRequest)

	var acceptedProviderID *kernel.UUID
	if decision.Allowed {
		acceptedProviderID, err = h.findAcceptedProvider(ctx, uow, cmd.RequestID())
		if err != nil {
			return DisclosureResult{}, err
		}
		if acceptedProviderID == nil {
			decision = access.Decision{Allowed: false, Reason: access.ReasonNoProvider}
		}
	}

	entry, err := access.NewLogEntry(kernel.NewUUID(), cmd.RequestID(), cmd.AccessorID(),
		cmd.AccessorRole(), decision.Allowed, decision.Reason, cmd.Justification())
	if err != nil {
		return DisclosureResult{}, err
	}
	if err = uow.AccessLogRepository().Add(ctx, entry); err != nil {
		return DisclosureResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return DisclosureResult{}, err
	}

	if !decision.Allowed {
		return DisclosureResult{
			Allowed: false,
			Message: access.WithheldContactMessage,
		}, nil
	}

	contact, err := h.resolver.Resolve(ctx, *acceptedProviderID)
	if err != nil {
		return DisclosureResult{}, err
	}

	h.publishViewed(ctx, cmd)
	return DisclosureResult{Allowed: true, Contact: &contact}, nil
}

// findAcceptedProvider returns the provider whose queue entry is Accepted,
// or nil when the rotation never produced one.
func (h DiscloseDriverContactCommandHandler) findAcceptedProvider(ctx context.Context,
	uow DisclosureUoW, requestID kernel.UUID) (*kernel.UUID, error) {
	entries, err := uow.ProviderQueueRepository().GetByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.Status() == queue.StatusAccepted {
			providerID := entry.ProviderID()
			return &providerID, nil
		}
	}
	return nil, nil
}

func (h DiscloseDriverContactCommandHandler) publishViewed(ctx context.Context,
	cmd DiscloseDriverContactCommand) {
	event := ports.RotationEvent{
		EventID:    kernel.NewUUID(),
		EventType:  ports.EventDriverContactViewed,
		RequestID:  cmd.RequestID(),
		OccurredAt: time.Now().UTC(),
		Payload: map[string]any{
			"accessor_id":   cmd.AccessorID().String(),
			"accessor_role": cmd.AccessorRole().String(),
		},
	}
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("failed to publish rotation event",
			"event_type", event.EventType,
			"request_id", cmd.RequestID().String(),
			"error", err)
	}
}
