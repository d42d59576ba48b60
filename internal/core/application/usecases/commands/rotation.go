package commands

import (
	"context"
	"fmt"
	"time"

	"buildconnect/internal/core/domain/model/comm"
	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/core/domain/model/provider"
	"buildconnect/internal/core/domain/model/queue"
	"buildconnect/internal/core/domain/model/request"
	"buildconnect/internal/core/domain/services"
)

// rotationStep is the outcome of advancing a request's rotation by one step.
// Exactly one of contacted/exhausted describes the result: either a provider
// was contacted, or the eligible pool ran dry and the request went terminal.
type rotationStep struct {
	contacted *queue.Entry
	candidate services.Candidate
	provider  *provider.Provider
	exhausted bool
}

// seedQueue ranks all eligible providers for a freshly created request and
// persists the ranked queue as Pending entries. Returns the candidate list
// in rank order.
func seedQueue(ctx context.Context, uow RotationUoW,
	deliveryRequest *request.DeliveryRequest) ([]services.Candidate, error) {
	providers, err := uow.ProviderRepository().GetAllActive(ctx)
	if err != nil {
		return nil, err
	}

	candidates, err := services.NewProviderQueueBuilder().Build(deliveryRequest, providers)
	if err != nil {
		return nil, err
	}

	queueRepo := uow.ProviderQueueRepository()
	for _, candidate := range candidates {
		entry, err := queue.NewEntry(kernel.NewUUID(), deliveryRequest.ID(),
			candidate.ProviderID, candidate.Position, candidate.DistanceKm, candidate.PriorityScore)
		if err != nil {
			return nil, err
		}
		if err = queueRepo.Add(ctx, entry); err != nil {
			return nil, err
		}
	}

	if len(candidates) > 0 {
		metadata := comm.Metadata{
			"queue_size":           len(candidates),
			"radius_km":            deliveryRequest.RadiusKm(),
			"used_fallback_coords": candidates[0].UsedFallbackCoords,
		}
		content := fmt.Sprintf("Provider queue built with %d candidates", len(candidates))
		if err = writeSystemRecord(ctx, uow, deliveryRequest.ID(), comm.TypeQueueBuilt, content, metadata); err != nil {
			return nil, err
		}
	}

	return candidates, nil
}

// advanceRotation contacts the next best eligible provider for the request,
// or marks the request NoProvidersAvailable when none remain. The candidate
// pool is re-ranked on every step so rating and activity changes take effect
// mid-rotation. Attempted providers are excluded by the ranking itself.
func advanceRotation(ctx context.Context, uow RotationUoW,
	deliveryRequest *request.DeliveryRequest, responseTimeout time.Duration) (rotationStep, error) {
	providers, err := uow.ProviderRepository().GetAllActive(ctx)
	if err != nil {
		return rotationStep{}, err
	}

	candidates, err := services.NewProviderQueueBuilder().Build(deliveryRequest, providers)
	if err != nil {
		return rotationStep{}, err
	}

	if len(candidates) == 0 {
		if err = deliveryRequest.ExhaustProviders(); err != nil {
			return rotationStep{}, err
		}
		err = writeSystemRecord(ctx, uow, deliveryRequest.ID(), comm.TypeNoProviders,
			"No delivery providers available within the search radius", comm.Metadata{
				"attempts_used": len(deliveryRequest.AttemptedProviders()),
			})
		if err != nil {
			return rotationStep{}, err
		}
		return rotationStep{exhausted: true}, nil
	}

	best := candidates[0]
	entry, err := findOrAppendEntry(ctx, uow, deliveryRequest.ID(), best)
	if err != nil {
		return rotationStep{}, err
	}

	now := time.Now().UTC()
	if err = entry.Contact(now, now.Add(responseTimeout)); err != nil {
		return rotationStep{}, err
	}
	if err = uow.ProviderQueueRepository().Update(ctx, entry); err != nil {
		return rotationStep{}, err
	}

	attempt := len(deliveryRequest.AttemptedProviders()) + 1
	metadata := comm.Metadata{
		"provider_id":          best.ProviderID.String(),
		"attempt":              attempt,
		"distance_km":          best.DistanceKm,
		"priority_score":       best.PriorityScore,
		"used_fallback_coords": best.UsedFallbackCoords,
	}
	content := fmt.Sprintf("Provider contacted for attempt %d, awaiting response", attempt)
	if err = writeSystemRecord(ctx, uow, deliveryRequest.ID(), comm.TypeProviderContacted, content, metadata); err != nil {
		return rotationStep{}, err
	}

	return rotationStep{
		contacted: entry,
		candidate: best,
		provider:  findProvider(providers, best.ProviderID),
	}, nil
}

// findOrAppendEntry reuses the Pending queue entry for the candidate when the
// seeded queue already holds one, otherwise appends a fresh entry at the next
// position. Providers can enter the pool mid-rotation.
func findOrAppendEntry(ctx context.Context, uow RotationUoW, requestID kernel.UUID,
	candidate services.Candidate) (*queue.Entry, error) {
	queueRepo := uow.ProviderQueueRepository()
	entries, err := queueRepo.GetByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.ProviderID().IsEqual(candidate.ProviderID) && entry.Status() == queue.StatusPending {
			return entry, nil
		}
	}

	entry, err := queue.NewEntry(kernel.NewUUID(), requestID, candidate.ProviderID,
		len(entries)+1, candidate.DistanceKm, candidate.PriorityScore)
	if err != nil {
		return nil, err
	}
	if err = queueRepo.Add(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func findProvider(providers []*provider.Provider, id kernel.UUID) *provider.Provider {
	for _, p := range providers {
		if p.ID().IsEqual(id) {
			return p
		}
	}
	return nil
}

// writeSystemRecord appends a SenderSystem record to the request's feed
// inside the current transaction.
func writeSystemRecord(ctx context.Context, uow CommunicationRepoFactory,
	requestID kernel.UUID, messageType string, content string, metadata comm.Metadata) error {
	record, err := comm.NewRecord(kernel.NewUUID(), requestID, comm.SystemSenderID(),
		comm.SenderSystem, messageType, content, metadata)
	if err != nil {
		return err
	}
	return uow.CommunicationRepository().Add(ctx, record)
}
