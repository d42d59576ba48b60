package services

import (
	"sort"

	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/core/domain/model/provider"
	"buildconnect/internal/core/domain/model/request"
)

// ratingWeight converts the rating deficit (5.0 minus the provider rating)
// into kilometers for the priority score. A provider rated 4.0 competes even
// with an equally rated one two kilometers closer.
const ratingWeight = 2.0

// Candidate is a ranked provider produced by the queue builder. Position is
// 1-based, position 1 is contacted first.
type Candidate struct {
	ProviderID    kernel.UUID
	Position      int
	DistanceKm    float64
	PriorityScore float64
	Rating        float64
	// UsedFallbackCoords is set when the request carried no pickup
	// coordinates and ranking fell back to the Nairobi CBD reference point.
	UsedFallbackCoords bool
}

// ProviderQueueBuilder is a domain service that ranks delivery providers for
// a request's rotation queue.
//
// Ranking rules:
//   - Only active providers are considered
//   - Providers outside the request's search radius are excluded
//   - Providers already attempted for the request are excluded
//   - Priority score is distance in km plus a weighted rating deficit,
//     lower scores rank first
//   - Ties break on provider ID for a stable ordering
type ProviderQueueBuilder struct{}

// NewProviderQueueBuilder creates a new ProviderQueueBuilder instance.
func NewProviderQueueBuilder() ProviderQueueBuilder {
	return ProviderQueueBuilder{}
}

// Build ranks the given providers for the request and returns the ordered
// candidate list. An empty result is not an error, the rotation controller
// decides what an empty queue means for the request.
func (b ProviderQueueBuilder) Build(deliveryRequest *request.DeliveryRequest,
	providers []*provider.Provider) ([]Candidate, error) {
	if err := deliveryRequest.Validate(); err != nil {
		return nil, err
	}

	origin, usedFallback := b.resolveOrigin(deliveryRequest)
	radiusKm := deliveryRequest.RadiusKm()

	candidates := make([]Candidate, 0, len(providers))
	for _, p := range providers {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if !p.IsActive() {
			continue
		}
		if deliveryRequest.HasAttempted(p.ID()) {
			continue
		}

		distanceKm := origin.DistanceKmTo(p.Location())
		if distanceKm > radiusKm {
			continue
		}

		candidates = append(candidates, Candidate{
			ProviderID:         p.ID(),
			DistanceKm:         distanceKm,
			PriorityScore:      distanceKm + ratingWeight*(5.0-p.Rating()),
			Rating:             p.Rating(),
			UsedFallbackCoords: usedFallback,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].PriorityScore != candidates[j].PriorityScore {
			return candidates[i].PriorityScore < candidates[j].PriorityScore
		}
		return candidates[i].ProviderID.String() < candidates[j].ProviderID.String()
	})

	for i := range candidates {
		candidates[i].Position = i + 1
	}

	return candidates, nil
}

// resolveOrigin returns the point providers are ranked against. Providers
// travel to the pickup location first, so it anchors the ranking. Requests
// created without coordinates rank against the Nairobi CBD reference point
// and every candidate is flagged so callers can surface the degraded match.
func (b ProviderQueueBuilder) resolveOrigin(deliveryRequest *request.DeliveryRequest) (kernel.GeoPoint, bool) {
	if pickup := deliveryRequest.PickupLocation(); pickup != nil {
		return *pickup, false
	}
	if delivery := deliveryRequest.DeliveryLocation(); delivery != nil {
		return *delivery, false
	}
	return kernel.NairobiCBD(), true
}
