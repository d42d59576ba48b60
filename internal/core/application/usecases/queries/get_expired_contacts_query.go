package queries

import (
	"errors"
	"time"

	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/pkg/guard"
)

var (
	ErrGetExpiredContactsQueryIsNotConstructed = errors.New(
		"GetExpiredContactsQuery must be created via NewGetExpiredContactsQuery constructor",
	)
)

// GetExpiredContactsQuery finds contacted providers whose response deadline
// has passed. Feeds the timeout scanner.
type GetExpiredContactsQuery struct {
	now time.Time

	guard guard.ConstructorGuard
}

// NewGetExpiredContactsQuery creates a query for expired contacts as of the
// given instant.
func NewGetExpiredContactsQuery(now time.Time) (GetExpiredContactsQuery, error) {
	if now.IsZero() {
		return GetExpiredContactsQuery{}, errors.New("now is required")
	}

	return GetExpiredContactsQuery{
		now:   now,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetExpiredContactsQuery) Validate() error {
	return q.guard.Validate(ErrGetExpiredContactsQueryIsNotConstructed)
}

// Now returns the instant deadlines are compared against.
func (q GetExpiredContactsQuery) Now() time.Time {
	return q.now
}

// GetExpiredContactsQueryResponse identifies one expired contact to time out.
type GetExpiredContactsQueryResponse struct {
	RequestID        kernel.UUID
	ProviderID       kernel.UUID
	ResponseDeadline time.Time
}
