package ports

import (
	"context"

	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/core/domain/model/provider"
)

// ProviderRepository defines the read contract for the delivery provider
// directory. Providers are managed by the onboarding collaborators; the
// rotation core only reads them.
type ProviderRepository interface {
	// Get retrieves a provider by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*provider.Provider, error)

	// GetAllActive retrieves all providers currently accepting work.
	GetAllActive(ctx context.Context) ([]*provider.Provider, error)
}
