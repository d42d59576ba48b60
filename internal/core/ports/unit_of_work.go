package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// DeliveryRequestRepository returns a DeliveryRequestRepository bound to
	// the current transaction.
	DeliveryRequestRepository() DeliveryRequestRepository

	// ProviderQueueRepository returns a ProviderQueueRepository bound to the
	// current transaction.
	ProviderQueueRepository() ProviderQueueRepository

	// ProviderRepository returns a ProviderRepository bound to the current
	// transaction.
	ProviderRepository() ProviderRepository

	// CommunicationRepository returns a CommunicationRepository bound to the
	// current transaction.
	CommunicationRepository() CommunicationRepository

	// AccessLogRepository returns an AccessLogRepository bound to the current
	// transaction.
	AccessLogRepository() AccessLogRepository
}
