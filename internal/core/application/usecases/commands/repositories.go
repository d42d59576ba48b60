// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"buildconnect/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// RequestRepoFactory provides access to the delivery request repository
	// within a transaction.
	RequestRepoFactory interface {
		DeliveryRequestRepository() ports.DeliveryRequestRepository
	}

	// QueueRepoFactory provides access to the rotation queue repository
	// within a transaction.
	QueueRepoFactory interface {
		ProviderQueueRepository() ports.ProviderQueueRepository
	}

	// ProviderRepoFactory provides access to the provider directory within
	// a transaction.
	ProviderRepoFactory interface {
		ProviderRepository() ports.ProviderRepository
	}

	// CommunicationRepoFactory provides access to the communication feed
	// within a transaction.
	CommunicationRepoFactory interface {
		CommunicationRepository() ports.CommunicationRepository
	}

	// AccessLogRepoFactory provides access to the disclosure audit log
	// within a transaction.
	AccessLogRepoFactory interface {
		AccessLogRepository() ports.AccessLogRepository
	}

	// RotationUoW manages transactions for rotation operations: creating
	// requests, recording provider responses, and cancelling. Every rotation
	// step touches the request, its queue, the provider directory, and the
	// communication feed in one transaction.
	RotationUoW interface {
		TxManager
		RequestRepoFactory
		QueueRepoFactory
		ProviderRepoFactory
		CommunicationRepoFactory
	}

	// RotationUoWFactory creates new rotation unit of work instances.
	RotationUoWFactory interface {
		Create() RotationUoW
	}

	// DisclosureUoW manages transactions for the driver contact gate. The
	// gate reads the request and appends to the audit log and feed.
	DisclosureUoW interface {
		TxManager
		RequestRepoFactory
		QueueRepoFactory
		AccessLogRepoFactory
	}

	// DisclosureUoWFactory creates new disclosure unit of work instances.
	DisclosureUoWFactory interface {
		Create() DisclosureUoW
	}
)
