// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the marketplace. It implements business
// logic that spans aggregates and doesn't naturally belong to a single root.
//
// The package includes:
//   - ProviderQueueBuilder: ranks delivery providers for a request's rotation queue
//
// Domain services coordinate between aggregates following Domain-Driven Design
// principles.
package services
