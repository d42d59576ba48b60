// Package queue provides the ProviderQueueEntry aggregate: one provider's
// position and status within one delivery request's candidate ordering.
//
// Entries are created in a batch by the queue builder and mutated only by the
// rotation controller. The single-in-flight invariant (at most one Contacted
// entry per request) is enforced at the controller level; this package
// enforces the per-entry transition rules that make it possible.
package queue
