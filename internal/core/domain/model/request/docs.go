// Package request provides the DeliveryRequest aggregate root of the provider
// rotation protocol.
//
// The package includes:
//   - DeliveryRequest: The aggregate that owns the rotation state, the ordered
//     attempted-provider history, and the attempt budget
//   - Status: A state machine enforcing the rotation lifecycle and keeping
//     terminal statuses terminal
//   - Phase: The physical delivery phase, read-only input to the
//     driver-contact disclosure gate
//
// Key business rules:
//   - The attempted-provider history never exceeds the rotation budget
//   - Accepted, RotationFailed, NoProvidersAvailable, and Cancelled are
//     terminal: no transition succeeds from them
//   - A rejection or timeout is transient and never stored as a request
//     status; the request stays Pending until rotation terminates
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package request
