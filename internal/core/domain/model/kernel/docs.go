// Package kernel provides shared value objects used across all aggregates
// of the marketplace domain.
//
// The package includes:
//   - UUID: An immutable identifier wrapping github.com/google/uuid
//   - GeoPoint: A validated WGS84 coordinate pair with haversine distance
//
// Value objects here are immutable, validated on construction, and safe for
// concurrent use. The zero value of each type is invalid and detectable via
// Validate, which supports safe reconstruction from persistence.
package kernel
