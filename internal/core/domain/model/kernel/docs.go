// Package kernel provides core domain primitives shared across the order board's
// domain model.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//
// These primitives enforce domain invariants at construction time, so entities
// built on top of them are always in a valid state. They are immutable and
// thread-safe, making them suitable for concurrent use.
package kernel
