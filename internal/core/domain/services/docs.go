// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the parcel network. It implements complex
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - TransitPlanner: A domain service resolving the warehouse chain between
//     a parcel's pickup and delivery points
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
