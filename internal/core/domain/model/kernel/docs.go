// Package kernel provides core domain primitives shared across the parcel
// lifecycle model.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//   - Location: a geographic point with great-circle distance and interpolation
//
// These primitives enforce their own invariants at construction time and are
// immutable afterwards, making them safe for concurrent use.
package kernel
