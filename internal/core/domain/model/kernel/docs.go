// Package kernel provides the core domain primitives shared by the
// fulfillment domain model.
//
// The package includes:
//   - UUID: the single normalized identifier type; parsed once at the system
//     boundary and passed by value everywhere downstream
//   - Money: an exact-cents value object for order amounts, with half-up
//     rounding when constructed from floating point input
//
// Both primitives are immutable and safe for concurrent use.
package kernel
