// Package kernel provides the shared domain primitives of the order
// processing system. It implements the value objects every aggregate builds
// on, following Domain-Driven Design principles.
//
// The package includes:
//   - UUID: identifier value object with validation and comparison
//   - Money: fixed-scale, single-currency monetary amount (half-up rounding,
//     never negative)
//   - Quantity: non-negative item count
//   - OrderNumber: the ORD-YYYYMMDD-XXXXXXXX business identifier
//   - Email: normalized customer address
//
// All value objects are immutable, validate themselves at construction, and
// reject their zero value via Validate, so an unconstructed primitive can
// never leak into an aggregate or the database.
package kernel
