// Package order provides domain entities and business logic for order
// management. It implements the Order aggregate root with line items, priced
// totals, a status history audit trail and optimistic versioning.
//
// The package includes:
//   - Order: The aggregate root owning items, totals, history and cancellation state
//   - Item: A line item with product snapshots and informative pricing figures
//   - StatusHistory: One append-only audit trail entry with duration backfill
//   - CustomerClass: The pricing class a customer belongs to
//
// Key business rules:
//   - Orders carry at least one line item at all times
//   - Every monetary figure shares the order currency
//   - Once priced, finalAmount = subtotal - discount + tax + shipping
//   - Item modification and cancellation are permitted by the current status,
//     never by the order itself
//   - Status changes append history and backfill the previous entry's duration
//
// The workflow rules themselves live in the status catalog (package status) and
// the transition executor; Order only re-checks the code-level safety net when
// a change is applied.
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
