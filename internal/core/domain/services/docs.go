// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the order management system. It implements
// complex business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - PricingEngine: A domain service computing order totals from runtime settings
//   - TransitionExecutor: A domain service enforcing and applying status changes
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
