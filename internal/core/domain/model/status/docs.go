// Package status models the runtime-configurable order workflow: the status
// catalog and the transition table.
//
// Unlike a hardcoded enum, the set of statuses and the moves between them are
// data. Operations teams add statuses, retire them, and rewire edges without a
// deploy. Code contributes only the non-negotiable safety net: final statuses
// have no outbound moves, inactive statuses accept no arrivals, and the
// entry-point statuses (PENDING, CANCELLED) can never be deactivated.
//
// A Transition carries the guards of its edge (payment, reason, approval,
// inventory); the transition executor in the services package evaluates them
// against a concrete order before any move is applied.
package status
