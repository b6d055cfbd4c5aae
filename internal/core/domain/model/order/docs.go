// Package order provides the Order aggregate and its lifecycle rules.
//
// The package includes:
//   - Order: the aggregate root owning customer identity, items and status
//   - Item: an immutable order line with a derived total price
//   - Status: the lifecycle state machine (Pending, Confirmed, Shipped, Delivered, Cancelled)
//   - InvalidTransitionError: the error returned for transitions the state machine forbids
//
// Key business rules:
//   - An order is created Pending with at least one item
//   - Only Pending orders can be confirmed
//   - Only Pending or Confirmed orders can be cancelled, and Cancelled is terminal
//   - Totals are derived from items and never stored
package order
