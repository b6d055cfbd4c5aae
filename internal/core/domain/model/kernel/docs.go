// Package kernel provides the value objects shared across the order domain.
//
// The package includes:
//   - UUID: identifiers for orders and order items
//   - Money: exact two-decimal amounts used for unit prices and totals
//
// Both are immutable and safe for concurrent use.
package kernel
