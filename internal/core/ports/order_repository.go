// Package ports defines the contracts between the order lifecycle core and
// the infrastructure that stores orders and announces their changes.
package ports

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// An order is always read and written together with its items.
type OrderRepository interface {
	// GetAll returns every stored order, newest first by order date.
	// Orders with the same order date are sorted by id ascending.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// Get retrieves an order aggregate by its unique identifier.
	// Returns *errs.ObjectNotFoundError if no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Add persists a new order aggregate with all of its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update replaces the stored state of an existing order.
	// Returns *errs.ObjectNotFoundError if the order was removed meanwhile.
	Update(ctx context.Context, aggregate *order.Order) error

	// Delete removes the order and its items. It reports false when nothing was stored under id.
	Delete(ctx context.Context, id kernel.UUID) (bool, error)

	// Exists reports whether an order is stored under id.
	Exists(ctx context.Context, id kernel.UUID) (bool, error)
}
