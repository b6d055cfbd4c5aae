// Package commands contains the operations that change order state.
// Every command follows the same pattern: a validated command value, a handler
// that opens a unit of work, loads or creates the aggregate, applies the
// domain operation and commits.
package commands

import (
	"context"
	"time"

	"orders/internal/core/ports"
)

type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages transactions for order operations.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   repo := uow.OrderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)

// Clock returns the current instant. Handlers stamp transitions with it.
type Clock func() time.Time

// SystemClock is the Clock used outside of tests. It keeps microsecond
// precision, the resolution PostgreSQL stores.
func SystemClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func clockOrDefault(clock Clock) Clock {
	if clock == nil {
		return SystemClock
	}
	return clock
}
