package inmemory

import (
	"context"
	"errors"
	"fmt"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
)

// ErrOrderAlreadyExists is returned by Add when the id is taken.
var ErrOrderAlreadyExists = errors.New("order already exists")

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

type nopTracker struct{}

func (nopTracker) TrackAggregate(kernel.UUID, any) {}

// OrderRepository implements ports.OrderRepository over a Store.
// When bound to a unit of work it reads its own staged writes.
type OrderRepository struct {
	store   *Store
	staged  *changeSet
	tracker aggregateTracker
}

func newOrderRepository(store *Store, staged *changeSet, tracker aggregateTracker) *OrderRepository {
	return &OrderRepository{
		store:   store,
		staged:  staged,
		tracker: tracker,
	}
}

func (r *OrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	current := r.store.snapshot()
	if r.staged != nil {
		for _, id := range r.staged.keys {
			if o := r.staged.writes[id]; o != nil {
				current[id] = o
			} else {
				delete(current, id)
			}
		}
	}

	orders := make([]*order.Order, 0, len(current))
	for _, o := range current {
		c, err := cloneOrder(o)
		if err != nil {
			return nil, err
		}
		orders = append(orders, c)
	}
	sortNewestFirst(orders)

	return orders, nil
}

func (r *OrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}

	o, ok := r.lookup(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return cloneOrder(o)
}

func (r *OrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, ok := r.lookup(aggregate.ID()); ok {
		return fmt.Errorf("%w: %s", ErrOrderAlreadyExists, aggregate.ID())
	}

	if err := r.write(aggregate); err != nil {
		return err
	}
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *OrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, ok := r.lookup(aggregate.ID()); !ok {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	if err := r.write(aggregate); err != nil {
		return err
	}
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if _, ok := r.lookup(id); !ok {
		return false, nil
	}

	changes := r.changes()
	changes.put(id, nil)
	r.flush(changes)
	return true, nil
}

func (r *OrderRepository) Exists(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, ok := r.lookup(id)
	return ok, nil
}

func (r *OrderRepository) lookup(id kernel.UUID) (*order.Order, bool) {
	if r.staged != nil {
		if o, staged := r.staged.lookup(id); staged {
			return o, o != nil
		}
	}
	return r.store.get(id)
}

func (r *OrderRepository) write(aggregate *order.Order) error {
	snapshot, err := cloneOrder(aggregate)
	if err != nil {
		return err
	}
	changes := r.changes()
	changes.put(aggregate.ID(), snapshot)
	r.flush(changes)
	return nil
}

// changes returns the unit of work's change set, or a fresh one that flush
// applies immediately.
func (r *OrderRepository) changes() *changeSet {
	if r.staged != nil {
		return r.staged
	}
	return newChangeSet()
}

func (r *OrderRepository) flush(changes *changeSet) {
	if changes != r.staged {
		r.store.apply(changes)
	}
}
