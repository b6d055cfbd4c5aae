// Package inmemory keeps orders in process memory. It backs the "memory"
// storage driver and the query tests, and behaves like the Postgres adapter:
// reads return independent copies and a unit of work applies its writes
// atomically on commit.
package inmemory

import (
	"slices"
	"sync"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// Store holds committed order snapshots.
type Store struct {
	mu     sync.RWMutex
	orders map[kernel.UUID]*order.Order
}

func NewStore() *Store {
	return &Store{
		orders: make(map[kernel.UUID]*order.Order),
	}
}

// OrderRepository returns a repository that writes straight to the store.
func (s *Store) OrderRepository() *OrderRepository {
	return newOrderRepository(s, nil, nopTracker{})
}

func (s *Store) get(id kernel.UUID) (*order.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	return o, ok
}

func (s *Store) snapshot() map[kernel.UUID]*order.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := make(map[kernel.UUID]*order.Order, len(s.orders))
	for id, o := range s.orders {
		orders[id] = o
	}
	return orders
}

// apply writes a change set under a single lock. A nil entry deletes the order.
func (s *Store) apply(changes *changeSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range changes.keys {
		if o := changes.writes[id]; o != nil {
			s.orders[id] = o
		} else {
			delete(s.orders, id)
		}
	}
}

// changeSet is the list of writes staged by a unit of work.
type changeSet struct {
	writes map[kernel.UUID]*order.Order
	keys   []kernel.UUID
}

func newChangeSet() *changeSet {
	return &changeSet{writes: make(map[kernel.UUID]*order.Order)}
}

func (c *changeSet) put(id kernel.UUID, o *order.Order) {
	if _, ok := c.writes[id]; !ok {
		c.keys = append(c.keys, id)
	}
	c.writes[id] = o
}

func (c *changeSet) lookup(id kernel.UUID) (o *order.Order, staged bool) {
	o, staged = c.writes[id]
	return o, staged
}

// cloneOrder copies the mutable parts of an order. Items are immutable and shared.
func cloneOrder(o *order.Order) (*order.Order, error) {
	return order.RestoreOrder(
		o.ID(),
		o.CustomerName(),
		o.CustomerEmail(),
		o.OrderDate(),
		o.Status(),
		o.Items(),
		o.Confirmation(),
		o.Cancellation(),
	)
}

func sortNewestFirst(orders []*order.Order) {
	slices.SortFunc(orders, func(a, b *order.Order) int {
		if c := b.OrderDate().Compare(a.OrderDate()); c != 0 {
			return c
		}
		return a.ID().Compare(b.ID())
	})
}
