package inmemory

import (
	"context"
	"errors"
	"log/slog"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

// ErrNoActiveTransaction is returned by Commit and Rollback outside Begin.
var ErrNoActiveTransaction = errors.New("no active transaction")

// UnitOfWorkFactory creates units of work over a shared Store.
type UnitOfWorkFactory struct {
	store     *Store
	publisher ports.OrderChangedPublisher
	logger    *slog.Logger
}

// NewUnitOfWorkFactory creates a factory. publisher may be nil.
func NewUnitOfWorkFactory(store *Store, publisher ports.OrderChangedPublisher, logger *slog.Logger) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		store:     store,
		publisher: publisher,
		logger:    logger.With("component", "inmemory-uow"),
	}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{
		store:     f.store,
		publisher: f.publisher,
		logger:    f.logger,
	}
}

// UnitOfWork stages writes in a change set and applies them on Commit.
type UnitOfWork struct {
	store     *Store
	publisher ports.OrderChangedPublisher
	logger    *slog.Logger

	staged  *changeSet
	tracked []*order.Order
}

// Begin starts staging. Calling it twice keeps the current change set.
func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if uow.staged == nil {
		uow.staged = newChangeSet()
		uow.tracked = nil
	}
	return nil
}

func (uow *UnitOfWork) Commit(ctx context.Context) error {
	if uow.staged == nil {
		return ErrNoActiveTransaction
	}

	uow.store.apply(uow.staged)
	uow.staged = nil

	tracked := uow.tracked
	uow.tracked = nil
	publishChanged(ctx, uow.publisher, uow.logger, tracked)
	return nil
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if uow.staged == nil {
		return ErrNoActiveTransaction
	}
	uow.staged = nil
	uow.tracked = nil
	return nil
}

// OrderRepository returns a repository bound to the staged change set, or
// to the store itself when no transaction is active.
func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	if uow.staged == nil {
		return newOrderRepository(uow.store, nil, nopTracker{})
	}
	return newOrderRepository(uow.store, uow.staged, uow)
}

// TrackAggregate remembers the latest written state of each order.
func (uow *UnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	o, ok := aggregate.(*order.Order)
	if !ok {
		return
	}
	for i, existing := range uow.tracked {
		if existing.ID().IsEqual(id) {
			uow.tracked[i] = o
			return
		}
	}
	uow.tracked = append(uow.tracked, o)
}

func publishChanged(ctx context.Context, publisher ports.OrderChangedPublisher, logger *slog.Logger, orders []*order.Order) {
	if publisher == nil {
		return
	}
	for _, o := range orders {
		if err := publisher.PublishOrderChanged(ctx, o); err != nil {
			logger.ErrorContext(ctx, "failed to publish order changed event",
				"orderId", o.ID().String(),
				"status", o.Status().String(),
				"error", err,
			)
		}
	}
}
