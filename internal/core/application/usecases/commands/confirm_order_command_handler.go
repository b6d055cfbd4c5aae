package commands

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// ConfirmOrderCommandHandler confirms Pending orders.
//
// Example:
//
//	handler := NewConfirmOrderCommandHandler(uowFactory, SystemClock)
//	confirmed, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // 404
//	case errors.Is(err, order.ErrInvalidTransition):
//	    // 409, err.Error() names the current status
//	}
type ConfirmOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
}

func NewConfirmOrderCommandHandler(uowFactory OrderUoWFactory, clock Clock) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clockOrDefault(clock),
	}
}

// Handle loads the order, applies the confirmation and stores the result.
// Nothing is written when the transition is rejected.
func (h ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.Confirm(cmd.ConfirmedBy(), h.clock()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
