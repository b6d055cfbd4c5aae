package commands

import (
	"context"
	"errors"
	"fmt"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
)

// CreateOrderCommandHandler places new orders in Pending status.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, SystemClock)
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	fmt.Println(created.ID(), created.TotalAmount())
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// A nil clock falls back to SystemClock.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, clock Clock) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clockOrDefault(clock),
	}
}

// Handle assigns fresh identifiers to the order and its items, stamps the
// order date and persists the aggregate. The stored order is returned.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	lines := cmd.Lines()
	items := make([]*order.Item, 0, len(lines))
	var lineErrs []error
	for idx, line := range lines {
		item, err := order.NewItem(kernel.NewUUID(), line.ProductName, line.ProductSku, line.Quantity, line.UnitPrice)
		if err != nil {
			lineErrs = append(lineErrs, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", idx), err))
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(lineErrs...); err != nil {
		return nil, err
	}

	created, err := order.NewOrder(kernel.NewUUID(), cmd.CustomerName(), cmd.CustomerEmail(), h.clock(), items)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
