package queries

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// GetOrderQueryHandler reads one order through the repository.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(repo)
//	query, _ := NewGetOrderQuery(orderID)
//	found, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // no such order
//	}
type GetOrderQueryHandler struct {
	reader OrderReader
}

func NewGetOrderQueryHandler(reader OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{reader: reader}
}

// Handle returns *errs.ObjectNotFoundError when the order does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.reader.Get(ctx, query.OrderID())
}
