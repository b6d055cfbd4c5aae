package queries

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// GetAllOrdersQueryHandler lists orders through the repository.
// The result is sorted by order date descending, then by id ascending,
// and is never nil.
type GetAllOrdersQueryHandler struct {
	reader OrderReader
}

func NewGetAllOrdersQueryHandler(reader OrderReader) GetAllOrdersQueryHandler {
	return GetAllOrdersQueryHandler{reader: reader}
}

func (h GetAllOrdersQueryHandler) Handle(ctx context.Context, query GetAllOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.reader.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = make([]*order.Order, 0)
	}

	return orders, nil
}
