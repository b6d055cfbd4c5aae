package ports

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// OrderChangedPublisher announces that an order was created or changed state.
// Implementations are called after the change is committed.
type OrderChangedPublisher interface {
	PublishOrderChanged(ctx context.Context, aggregate *order.Order) error
}
