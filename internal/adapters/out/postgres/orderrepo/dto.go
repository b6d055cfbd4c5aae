// Package orderrepo persists order aggregates with GORM. An order is stored
// as one row in "orders" plus one row per item in "order_items"; totals are
// derived on load and never stored.
package orderrepo

import (
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the "orders" table row. The confirmation and cancellation
// column pairs are NULL until the corresponding transition happens.
type OrderDTO struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CustomerName       string         `gorm:"type:varchar(255);not null"`
	CustomerEmail      string         `gorm:"type:varchar(255);not null"`
	OrderDate          time.Time      `gorm:"type:timestamptz;not null;index"`
	Status             int            `gorm:"type:smallint;not null;index"`
	ConfirmedAt        *time.Time     `gorm:"type:timestamptz"`
	ConfirmedBy        *string        `gorm:"type:varchar(255)"`
	CancelledAt        *time.Time     `gorm:"type:timestamptz"`
	CancellationReason *string        `gorm:"type:text"`
	Items              []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is the "order_items" table row. Position keeps the submission order.
type OrderItemDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position    int             `gorm:"type:int;not null"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	ProductSku  string          `gorm:"type:varchar(64);not null"`
	Quantity    int             `gorm:"type:int;not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	dto := OrderDTO{
		ID:            orderID,
		CustomerName:  aggregate.CustomerName(),
		CustomerEmail: aggregate.CustomerEmail(),
		OrderDate:     aggregate.OrderDate(),
		Status:        int(aggregate.Status()),
	}

	if c := aggregate.Confirmation(); c != nil {
		dto.ConfirmedAt = &c.At
		dto.ConfirmedBy = &c.By
	}
	if c := aggregate.Cancellation(); c != nil {
		dto.CancelledAt = &c.At
		dto.CancellationReason = &c.Reason
	}

	items := aggregate.Items()
	dto.Items = make([]OrderItemDTO, 0, len(items))
	for idx, item := range items {
		dto.Items = append(dto.Items, OrderItemDTO{
			ID:          item.ID().Bytes(),
			OrderID:     orderID,
			Position:    idx,
			ProductName: item.ProductName(),
			ProductSku:  item.ProductSku(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice().Decimal(),
		})
	}

	return dto
}

// toDomain rebuilds the aggregate through RestoreOrder, so rows that break
// an order invariant are reported instead of loaded. Items must already be
// sorted by position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var confirmation *order.Confirmation
	if dto.ConfirmedAt != nil || dto.ConfirmedBy != nil {
		confirmation = &order.Confirmation{}
		if dto.ConfirmedAt != nil {
			confirmation.At = *dto.ConfirmedAt
		}
		if dto.ConfirmedBy != nil {
			confirmation.By = *dto.ConfirmedBy
		}
	}

	var cancellation *order.Cancellation
	if dto.CancelledAt != nil || dto.CancellationReason != nil {
		cancellation = &order.Cancellation{}
		if dto.CancelledAt != nil {
			cancellation.At = *dto.CancelledAt
		}
		if dto.CancellationReason != nil {
			cancellation.Reason = *dto.CancellationReason
		}
	}

	return order.RestoreOrder(
		id,
		dto.CustomerName,
		dto.CustomerEmail,
		dto.OrderDate,
		order.Status(dto.Status),
		items,
		confirmation,
		cancellation,
	)
}

func itemToDomain(dto OrderItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return nil, err
	}

	return order.NewItem(id, dto.ProductName, dto.ProductSku, dto.Quantity, unitPrice)
}
