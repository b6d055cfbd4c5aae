package http

import (
	"time"

	"orders/internal/core/domain/model/order"
	"orders/internal/generated/servers"
)

func toOrderResponses(orders []*order.Order) []servers.Order {
	response := make([]servers.Order, len(orders))
	for i, o := range orders {
		response[i] = toOrderResponse(o)
	}
	return response
}

func toOrderResponse(o *order.Order) servers.Order {
	items := o.Items()
	responseItems := make([]servers.OrderItem, len(items))
	for i, item := range items {
		responseItems[i] = servers.OrderItem{
			Id:          item.ID().Bytes(),
			ProductName: item.ProductName(),
			ProductSku:  item.ProductSku(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice().String(),
			TotalPrice:  item.TotalPrice().String(),
		}
	}

	response := servers.Order{
		Id:            o.ID().Bytes(),
		CustomerName:  o.CustomerName(),
		CustomerEmail: o.CustomerEmail(),
		OrderDate:     o.OrderDate(),
		Status:        servers.OrderStatus(o.Status().String()),
		TotalAmount:   o.TotalAmount().String(),
		Items:         responseItems,
	}

	if c := o.Confirmation(); c != nil {
		response.ConfirmedAt = timePtr(c.At)
		response.ConfirmedBy = &c.By
	}
	if c := o.Cancellation(); c != nil {
		response.CancelledAt = timePtr(c.At)
		response.CancellationReason = &c.Reason
	}

	return response
}

func timePtr(t time.Time) *time.Time {
	return &t
}
