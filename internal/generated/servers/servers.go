// Package servers holds the wire types and echo routing for the HTTP API
// described in api/openapi.yaml.
package servers

import (
	"fmt"
	"net/http"
	"time"

	"orders/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for OrderStatus.
const (
	Cancelled OrderStatus = "Cancelled"
	Confirmed OrderStatus = "Confirmed"
	Delivered OrderStatus = "Delivered"
	Pending   OrderStatus = "Pending"
	Shipped   OrderStatus = "Shipped"
)

// CancelOrderRequest defines model for CancelOrderRequest.
type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// ConfirmOrderRequest defines model for ConfirmOrderRequest.
type ConfirmOrderRequest struct {
	ConfirmedBy string `json:"confirmedBy" validate:"required"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Money defines model for Money.
type Money = string

// NewOrder defines model for NewOrder.
type NewOrder struct {
	CustomerEmail string         `json:"customerEmail" validate:"required,email"`
	CustomerName  string         `json:"customerName" validate:"required"`
	Items         []NewOrderItem `json:"items" validate:"required,min=1,dive"`
}

// NewOrderItem defines model for NewOrderItem.
type NewOrderItem struct {
	ProductName string `json:"productName" validate:"required"`
	ProductSku  string `json:"productSku" validate:"required"`
	Quantity    int    `json:"quantity" validate:"min=1"`
	UnitPrice   Money  `json:"unitPrice" validate:"required"`
}

// Order defines model for Order.
type Order struct {
	CancellationReason *string            `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time         `json:"cancelledAt,omitempty"`
	ConfirmedAt        *time.Time         `json:"confirmedAt,omitempty"`
	ConfirmedBy        *string            `json:"confirmedBy,omitempty"`
	CustomerEmail      string             `json:"customerEmail"`
	CustomerName       string             `json:"customerName"`
	Id                 openapi_types.UUID `json:"id"`
	Items              []OrderItem        `json:"items"`
	OrderDate          time.Time          `json:"orderDate"`
	Status             OrderStatus        `json:"status"`
	TotalAmount        Money              `json:"totalAmount"`
}

// OrderItem defines model for OrderItem.
type OrderItem struct {
	Id          openapi_types.UUID `json:"id"`
	ProductName string             `json:"productName"`
	ProductSku  string             `json:"productSku"`
	Quantity    int                `json:"quantity"`
	TotalPrice  Money              `json:"totalPrice"`
	UnitPrice   Money              `json:"unitPrice"`
}

// OrderStatus defines model for OrderStatus.
type OrderStatus string

// OrderId defines model for OrderId.
type OrderId = openapi_types.UUID

// CreateOrderJSONRequestBody defines body for CreateOrder for application/json ContentType.
type CreateOrderJSONRequestBody = NewOrder

// CancelOrderJSONRequestBody defines body for CancelOrder for application/json ContentType.
type CancelOrderJSONRequestBody = CancelOrderRequest

// ConfirmOrderJSONRequestBody defines body for ConfirmOrder for application/json ContentType.
type ConfirmOrderJSONRequestBody = ConfirmOrderRequest

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List all orders, newest first
	// (GET /api/v1/orders)
	GetOrders(ctx echo.Context) error
	// Place a new order
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// Delete an order and its items
	// (DELETE /api/v1/orders/{orderId})
	DeleteOrder(ctx echo.Context, orderId OrderId) error
	// Get one order
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderId OrderId) error
	// Cancel a Pending or Confirmed order
	// (POST /api/v1/orders/{orderId}/cancel)
	CancelOrder(ctx echo.Context, orderId OrderId) error
	// Confirm a Pending order
	// (POST /api/v1/orders/{orderId}/confirm)
	ConfirmOrder(ctx echo.Context, orderId OrderId) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// GetOrders converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrders(ctx echo.Context) error {
	return w.Handler.GetOrders(ctx)
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

// DeleteOrder converts echo context to params.
func (w *ServerInterfaceWrapper) DeleteOrder(ctx echo.Context) error {
	orderId, err := bindOrderId(ctx)
	if err != nil {
		return err
	}
	return w.Handler.DeleteOrder(ctx, orderId)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderId, err := bindOrderId(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderId)
}

// CancelOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CancelOrder(ctx echo.Context) error {
	orderId, err := bindOrderId(ctx)
	if err != nil {
		return err
	}
	return w.Handler.CancelOrder(ctx, orderId)
}

// ConfirmOrder converts echo context to params.
func (w *ServerInterfaceWrapper) ConfirmOrder(ctx echo.Context) error {
	orderId, err := bindOrderId(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ConfirmOrder(ctx, orderId)
}

func bindOrderId(ctx echo.Context) (OrderId, error) {
	var orderId OrderId

	err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return orderId, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}
	return orderId, nil
}

// EchoRouter is the subset of echo routing that RegisterHandlers needs.
// Both *echo.Echo and *echo.Group satisfy it.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the paths,
// so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/api/v1/orders", wrapper.GetOrders)
	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.DELETE(baseURL+"/api/v1/orders/:orderId", wrapper.DeleteOrder)
	router.GET(baseURL+"/api/v1/orders/:orderId", wrapper.GetOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/cancel", wrapper.CancelOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/confirm", wrapper.ConfirmOrder)
}

// GetSwagger returns the parsed OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	swagger, err := loader.LoadFromData(api.OpenAPI)
	if err != nil {
		return nil, fmt.Errorf("error loading OpenAPI document: %w", err)
	}
	return swagger, nil
}
