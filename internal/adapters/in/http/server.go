package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/generated/servers"
	"orders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler  commands.CreateOrderCommandHandler
	confirmOrderHandler commands.ConfirmOrderCommandHandler
	cancelOrderHandler  commands.CancelOrderCommandHandler
	deleteOrderHandler  commands.DeleteOrderCommandHandler

	// Query handlers
	getOrderHandler     queries.GetOrderQueryHandler
	getAllOrdersHandler queries.GetAllOrdersQueryHandler

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	confirmOrderHandler commands.ConfirmOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getAllOrdersHandler queries.GetAllOrdersQueryHandler,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		createOrderHandler:  createOrderHandler,
		confirmOrderHandler: confirmOrderHandler,
		cancelOrderHandler:  cancelOrderHandler,
		deleteOrderHandler:  deleteOrderHandler,
		getOrderHandler:     getOrderHandler,
		getAllOrdersHandler: getAllOrdersHandler,
		logger:              logger.With("component", "http-server"),
	}
}

// GetOrders handles GET /api/v1/orders - lists every order, newest first.
func (s *Server) GetOrders(ctx echo.Context) error {
	orders, err := s.getAllOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetAllOrdersQuery())
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponses(orders))
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderID servers.OrderId) error {
	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return s.respondError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.respondError(ctx, err)
	}

	o, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(o))
}

// CreateOrder handles POST /api/v1/orders - places a new Pending order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.CreateOrderJSONRequestBody
	if err := s.bindAndValidate(ctx, &body); err != nil {
		return s.respondError(ctx, err)
	}

	lines := make([]commands.OrderLine, len(body.Items))
	for i, item := range body.Items {
		price, err := kernel.MoneyFromString(item.UnitPrice)
		if err != nil {
			return s.respondError(ctx, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d].unitPrice", i), err))
		}
		lines[i] = commands.OrderLine{
			ProductName: item.ProductName,
			ProductSku:  item.ProductSku,
			Quantity:    item.Quantity,
			UnitPrice:   price,
		}
	}

	cmd, err := commands.NewCreateOrderCommand(body.CustomerName, body.CustomerEmail, lines)
	if err != nil {
		return s.respondError(ctx, err)
	}

	o, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrderResponse(o))
}

// ConfirmOrder handles POST /api/v1/orders/{orderId}/confirm.
func (s *Server) ConfirmOrder(ctx echo.Context, orderID servers.OrderId) error {
	var body servers.ConfirmOrderJSONRequestBody
	if err := s.bindAndValidate(ctx, &body); err != nil {
		return s.respondError(ctx, err)
	}

	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewConfirmOrderCommand(id, body.ConfirmedBy)
	if err != nil {
		return s.respondError(ctx, err)
	}

	o, err := s.confirmOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(o))
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, orderID servers.OrderId) error {
	var body servers.CancelOrderJSONRequestBody
	if err := s.bindAndValidate(ctx, &body); err != nil {
		return s.respondError(ctx, err)
	}

	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(id, body.Reason)
	if err != nil {
		return s.respondError(ctx, err)
	}

	o, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(o))
}

// DeleteOrder handles DELETE /api/v1/orders/{orderId}.
func (s *Server) DeleteOrder(ctx echo.Context, orderID servers.OrderId) error {
	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewDeleteOrderCommand(id)
	if err != nil {
		return s.respondError(ctx, err)
	}

	deleted, err := s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}
	if !deleted {
		return s.respondError(ctx, errs.NewObjectNotFoundError("orderId", id))
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) bindAndValidate(ctx echo.Context, body any) error {
	if err := ctx.Bind(body); err != nil {
		return newBadRequestError("Invalid request body", err)
	}
	if err := ctx.Validate(body); err != nil {
		return newBadRequestError("Invalid request body", err)
	}
	return nil
}
