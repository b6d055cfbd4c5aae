package commands

import (
	"errors"
	"strings"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderLine describes one requested item of a new order.
// Line values are checked when the order items are built.
type OrderLine struct {
	ProductName string
	ProductSku  string
	Quantity    int
	UnitPrice   kernel.Money
}

// CreateOrderCommand represents a request to place a new order.
//
// Example:
//
//	price := kernel.MustMoneyFromString("10.50")
//	cmd, err := NewCreateOrderCommand("Ada Lovelace", "ada@example.com", []OrderLine{
//	    {ProductName: "Widget", ProductSku: "WID-1", Quantity: 2, UnitPrice: price},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, SystemClock)
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerName  string
	customerEmail string
	lines         []OrderLine

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the customer fields and that at least one line is present.
func NewCreateOrderCommand(customerName, customerEmail string, lines []OrderLine) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerName(customerName),
		cmd.setCustomerEmail(customerEmail),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

func (c CreateOrderCommand) CustomerEmail() string {
	return c.customerEmail
}

// Lines returns a copy of the requested lines in submission order.
func (c CreateOrderCommand) Lines() []OrderLine {
	lines := make([]OrderLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c *CreateOrderCommand) setCustomerName(customerName string) error {
	if strings.TrimSpace(customerName) == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	c.customerName = customerName
	return nil
}

func (c *CreateOrderCommand) setCustomerEmail(customerEmail string) error {
	if strings.TrimSpace(customerEmail) == "" {
		return errs.NewValueIsRequiredError("customerEmail")
	}
	c.customerEmail = customerEmail
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	c.lines = make([]OrderLine, len(lines))
	copy(c.lines, lines)
	return nil
}
