package commands

import (
	"errors"
	"strings"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrConfirmOrderCommandIsNotConstructed = errors.New(
	"ConfirmOrderCommand must be created via NewConfirmOrderCommand constructor",
)

// ConfirmOrderCommand asks to move a Pending order to Confirmed on behalf of an actor.
type ConfirmOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	confirmedBy string

	guard guard.ConstructorGuard
}

// NewConfirmOrderCommand requires a valid order id and a non-blank actor.
func NewConfirmOrderCommand(orderID kernel.UUID, confirmedBy string) (ConfirmOrderCommand, error) {
	cmd := ConfirmOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setConfirmedBy(confirmedBy),
	); err != nil {
		return ConfirmOrderCommand{}, err
	}

	return cmd, nil
}

func (c ConfirmOrderCommand) Validate() error {
	return c.guard.Validate(ErrConfirmOrderCommandIsNotConstructed)
}

func (c ConfirmOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ConfirmOrderCommand) ConfirmedBy() string {
	return c.confirmedBy
}

func (c *ConfirmOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ConfirmOrderCommand) setConfirmedBy(confirmedBy string) error {
	if strings.TrimSpace(confirmedBy) == "" {
		return errs.NewValueIsRequiredError("confirmedBy")
	}
	c.confirmedBy = confirmedBy
	return nil
}
