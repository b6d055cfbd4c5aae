package order

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

// MaxItemQuantity is the largest quantity a single line can carry (the quantity column is a 32-bit integer).
const MaxItemQuantity = math.MaxInt32

// Item is a line of an order. It has no lifecycle outside its parent Order
// and is immutable once constructed.
type Item struct {
	id          kernel.UUID
	productName string
	productSku  string
	quantity    int
	unitPrice   kernel.Money

	guard guard.ConstructorGuard
}

// NewItem creates a validated order line. It is used both for new orders and
// when rebuilding an order from storage.
//
// Business rules:
//   - productName and productSku must be non-blank
//   - quantity must be between 1 and MaxItemQuantity
//   - unitPrice must be greater than zero
//
// All violations are reported together through errors.Join.
func NewItem(
	id kernel.UUID,
	productName string,
	productSku string,
	quantity int,
	unitPrice kernel.Money,
) (*Item, error) {
	item := &Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setProductName(productName),
		item.setProductSku(productSku),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate ensures the item was built through NewItem.
func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i *Item) ID() kernel.UUID {
	return i.id
}

func (i *Item) ProductName() string {
	return i.productName
}

func (i *Item) ProductSku() string {
	return i.productSku
}

func (i *Item) Quantity() int {
	return i.quantity
}

func (i *Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// TotalPrice returns quantity × unitPrice. It is always derived, never stored.
func (i *Item) TotalPrice() kernel.Money {
	return i.unitPrice.Multiply(i.quantity)
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setProductName(productName string) error {
	if strings.TrimSpace(productName) == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	i.productName = productName
	return nil
}

func (i *Item) setProductSku(productSku string) error {
	if strings.TrimSpace(productSku) == "" {
		return errs.NewValueIsRequiredError("productSku")
	}
	i.productSku = productSku
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 || quantity > MaxItemQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxItemQuantity)
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice kernel.Money) error {
	if !unitPrice.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"unitPrice",
			fmt.Errorf("%s is not greater than 0", unitPrice),
		)
	}
	i.unitPrice = unitPrice
	return nil
}
