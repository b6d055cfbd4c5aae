package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

// Confirmation records who confirmed an order and when.
type Confirmation struct {
	At time.Time
	By string
}

// Cancellation records when an order was cancelled and why.
type Cancellation struct {
	At     time.Time
	Reason string
}

// Order is the aggregate root of the ordering domain. It owns its items and
// is the only place where status transitions are decided.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and non-blank customer name and email
//   - Must have at least one item, with unique item identifiers
//   - TotalAmount is always the exact sum of the items' total prices
//   - Status changes only through Confirm and Cancel
//   - Confirmation and cancellation details are recorded as a unit, never partially
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	customerName  string
	customerEmail string

	// orderDate is the creation instant, stored in UTC
	orderDate time.Time

	// status represents the current state in the order lifecycle
	status Status

	// items are the order lines in the order they were submitted
	items []*Item

	// confirmation is set on Pending -> Confirmed
	confirmation *Confirmation

	// cancellation is set on the transition into Cancelled and never cleared
	cancellation *Cancellation

	guard guard.ConstructorGuard
}

// NewOrder creates a Pending order with its complete item set.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - customerName, customerEmail: customer identity (must be non-blank)
//   - orderDate: creation instant (must be non-zero; stored in UTC)
//   - items: order lines (at least one, built with NewItem)
//
// Example:
//
//	price, _ := kernel.MoneyFromString("10.50")
//	line, _ := order.NewItem(kernel.NewUUID(), "Widget", "WID-1", 2, price)
//	o, err := order.NewOrder(kernel.NewUUID(), "Ada", "ada@example.com", time.Now(), []*order.Item{line})
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(
	id kernel.UUID,
	customerName string,
	customerEmail string,
	orderDate time.Time,
	items []*Item,
) (*Order, error) {
	o := &Order{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerName(customerName),
		o.setCustomerEmail(customerEmail),
		o.setOrderDate(orderDate),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an Order from persistent storage.
// Unlike NewOrder it accepts any lifecycle status, and checks that the
// confirmation and cancellation records agree with it:
//   - Pending orders carry neither record
//   - Confirmed orders carry a confirmation and no cancellation
//   - Cancelled orders carry a cancellation
//   - Shipped and Delivered orders carry no cancellation
func RestoreOrder(
	id kernel.UUID,
	customerName string,
	customerEmail string,
	orderDate time.Time,
	status Status,
	items []*Item,
	confirmation *Confirmation,
	cancellation *Cancellation,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerName(customerName),
		o.setCustomerEmail(customerEmail),
		o.setOrderDate(orderDate),
		o.setItems(items),
		o.setStatus(status, confirmation, cancellation),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// Repositories call it before writing an aggregate.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerName() string {
	return o.customerName
}

func (o *Order) CustomerEmail() string {
	return o.customerEmail
}

// OrderDate returns the creation instant in UTC.
func (o *Order) OrderDate() time.Time {
	return o.orderDate
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Items returns the order lines in submission order.
// The returned slice is a copy; items themselves are immutable.
func (o *Order) Items() []*Item {
	items := make([]*Item, len(o.items))
	copy(items, o.items)
	return items
}

// TotalAmount returns the exact sum of every item's total price.
// It is recomputed on each call and cannot be set.
func (o *Order) TotalAmount() kernel.Money {
	total := kernel.ZeroMoney()
	for _, item := range o.items {
		total = total.Add(item.TotalPrice())
	}
	return total
}

// Confirmation returns a copy of the confirmation record, or nil if the order
// was never confirmed.
func (o *Order) Confirmation() *Confirmation {
	if o.confirmation == nil {
		return nil
	}
	c := *o.confirmation
	return &c
}

// Cancellation returns a copy of the cancellation record, or nil if the order
// is not cancelled.
func (o *Order) Cancellation() *Cancellation {
	if o.cancellation == nil {
		return nil
	}
	c := *o.cancellation
	return &c
}

// Confirm moves a Pending order to Confirmed and records the actor and time.
//
// Returns:
//   - nil on success
//   - *errs.ValueIsRequiredError if confirmedBy is blank
//   - *InvalidTransitionError if the order is not Pending
//
// On error the order is left unchanged.
func (o *Order) Confirm(confirmedBy string, at time.Time) error {
	if strings.TrimSpace(confirmedBy) == "" {
		return errs.NewValueIsRequiredError("confirmedBy")
	}
	if at.IsZero() {
		return errs.NewValueIsRequiredError("confirmedAt")
	}

	newStatus, err := o.status.Confirm()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.confirmation = &Confirmation{At: at.UTC(), By: confirmedBy}
	return nil
}

// Cancel moves a Pending or Confirmed order to Cancelled and records the
// reason and time. Cancelled is terminal.
//
// Returns:
//   - nil on success
//   - *errs.ValueIsRequiredError if reason is blank
//   - *InvalidTransitionError if the order is Shipped, Delivered or already Cancelled
//
// On error the order is left unchanged.
func (o *Order) Cancel(reason string, at time.Time) error {
	if strings.TrimSpace(reason) == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	if at.IsZero() {
		return errs.NewValueIsRequiredError("cancelledAt")
	}

	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.cancellation = &Cancellation{At: at.UTC(), Reason: reason}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerName(customerName string) error {
	if strings.TrimSpace(customerName) == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	o.customerName = customerName
	return nil
}

func (o *Order) setCustomerEmail(customerEmail string) error {
	if strings.TrimSpace(customerEmail) == "" {
		return errs.NewValueIsRequiredError("customerEmail")
	}
	o.customerEmail = customerEmail
	return nil
}

func (o *Order) setOrderDate(orderDate time.Time) error {
	if orderDate.IsZero() {
		return errs.NewValueIsRequiredError("orderDate")
	}
	o.orderDate = orderDate.UTC()
	return nil
}

// setItems requires at least one constructed item and unique item identifiers.
func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	seen := make(map[kernel.UUID]struct{}, len(items))
	for idx, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", idx), err)
		}
		if _, dup := seen[item.ID()]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d]", idx),
				fmt.Errorf("duplicate item id %s", item.ID()),
			)
		}
		seen[item.ID()] = struct{}{}
	}

	o.items = make([]*Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setStatus(status Status, confirmation *Confirmation, cancellation *Cancellation) error {
	if err := status.Validate(); err != nil {
		return err
	}

	if confirmation != nil && (confirmation.At.IsZero() || strings.TrimSpace(confirmation.By) == "") {
		return errs.NewValueIsInvalidErrorWithCause("confirmation", errors.New("time and actor must both be set"))
	}
	if cancellation != nil && (cancellation.At.IsZero() || strings.TrimSpace(cancellation.Reason) == "") {
		return errs.NewValueIsInvalidErrorWithCause("cancellation", errors.New("time and reason must both be set"))
	}

	switch {
	case status == Pending && confirmation != nil:
		return errs.NewValueIsInvalidErrorWithCause("confirmation", errors.New("Pending order cannot be confirmed"))
	case status == Confirmed && confirmation == nil:
		return errs.NewValueIsRequiredErrorWithCause("confirmation", errors.New("Confirmed order must record its confirmation"))
	case status == Cancelled && cancellation == nil:
		return errs.NewValueIsRequiredErrorWithCause("cancellation", errors.New("Cancelled order must record its cancellation"))
	case status != Cancelled && cancellation != nil:
		return errs.NewValueIsInvalidErrorWithCause(
			"cancellation",
			fmt.Errorf("%s order cannot carry a cancellation", status),
		)
	}

	o.status = status
	if confirmation != nil {
		o.confirmation = &Confirmation{At: confirmation.At.UTC(), By: confirmation.By}
	}
	if cancellation != nil {
		o.cancellation = &Cancellation{At: cancellation.At.UTC(), Reason: cancellation.Reason}
	}
	return nil
}
