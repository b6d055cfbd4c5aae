package order

import (
	"errors"
	"fmt"
)

const (
	actionConfirm = "confirm"
	actionCancel  = "cancel"
)

var (
	// ErrInvalidTransition is the sentinel wrapped by every InvalidTransitionError.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrItemIsNotConstructed is returned when an Item was not created through NewItem.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")
)

// InvalidTransitionError reports a status change the state machine does not allow.
// Current carries the status the order was in, so callers can report it.
//
// Example:
//
//	var transitionErr *order.InvalidTransitionError
//	if errors.As(err, &transitionErr) {
//	    log.Printf("order is %s", transitionErr.Current)
//	}
type InvalidTransitionError struct {
	Action  string
	Current Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given action.
func NewInvalidTransitionError(action string, current Status) *InvalidTransitionError {
	return &InvalidTransitionError{
		Action:  action,
		Current: current,
	}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("Cannot %s order with status %s", e.Action, e.Current)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
