package order

import (
	"fmt"

	"orders/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──confirm──> Confirmed
//	   │                     │
//	   └──cancel──> Cancelled <──cancel──┘
//
// Shipped and Delivered are resting states: nothing in this service moves an
// order into or out of them, but they block confirmation and cancellation.
// Cancelled is terminal.
//
// Status values are persisted as their integer codes, so existing constants
// must never be renumbered.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of every new order.
	Pending

	// Confirmed indicates the order was accepted by an operator.
	Confirmed

	// Shipped indicates the order left the warehouse.
	Shipped

	// Delivered indicates the order reached the customer.
	Delivered

	// Cancelled is the terminal status; no further transitions are allowed.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Confirmed: "Confirmed",
		Shipped:   "Shipped",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// Validate checks that the status is one of the five lifecycle states.
// It guards values read from the database.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the symbolic name of the status, or "Unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no transition can leave this status.
func (s Status) IsTerminal() bool {
	return s == Cancelled
}

// ValidateConfirm checks, without side effects, that an order in this status may be confirmed.
// Only Pending orders can be confirmed.
func (s Status) ValidateConfirm() error {
	if s != Pending {
		return NewInvalidTransitionError(actionConfirm, s)
	}
	return nil
}

// ValidateCancel checks, without side effects, that an order in this status may be cancelled.
// Pending and Confirmed orders can be cancelled; everything else is rejected.
func (s Status) ValidateCancel() error {
	if s != Pending && s != Confirmed {
		return NewInvalidTransitionError(actionCancel, s)
	}
	return nil
}

// Confirm transitions Pending -> Confirmed.
//
// Returns:
//   - (Confirmed, nil) on a valid transition
//   - (Unknown, *InvalidTransitionError) otherwise
func (s Status) Confirm() (Status, error) {
	if err := s.ValidateConfirm(); err != nil {
		return Unknown, err
	}
	return Confirmed, nil
}

// Cancel transitions Pending or Confirmed -> Cancelled.
//
// Returns:
//   - (Cancelled, nil) on a valid transition
//   - (Unknown, *InvalidTransitionError) otherwise
func (s Status) Cancel() (Status, error) {
	if err := s.ValidateCancel(); err != nil {
		return Unknown, err
	}
	return Cancelled, nil
}
