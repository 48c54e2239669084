package tracking

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the physical delivery state of an order. It is a
// deliberately finer-grained vocabulary than order.Status: the order side
// answers billing questions, this side answers "where is the package".
//
// Transitions are monotonic along
//
//	Preparing ──> Ready ──> PickedUp ──> InTransit ──> Delivered
//
// moving forward only; skipping stages is allowed because driver clients do
// not always report every step. Cancelled is reachable from any non-terminal
// state. Delivered and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Preparing is the initial physical state while staff prepare the order.
	Preparing

	// Ready means the package waits for a driver to claim it.
	Ready

	// PickedUp means the bound driver has collected the package.
	PickedUp

	// InTransit means the driver is en route to the customer.
	InTransit

	// Delivered means the package reached the customer. Terminal.
	Delivered

	// Cancelled means delivery was called off. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Preparing: "Preparing",
		Ready:     "Ready",
		PickedUp:  "PickedUp",
		InTransit: "InTransit",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// rank orders the forward sequence; Cancelled sits outside it.
func (s Status) rank() int {
	switch s {
	case Preparing:
		return 1
	case Ready:
		return 2
	case PickedUp:
		return 3
	case InTransit:
		return 4
	case Delivered:
		return 5
	default:
		return 0
	}
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks that the status is one of the defined values.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidError("tracking status is Unknown")
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("tracking status is not a defined value")
	}
	return nil
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether moving to target honors monotonicity.
func (s Status) CanTransitionTo(target Status) bool {
	if s.IsTerminal() {
		return false
	}
	if target == Cancelled {
		return true
	}
	return target.rank() > s.rank()
}

// TransitionTo returns target if the move is legal, or an
// IllegalTransitionError leaving the current status untouched.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewIllegalTransitionError(s.String(), target.String())
	}
	return target, nil
}

// StatusFromString parses the wire representation used by driver clients.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"tracking status", fmt.Errorf("%q is not a known status", s))
}
