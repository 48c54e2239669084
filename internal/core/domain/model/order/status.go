package order

import (
	"fulfillment/internal/pkg/errs"
)

// Status represents the business lifecycle state of an order. It is distinct
// from the physical delivery state tracked by the tracking package: Status
// answers "where is this order in the business/billing flow", tracking.Status
// answers "where is the package".
//
// State transitions:
//
//	Pending ──┬──> Confirmed ──┬──> Preparing ──> Ready ──> OutForDelivery ──> Completed
//	          │                │
//	          ├──> Preparing   └──> Rejected / Cancelled
//	          └──> Rejected / Cancelled
//
// Cancelled is reachable from every non-terminal status. Completed,
// Cancelled and Rejected are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status after checkout, awaiting a staff decision.
	Pending

	// Confirmed means payment and contents were acknowledged by staff,
	// before kitchen preparation starts.
	Confirmed

	// Preparing means staff accepted the order and preparation is underway.
	Preparing

	// Ready means the order is prepared and waiting for a driver binding.
	Ready

	// OutForDelivery means a bound driver has the order in transit.
	OutForDelivery

	// Completed means the order was delivered. Terminal.
	Completed

	// Cancelled means the order was called off before completion. Terminal.
	Cancelled

	// Rejected means staff declined the order. Terminal.
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Pending:        "Pending",
		Confirmed:      "Confirmed",
		Preparing:      "Preparing",
		Ready:          "Ready",
		OutForDelivery: "OutForDelivery",
		Completed:      "Completed",
		Cancelled:      "Cancelled",
		Rejected:       "Rejected",
	}
}

// transitionTable is the single authority on legal status changes.
// Handlers never compare status strings ad hoc; they ask this table.
func transitionTable() map[Status][]Status {
	return map[Status][]Status{
		Pending:        {Confirmed, Preparing, Cancelled, Rejected},
		Confirmed:      {Preparing, Cancelled, Rejected},
		Preparing:      {Ready, Cancelled},
		Ready:          {OutForDelivery, Cancelled},
		OutForDelivery: {Completed, Cancelled},
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
		return errs.NewValueIsInvalidError("status is Unknown")
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("status is not a defined value")
	}
	return nil
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled || s == Rejected
}

// CanTransitionTo reports whether the table allows moving to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitionTable()[s] {
		if allowed == target {
			return true
		}
	}
	return false
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
