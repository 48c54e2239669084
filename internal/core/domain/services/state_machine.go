package services

import (
	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/pkg/errs"
)

// OrderStateMachine is the transition authority. Transition legality is
// owned by the status transition tables; this service owns the other half
// of the check: whether the acting identity may request the move at all.
//
// Authority matrix:
//   - customer: cancel their own order, nothing else
//   - staff:    confirm, accept, reject, ready, cancel
//   - driver:   advance tracking on orders bound to them
//   - admin:    any transition
type OrderStateMachine struct{}

// NewOrderStateMachine creates the transition authority service.
func NewOrderStateMachine() OrderStateMachine {
	return OrderStateMachine{}
}

// AuthorizeOrderTransition checks whether act may move o to target.
// It does not check legality; the aggregate's transition table does that
// when the move is applied.
func (m OrderStateMachine) AuthorizeOrderTransition(act actor.Actor, o *order.Order, target order.Status) error {
	if err := act.Validate(); err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return err
	}

	if act.Is(actor.RoleAdmin) {
		return nil
	}

	action := "move order to " + target.String()

	switch target {
	case order.Cancelled:
		if act.Is(actor.RoleStaff) {
			return nil
		}
		if act.Is(actor.RoleCustomer) {
			if !o.CustomerID().IsEqual(act.ID()) {
				return errs.NewUnauthorizedError(act.Role().String(), "cancel another customer's order")
			}
			return nil
		}
		return errs.NewUnauthorizedError(act.Role().String(), action)

	case order.Confirmed, order.Preparing, order.Ready, order.Rejected:
		if act.Is(actor.RoleStaff) {
			return nil
		}
		return errs.NewUnauthorizedError(act.Role().String(), action)

	case order.OutForDelivery, order.Completed:
		// Driven by tracking advancement; see AuthorizeTrackingAdvance.
		if act.Is(actor.RoleStaff) || act.Is(actor.RoleDriver) {
			return nil
		}
		return errs.NewUnauthorizedError(act.Role().String(), action)

	default:
		return errs.NewUnauthorizedError(act.Role().String(), action)
	}
}

// AuthorizeTrackingAdvance checks whether act may advance tr. Staff and
// admin always may; a driver only on a record bound to their driver
// identity (actingDriverID, resolved from the actor's user account by the
// caller).
func (m OrderStateMachine) AuthorizeTrackingAdvance(
	act actor.Actor, tr *tracking.Tracking, actingDriverID *kernel.UUID,
) error {
	if err := act.Validate(); err != nil {
		return err
	}
	if err := tr.Validate(); err != nil {
		return err
	}

	if act.Is(actor.RoleAdmin) || act.Is(actor.RoleStaff) {
		return nil
	}

	if act.Is(actor.RoleDriver) {
		if actingDriverID == nil || tr.Driver() == nil || !tr.Driver().IsEqual(*actingDriverID) {
			return errs.NewUnauthorizedError(act.Role().String(), "advance tracking for an unbound order")
		}
		return nil
	}

	return errs.NewUnauthorizedError(act.Role().String(), "advance tracking")
}

// AuthorizeDriverApproval checks the admin-only driver lifecycle actions.
func (m OrderStateMachine) AuthorizeDriverApproval(act actor.Actor) error {
	if err := act.Validate(); err != nil {
		return err
	}
	if !act.Is(actor.RoleAdmin) {
		return errs.NewUnauthorizedError(act.Role().String(), "change driver approval")
	}
	return nil
}
