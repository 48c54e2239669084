// Package actor carries the resolved identity attached to every transition
// call. Authentication itself is an external collaborator; the core trusts
// the identity it receives and only enforces role-based authority.
package actor

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrActorIsNotConstructed is returned when an Actor was not created
// through NewActor.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Role is the authority level of an actor.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCustomer may create orders and cancel their own.
	RoleCustomer

	// RoleStaff may accept, reject, cancel and ready orders.
	RoleStaff

	// RoleDriver may claim ready orders and advance tracking on bound ones.
	RoleDriver

	// RoleAdmin may perform any transition and manage driver approval.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleCustomer: "customer",
		RoleStaff:    "staff",
		RoleDriver:   "driver",
		RoleAdmin:    "admin",
	}
}

// String returns the wire name of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the role is one of the defined values.
func (r Role) Validate() error {
	if r == RoleUnknown {
		return errs.NewValueIsInvalidError("role is unknown")
	}
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidError("role is not a defined value")
	}
	return nil
}

// RoleFromString parses the wire representation supplied by the auth
// collaborator.
func RoleFromString(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if str == s && role != RoleUnknown {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidError("role " + s)
}

// Actor is a resolved identity: who is asking, with what authority.
type Actor struct {
	id   kernel.UUID
	role Role

	guard guard.ConstructorGuard
}

// NewActor creates an actor from a resolved identity.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}

	return Actor{id: id, role: role, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the actor was created through the constructor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// ID returns the actor's identifier.
func (a Actor) ID() kernel.UUID { return a.id }

// Role returns the actor's authority level.
func (a Actor) Role() Role { return a.role }

// Is reports whether the actor holds the given role.
func (a Actor) Is(role Role) bool { return a.role == role }
