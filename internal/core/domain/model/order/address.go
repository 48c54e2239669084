package order

import (
	"errors"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when an Address was not created
// through NewAddress.
var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

// Address is the delivery address snapshot captured at checkout.
// It is a value object; the customer's stored address book is a separate
// concern and may change without affecting existing orders.
type Address struct {
	street     string
	city       string
	postalCode string

	guard guard.ConstructorGuard
}

// NewAddress creates an address snapshot. Street and city are required.
func NewAddress(street, city, postalCode string) (Address, error) {
	address := Address{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		address.setStreet(street),
		address.setCity(city),
	); err != nil {
		return Address{}, err
	}

	address.postalCode = postalCode
	return address, nil
}

// Validate ensures the address was created through the constructor.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Street returns the street line of the address.
func (a Address) Street() string {
	return a.street
}

// City returns the city of the address.
func (a Address) City() string {
	return a.city
}

// PostalCode returns the postal code, possibly empty.
func (a Address) PostalCode() string {
	return a.postalCode
}

func (a *Address) setStreet(street string) error {
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	a.street = street
	return nil
}

func (a *Address) setCity(city string) error {
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}
