package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired      = errors.New("at least one line item is required")
	ErrItemNameIsRequired    = errors.New("line item name is required")
	ErrItemQuantityIsInvalid = errors.New("line item quantity must be greater than 0")
	ErrItemPriceIsInvalid    = errors.New("line item unit price must not be negative")
	ErrStreetIsRequired      = errors.New("street is required")
	ErrCityIsRequired        = errors.New("city is required")
	ErrShippingFeeIsInvalid  = errors.New("shipping fee must not be negative")
	ErrTaxRateIsInvalid      = errors.New("tax rate must be between 0 and 100")
)

// ItemInput is one checkout line as submitted by the customer client.
// Prices arrive as integer cents; the catalog lookup happened upstream
// and this is the immutable snapshot the order keeps.
type ItemInput struct {
	Name           string
	Quantity       int
	UnitPriceCents int64
}

// CreateOrderCommand represents a customer checkout: the line item
// snapshot, the delivery address, the notification contact, and the
// pricing inputs needed to compute the totals.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(
//	    kernel.NewUUID(), customerID,
//	    []ItemInput{{Name: "Pad Thai", Quantity: 2, UnitPriceCents: 1250}},
//	    "12 Baker Street", "London", "NW1",
//	    "+44 20 7946 0100", "alice@example.com",
//	    500, 10,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid checkout data: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	customerID       kernel.UUID
	items            []ItemInput
	street           string
	city             string
	postalCode       string
	contactPhone     string
	contactEmail     string
	shippingFeeCents int64
	taxRate          float64

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates identifiers, the line item snapshot, the address and the
// pricing inputs. Contact details are optional.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	items []ItemInput,
	street, city, postalCode string,
	contactPhone, contactEmail string,
	shippingFeeCents int64,
	taxRate float64,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		postalCode:   postalCode,
		contactPhone: contactPhone,
		contactEmail: contactEmail,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setItems(items),
		cmd.setStreet(street),
		cmd.setCity(city),
		cmd.setShippingFeeCents(shippingFeeCents),
		cmd.setTaxRate(taxRate),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the identifier of the ordering customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Items returns the checkout line item snapshot.
func (c CreateOrderCommand) Items() []ItemInput {
	return c.items
}

// Street returns the delivery street line.
func (c CreateOrderCommand) Street() string {
	return c.street
}

// City returns the delivery city.
func (c CreateOrderCommand) City() string {
	return c.city
}

// PostalCode returns the delivery postal code, possibly empty.
func (c CreateOrderCommand) PostalCode() string {
	return c.postalCode
}

// ContactPhone returns the notification phone number, possibly empty.
func (c CreateOrderCommand) ContactPhone() string {
	return c.contactPhone
}

// ContactEmail returns the notification email address, possibly empty.
func (c CreateOrderCommand) ContactEmail() string {
	return c.contactEmail
}

// ShippingFeeCents returns the shipping fee in cents.
func (c CreateOrderCommand) ShippingFeeCents() int64 {
	return c.shippingFeeCents
}

// TaxRate returns the tax rate as a percentage.
func (c CreateOrderCommand) TaxRate() float64 {
	return c.taxRate
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setItems(items []ItemInput) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for _, item := range items {
		if item.Name == "" {
			return ErrItemNameIsRequired
		}
		if item.Quantity <= 0 {
			return ErrItemQuantityIsInvalid
		}
		if item.UnitPriceCents < 0 {
			return ErrItemPriceIsInvalid
		}
	}

	c.items = items
	return nil
}

func (c *CreateOrderCommand) setStreet(street string) error {
	if street == "" {
		return ErrStreetIsRequired
	}

	c.street = street
	return nil
}

func (c *CreateOrderCommand) setCity(city string) error {
	if city == "" {
		return ErrCityIsRequired
	}

	c.city = city
	return nil
}

func (c *CreateOrderCommand) setShippingFeeCents(cents int64) error {
	if cents < 0 {
		return ErrShippingFeeIsInvalid
	}

	c.shippingFeeCents = cents
	return nil
}

func (c *CreateOrderCommand) setTaxRate(rate float64) error {
	if rate < 0 || rate > 100 {
		return ErrTaxRateIsInvalid
	}

	c.taxRate = rate
	return nil
}
