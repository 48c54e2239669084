// Package orderrepo provides data transfer objects and mapping functions
// for order persistence. It converts between the order aggregate and its
// relational representation, line items included.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Money amounts are stored as integer cents.
type OrderDTO struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey"`
	CustomerID     uuid.UUID     `gorm:"type:uuid;not null;index"`
	DriverID       *uuid.UUID    `gorm:"type:uuid;index"`
	Items          []LineItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Street         string        `gorm:"type:varchar(255);not null"`
	City           string        `gorm:"type:varchar(255);not null"`
	PostalCode     string        `gorm:"type:varchar(32);not null"`
	ContactPhone   string        `gorm:"type:varchar(32)"`
	ContactEmail   string        `gorm:"type:varchar(255)"`
	SubtotalCents  int64         `gorm:"not null"`
	ShippingCents  int64         `gorm:"not null"`
	TaxCents       int64         `gorm:"not null"`
	TotalCents     int64         `gorm:"not null"`
	Status         int           `gorm:"not null;index"`
	AcceptanceCode string        `gorm:"type:varchar(64)"`
	PlacedAt       time.Time     `gorm:"not null"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO represents a single order line in its own table, linked to
// the order via foreign key.
type LineItemDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Name           string    `gorm:"type:varchar(255);not null"`
	Quantity       int       `gorm:"not null"`
	UnitPriceCents int64     `gorm:"not null"`
}

// TableName overrides GORM's default naming to use "order_line_items".
func (LineItemDTO) TableName() string {
	return "order_line_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	var driverID *uuid.UUID
	if id := aggregate.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	items := make([]LineItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, LineItemDTO{
			ID:             uuid.New(),
			OrderID:        orderID,
			Name:           item.Name(),
			Quantity:       item.Quantity(),
			UnitPriceCents: item.UnitPrice().Cents(),
		})
	}

	return OrderDTO{
		ID:             orderID,
		CustomerID:     aggregate.CustomerID().Bytes(),
		DriverID:       driverID,
		Items:          items,
		Street:         aggregate.Address().Street(),
		City:           aggregate.Address().City(),
		PostalCode:     aggregate.Address().PostalCode(),
		ContactPhone:   aggregate.Contact().Phone(),
		ContactEmail:   aggregate.Contact().Email(),
		SubtotalCents:  aggregate.Subtotal().Cents(),
		ShippingCents:  aggregate.ShippingFee().Cents(),
		TaxCents:       aggregate.Tax().Cents(),
		TotalCents:     aggregate.Total().Cents(),
		Status:         int(aggregate.Status()),
		AcceptanceCode: aggregate.AcceptanceCode(),
		PlacedAt:       aggregate.PlacedAt(),
	}
}

// toDomain converts a database DTO to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDto := range dto.Items {
		unitPrice, priceErr := kernel.NewMoney(itemDto.UnitPriceCents)
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := order.NewLineItem(itemDto.Name, itemDto.Quantity, unitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	address, err := order.NewAddress(dto.Street, dto.City, dto.PostalCode)
	if err != nil {
		return nil, err
	}

	subtotal, err := kernel.NewMoney(dto.SubtotalCents)
	if err != nil {
		return nil, err
	}
	shipping, err := kernel.NewMoney(dto.ShippingCents)
	if err != nil {
		return nil, err
	}
	tax, err := kernel.NewMoney(dto.TaxCents)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(dto.TotalCents)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, customerID, items, address,
		order.NewContact(dto.ContactPhone, dto.ContactEmail),
		subtotal, shipping, tax, total,
		order.Status(dto.Status), driverID, dto.AcceptanceCode, dto.PlacedAt,
	)
}
