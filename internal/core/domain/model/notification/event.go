// Package notification defines the event and reporting types flowing
// between the order state machine and the dispatch engine. Events are
// ephemeral: durability comes from the order and tracking records, which
// can always be re-read to reconcile state.
package notification

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// EventType tags a transition event for template selection.
type EventType string

// Event types emitted by the transition handlers. Composition falls back
// to a generic template for any tag not listed here.
const (
	EventOrderPlaced    EventType = "order_placed"
	EventOrderConfirmed EventType = "order_confirmed"
	EventOrderAccepted  EventType = "order_accepted"
	EventOrderRejected  EventType = "order_rejected"
	EventOrderCancelled EventType = "order_cancelled"
	EventOrderReady     EventType = "order_ready"
	EventDriverAssigned EventType = "driver_assigned"
	EventOrderPickedUp  EventType = "order_picked_up"
	EventOrderInTransit EventType = "order_in_transit"
	EventOrderDelivered EventType = "order_delivered"
	EventDriverOffer    EventType = "driver_offer"
)

// ErrEventIsNotConstructed is returned when an Event was not created
// through NewEvent.
var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent constructor")

// Recipient is the delivery target of an event: the user identity plus the
// contact snapshot the out-of-app channels need. Phone or email may be
// empty; the corresponding channel then records a skipped attempt.
type Recipient struct {
	UserID kernel.UUID
	Phone  string
	Email  string
}

// Event is one transition observed by the notification engine. One event
// fans out into at most one delivery attempt per channel.
type Event struct {
	eventType  EventType
	recipient  Recipient
	orderID    kernel.UUID
	metadata   map[string]any
	occurredAt time.Time

	guard guard.ConstructorGuard
}

// NewEvent creates a transition event. Metadata is copied so later mutation
// by the caller cannot race the dispatch goroutines.
func NewEvent(eventType EventType, recipient Recipient, orderID kernel.UUID, metadata map[string]any) (Event, error) {
	if eventType == "" {
		return Event{}, errs.NewValueIsRequiredError("event type")
	}
	if err := errors.Join(recipient.UserID.Validate(), orderID.Validate()); err != nil {
		return Event{}, err
	}

	copied := make(map[string]any, len(metadata))
	for k, v := range metadata {
		copied[k] = v
	}

	return Event{
		eventType:  eventType,
		recipient:  recipient,
		orderID:    orderID,
		metadata:   copied,
		occurredAt: time.Now().UTC(),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the event was created through the constructor.
func (e Event) Validate() error {
	return e.guard.Validate(ErrEventIsNotConstructed)
}

// Type returns the event tag.
func (e Event) Type() EventType { return e.eventType }

// Recipient returns the delivery target.
func (e Event) Recipient() Recipient { return e.recipient }

// OrderID returns the order the event concerns.
func (e Event) OrderID() kernel.UUID { return e.orderID }

// Metadata returns the structured payload attached to the event.
func (e Event) Metadata() map[string]any { return e.metadata }

// OccurredAt returns the event generation time.
func (e Event) OccurredAt() time.Time { return e.occurredAt }
