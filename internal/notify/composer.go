package notify

import (
	"fmt"

	"fulfillment/internal/core/domain/model/notification"
)

// smsSegmentLimit is one GSM segment; the composer never produces a
// multi-part SMS.
const smsSegmentLimit = 160

// ChannelPayloads holds the composed message per channel.
type ChannelPayloads struct {
	Realtime Payload
	SMS      Payload
	Email    Payload
}

// ForChannel returns the payload addressed to ch.
func (p ChannelPayloads) ForChannel(ch notification.Channel) Payload {
	switch ch {
	case notification.ChannelSMS:
		return p.SMS
	case notification.ChannelEmail:
		return p.Email
	default:
		return p.Realtime
	}
}

// template is the per-event pair of title and body. The body may embed the
// short order reference via %s.
type template struct {
	title string
	body  string
}

func templates() map[notification.EventType]template {
	return map[notification.EventType]template{
		notification.EventOrderPlaced:    {"Order placed", "Your order %s has been placed and is awaiting confirmation."},
		notification.EventOrderConfirmed: {"Order confirmed", "Your order %s has been confirmed."},
		notification.EventOrderAccepted:  {"Order accepted", "Your order %s was accepted and is being prepared."},
		notification.EventOrderRejected:  {"Order rejected", "Unfortunately your order %s was rejected."},
		notification.EventOrderCancelled: {"Order cancelled", "Your order %s has been cancelled."},
		notification.EventOrderReady:     {"Order ready", "Your order %s is ready and waiting for a driver."},
		notification.EventDriverAssigned: {"Driver assigned", "A driver has been assigned to your order %s."},
		notification.EventOrderPickedUp:  {"Order picked up", "Your order %s has been picked up."},
		notification.EventOrderInTransit: {"Order on its way", "Your order %s is on its way to you."},
		notification.EventOrderDelivered: {"Order delivered", "Your order %s has been delivered. Enjoy!"},
		notification.EventDriverOffer:    {"New delivery available", "Order %s is ready for pickup. Accept it to start the delivery."},
	}
}

// Composer renders channel payloads from transition events. It is pure:
// no clock, no I/O, safe for concurrent use.
type Composer struct{}

// NewComposer creates a composer.
func NewComposer() Composer {
	return Composer{}
}

// Compose renders the per-channel payloads for an event. Unknown event
// types fall back to a generic template rather than failing: a delivery
// with a bland message beats no delivery.
func (c Composer) Compose(event notification.Event) ChannelPayloads {
	orderRef := shortRef(event.OrderID().String())

	tpl, ok := templates()[event.Type()]
	if !ok {
		tpl = template{"Order update", "There is an update for your order %s."}
	}

	body := fmt.Sprintf(tpl.body, orderRef)

	data := map[string]any{
		"type":     string(event.Type()),
		"order_id": event.OrderID().String(),
	}
	for k, v := range event.Metadata() {
		data[k] = v
	}

	return ChannelPayloads{
		Realtime: Payload{Title: tpl.title, Body: body, Data: data},
		SMS:      Payload{Title: tpl.title, Body: clampSMS(tpl.title + ": " + body)},
		Email:    Payload{Title: tpl.title, Body: body, Data: data},
	}
}

// shortRef compacts a UUID to its first segment for human-facing text.
func shortRef(id string) string {
	for i, r := range id {
		if r == '-' {
			return id[:i]
		}
	}
	return id
}

// clampSMS bounds the text to a single SMS segment, counting runes rather
// than bytes.
func clampSMS(s string) string {
	runes := []rune(s)
	if len(runes) <= smsSegmentLimit {
		return s
	}
	return string(runes[:smsSegmentLimit-1]) + "…"
}
