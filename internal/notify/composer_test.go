package notify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
)

func makeEvent(t *testing.T, eventType notification.EventType, metadata map[string]any) notification.Event {
	t.Helper()

	event, err := notification.NewEvent(
		eventType,
		notification.Recipient{UserID: kernel.NewUUID(), Phone: "+15550100", Email: "user@example.com"},
		kernel.NewUUID(),
		metadata,
	)
	require.NoError(t, err)
	return event
}

func Test_Composer_Compose(t *testing.T) {
	composer := NewComposer()

	t.Run("should render known event templates", func(t *testing.T) {
		event := makeEvent(t, notification.EventOrderDelivered, nil)

		payloads := composer.Compose(event)

		assert.Equal(t, "Order delivered", payloads.Realtime.Title)
		assert.Contains(t, payloads.Realtime.Body, "has been delivered")
		assert.Equal(t, payloads.Realtime.Title, payloads.Email.Title)
	})

	t.Run("should embed the short order reference", func(t *testing.T) {
		event := makeEvent(t, notification.EventOrderReady, nil)

		payloads := composer.Compose(event)

		shortID := strings.SplitN(event.OrderID().String(), "-", 2)[0]
		assert.Contains(t, payloads.Realtime.Body, shortID)
		assert.NotContains(t, payloads.Realtime.Body, event.OrderID().String())
	})

	t.Run("should fall back to a generic template for unknown types", func(t *testing.T) {
		event := makeEvent(t, notification.EventType("order_levitating"), nil)

		payloads := composer.Compose(event)

		assert.Equal(t, "Order update", payloads.Realtime.Title)
		assert.Contains(t, payloads.Realtime.Body, "update for your order")
	})

	t.Run("should carry event metadata in structured payloads", func(t *testing.T) {
		event := makeEvent(t, notification.EventDriverAssigned, map[string]any{"driver_name": "Sam"})

		payloads := composer.Compose(event)

		assert.Equal(t, "Sam", payloads.Realtime.Data["driver_name"])
		assert.Equal(t, string(notification.EventDriverAssigned), payloads.Realtime.Data["type"])
		assert.Equal(t, event.OrderID().String(), payloads.Email.Data["order_id"])
	})

	t.Run("should keep SMS within a single segment", func(t *testing.T) {
		event := makeEvent(t, notification.EventOrderInTransit, nil)

		payloads := composer.Compose(event)

		assert.LessOrEqual(t, len([]rune(payloads.SMS.Body)), 160)
		assert.Empty(t, payloads.SMS.Data, "SMS carries plain text only")
	})
}

func Test_clampSMS(t *testing.T) {
	t.Run("should leave short text alone", func(t *testing.T) {
		assert.Equal(t, "hello", clampSMS("hello"))
	})

	t.Run("should cut long text at the segment boundary", func(t *testing.T) {
		long := strings.Repeat("a", 200)
		clamped := clampSMS(long)
		assert.Len(t, []rune(clamped), 160)
		assert.True(t, strings.HasSuffix(clamped, "…"))
	})

	t.Run("should count runes not bytes", func(t *testing.T) {
		long := strings.Repeat("ü", 200)
		assert.Len(t, []rune(clampSMS(long)), 160)
	})
}
