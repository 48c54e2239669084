package notify

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
)

type recordingDispatcher struct {
	mu     sync.Mutex
	events []notification.Event
	ctxOK  bool
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, event notification.Event) notification.DispatchReport {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	d.ctxOK = ctx.Err() == nil
	return notification.DispatchReport{EventType: event.Type()}
}

func TestAsyncPublisher_Publish(t *testing.T) {
	t.Run("should dispatch without blocking the caller", func(t *testing.T) {
		dispatcher := &recordingDispatcher{}
		publisher := NewAsyncPublisher(dispatcher, slog.Default())

		event, err := notification.NewEvent(
			notification.EventOrderPlaced,
			notification.Recipient{UserID: kernel.NewUUID()},
			kernel.NewUUID(),
			nil,
		)
		require.NoError(t, err)

		publisher.Publish(context.Background(), event)
		publisher.Wait()

		require.Len(t, dispatcher.events, 1)
		assert.Equal(t, notification.EventOrderPlaced, dispatcher.events[0].Type())
	})

	t.Run("should survive caller context cancellation", func(t *testing.T) {
		dispatcher := &recordingDispatcher{}
		publisher := NewAsyncPublisher(dispatcher, slog.Default())

		event, err := notification.NewEvent(
			notification.EventOrderCancelled,
			notification.Recipient{UserID: kernel.NewUUID()},
			kernel.NewUUID(),
			nil,
		)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		publisher.Publish(ctx, event)
		publisher.Wait()

		require.Len(t, dispatcher.events, 1)
		assert.True(t, dispatcher.ctxOK, "dispatch context must outlive the caller's")
	})
}
