package notify

import (
	"context"
	"log/slog"
	"sync"

	"fulfillment/internal/core/domain/model/notification"
)

// eventDispatcher is what AsyncPublisher needs from the dispatcher.
type eventDispatcher interface {
	Dispatch(ctx context.Context, event notification.Event) notification.DispatchReport
}

// AsyncPublisher runs each dispatch in its own goroutine so command
// handlers return as soon as the state change is committed. The caller's
// context is detached before the handoff; an HTTP client hanging up must
// not cancel deliveries already in flight.
type AsyncPublisher struct {
	dispatcher eventDispatcher
	logger     *slog.Logger
	wg         sync.WaitGroup
}

// NewAsyncPublisher creates a publisher over the given dispatcher.
func NewAsyncPublisher(dispatcher eventDispatcher, logger *slog.Logger) *AsyncPublisher {
	return &AsyncPublisher{
		dispatcher: dispatcher,
		logger:     logger.With("component", "notify.publisher"),
	}
}

// Publish hands the event to the dispatcher without waiting for the
// channels to finish.
func (p *AsyncPublisher) Publish(ctx context.Context, event notification.Event) {
	detached := context.WithoutCancel(ctx)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		report := p.dispatcher.Dispatch(detached, event)
		p.logger.Info("event dispatched",
			"event_type", string(report.EventType),
			"order_id", report.OrderID,
			"sent", report.Successes(),
			"failed", report.Failures(),
			"skipped", report.Skips())
	}()
}

// Wait blocks until every in-flight dispatch has finished. Called on
// shutdown so deliveries are not cut off mid-send.
func (p *AsyncPublisher) Wait() {
	p.wg.Wait()
}
