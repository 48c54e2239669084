package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/ports"
)

// reofferInterval is how long an order stays quiet after it has been
// offered before the job broadcasts it again.
const reofferInterval = 5 * time.Minute

// OrderOfferJob periodically broadcasts unclaimed ready orders to the
// dispatchable driver pool so idle drivers see open work without
// polling. An order is offered at most once per reoffer interval.
type OrderOfferJob struct {
	orders    queries.GetAvailableOrdersQueryHandler
	drivers   queries.GetAvailableDriversQueryHandler
	publisher ports.EventPublisher
	cron      *cron.Cron
	logger    *slog.Logger

	mu      sync.Mutex
	offered map[string]time.Time
}

// NewOrderOfferJob creates a job that matches open work with idle
// drivers every 15 seconds.
func NewOrderOfferJob(
	orders queries.GetAvailableOrdersQueryHandler,
	drivers queries.GetAvailableDriversQueryHandler,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *OrderOfferJob {
	return &OrderOfferJob{
		orders:    orders,
		drivers:   drivers,
		publisher: publisher,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "order_offer_job"),
		offered:   make(map[string]time.Time),
	}
}

// Start begins the offer broadcast on a 15 second schedule.
func (j *OrderOfferJob) Start() error {
	_, err := j.cron.AddFunc("*/15 * * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order offer job started (running every 15 seconds)")
	return nil
}

// Stop stops the offer broadcast.
func (j *OrderOfferJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order offer job stopped")
}

func (j *OrderOfferJob) run() {
	ctx := context.Background()

	openOrders, err := j.orders.Handle(ctx, queries.NewGetAvailableOrdersQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Order offer scan failed", "error", err)
		return
	}
	if len(openOrders) == 0 {
		return
	}

	pool, err := j.drivers.Handle(ctx, queries.NewGetAvailableDriversQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Driver pool scan failed", "error", err)
		return
	}
	if len(pool) == 0 {
		return
	}

	for _, open := range openOrders {
		if !j.shouldOffer(open.ID.String()) {
			continue
		}

		for _, d := range pool {
			// Offers are addressed to the driver's account identity,
			// which is the key realtime clients subscribe under.
			event, eventErr := notification.NewEvent(
				notification.EventDriverOffer,
				notification.Recipient{UserID: d.UserID, Phone: d.Phone},
				open.ID,
				map[string]any{
					"driver_id":   d.ID.String(),
					"street":      open.Street,
					"city":        open.City,
					"total_cents": open.TotalCents,
				},
			)
			if eventErr != nil {
				j.logger.ErrorContext(ctx, "Offer event rejected", "error", eventErr)
				continue
			}
			j.publisher.Publish(ctx, event)
		}

		j.logger.InfoContext(ctx, "Order offered to drivers",
			"order_id", open.ID.String(), "drivers", len(pool))
	}
}

// shouldOffer records the offer and reports whether the order was quiet
// long enough to broadcast. Stale entries are pruned on the way.
func (j *OrderOfferJob) shouldOffer(orderID string) bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := time.Now()
	for id, at := range j.offered {
		if now.Sub(at) > 2*reofferInterval {
			delete(j.offered, id)
		}
	}

	if at, ok := j.offered[orderID]; ok && now.Sub(at) < reofferInterval {
		return false
	}

	j.offered[orderID] = now
	return true
}
