package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderOfferJob *OrderOfferJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(
	availableOrders queries.GetAvailableOrdersQueryHandler,
	availableDrivers queries.GetAvailableDriversQueryHandler,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderOfferJob: NewOrderOfferJob(availableOrders, availableDrivers, publisher, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.orderOfferJob.Start(); err != nil {
		return fmt.Errorf("failed to start order offer job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderOfferJob.Stop()
}
