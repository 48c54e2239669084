// Package jobs provides scheduled background tasks for the fulfillment
// system, built on github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OrderOfferJob - Runs every 15 seconds to broadcast unclaimed ready
// orders to the dispatchable driver pool.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(availableOrders, availableDrivers, publisher, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Scan failures are logged and retried on the next tick; the job never
// stops itself. Offer events ride the best-effort notification pipeline,
// so a channel failure for one driver does not affect the others.
package jobs
