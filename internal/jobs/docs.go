// Package jobs provides scheduled background tasks for the order board.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic housekeeping the settlement core needs.
//
// # Available Jobs
//
// 1. OrderExpirationJob - Periodically settles pending orders past their expiry
// and refunds the undelivered value to the owner.
//
// 2. OrderRetentionJob - Periodically deletes terminal orders older than the
// retention window, together with their delivery records.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(expireHandler, purgeHandler,
//	    sweepInterval, purgeInterval, retention, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Both jobs log failures and rely on the next run to pick up whatever the
// failed run missed. The expiry sweep is idempotent: an order another
// transition settled first is skipped, never refunded twice.
package jobs
