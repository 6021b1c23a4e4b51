// Package jobs provides scheduled background tasks for the order processing
// system, implemented with github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OrderAdvancementJob - Periodically sweeps every order in the configured
// source status to the configured target status in one bulk statement.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(advanceHandler, routing, jobMetrics, interval, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The advancement job runs on an "@every <interval>" schedule; the interval
// comes from configuration (ADVANCE_INTERVAL, default five minutes). The
// source and target statuses come from runtime settings and are re-read on
// every run.
//
// # Concurrency
//
// The bulk sweep takes no per-order locks and checks no versions. An operator
// update committed between loading an order and the sweep landing is silently
// overwritten. Operators are expected to point the sweep only at edges where
// unconditional advancement is acceptable.
package jobs
