// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the order lifecycle engine.
//
// # Available Jobs
//
// 1. EscalationSweepJob - Runs every minute to escalate pending orders past their acknowledgement deadline
// 2. ReminderJob - Runs every 15 minutes to speak a pending-order summary per connected session
// 3. NewOrderPollJob - Runs every 30 seconds to announce pending orders a session has not heard about yet
// 4. OrderSyncJob - Runs every 30 seconds to reconcile local storage with the external order store
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(escalateOverdueHandler, syncOrdersHandler, announcer, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - Job run failures are logged and retried on the next tick; the engine's
//     correctness never depends on a single run succeeding
//   - Failed job starts stop any already running jobs
package jobs
