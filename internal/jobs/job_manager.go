package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/notifications"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	escalationSweepJob *EscalationSweepJob
	reminderJob        *ReminderJob
	newOrderPollJob    *NewOrderPollJob
	orderSyncJob       *OrderSyncJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers and the announcer as dependencies to wire up job execution.
func NewJobManager(
	escalateOverdueHandler commands.EscalateOverdueCommandHandler,
	syncOrdersHandler commands.SyncOrdersCommandHandler,
	announcer *notifications.Announcer,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		escalationSweepJob: NewEscalationSweepJob(escalateOverdueHandler, logger),
		reminderJob:        NewReminderJob(announcer, logger),
		newOrderPollJob:    NewNewOrderPollJob(announcer, logger),
		orderSyncJob:       NewOrderSyncJob(syncOrdersHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start; jobs already started are stopped.
func (jm *JobManager) StartAll() error {
	started := make([]interface{ Stop() }, 0, 4)

	for _, job := range []struct {
		name  string
		start func() error
		stop  interface{ Stop() }
	}{
		{"escalation sweep", jm.escalationSweepJob.Start, jm.escalationSweepJob},
		{"reminder", jm.reminderJob.Start, jm.reminderJob},
		{"new order poll", jm.newOrderPollJob.Start, jm.newOrderPollJob},
		{"order sync", jm.orderSyncJob.Start, jm.orderSyncJob},
	} {
		if err := job.start(); err != nil {
			for _, s := range started {
				s.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", job.name, err)
		}
		started = append(started, job.stop)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderSyncJob.Stop()
	jm.newOrderPollJob.Stop()
	jm.reminderJob.Stop()
	jm.escalationSweepJob.Stop()
}
