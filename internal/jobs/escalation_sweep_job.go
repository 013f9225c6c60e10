package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// EscalationSweepJob runs the overdue-order reconciliation sweep every
// minute. The sweep catches orders whose deadline timer was lost to a
// restart, so no pending order stays unescalated past one sweep interval.
type EscalationSweepJob struct {
	handler commands.EscalateOverdueCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewEscalationSweepJob creates the sweep job over the given handler.
func NewEscalationSweepJob(handler commands.EscalateOverdueCommandHandler, logger *slog.Logger) *EscalationSweepJob {
	return &EscalationSweepJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "escalation_sweep_job"),
	}
}

// Start begins the sweep job to run once a minute.
func (j *EscalationSweepJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		escalated, handleErr := j.handler.Handle(ctx, commands.NewEscalateOverdueCommand())
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Escalation sweep failed", "error", handleErr)
			return
		}
		if escalated > 0 {
			j.logger.InfoContext(ctx, "Escalation sweep escalated overdue orders", "count", escalated)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Escalation sweep job started (running every minute)")
	return nil
}

// Stop stops the sweep job.
func (j *EscalationSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Escalation sweep job stopped")
}
