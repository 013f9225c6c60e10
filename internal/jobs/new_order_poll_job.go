package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/notifications"

	"github.com/robfig/cron/v3"
)

// NewOrderPollJob checks the pending set every thirty seconds and announces
// orders a session has not yet heard about. This is the detection path for
// orders that arrived through store sync rather than the local create path.
type NewOrderPollJob struct {
	announcer *notifications.Announcer
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewNewOrderPollJob creates the poll job over the given announcer.
func NewNewOrderPollJob(announcer *notifications.Announcer, logger *slog.Logger) *NewOrderPollJob {
	return &NewOrderPollJob{
		announcer: announcer,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "new_order_poll_job"),
	}
}

// Start begins the poll job to run every thirty seconds.
func (j *NewOrderPollJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()

		if handleErr := j.announcer.AnnounceNewOrders(ctx); handleErr != nil {
			j.logger.ErrorContext(ctx, "New order poll failed", "error", handleErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "New order poll job started (running every 30 seconds)")
	return nil
}

// Stop stops the poll job.
func (j *NewOrderPollJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "New order poll job stopped")
}
