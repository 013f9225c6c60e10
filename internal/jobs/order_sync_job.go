package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderSyncJob reconciles local storage with the external order store every
// thirty seconds. Independent sessions converge through this loop.
type OrderSyncJob struct {
	handler commands.SyncOrdersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOrderSyncJob creates the sync job over the given handler.
func NewOrderSyncJob(handler commands.SyncOrdersCommandHandler, logger *slog.Logger) *OrderSyncJob {
	return &OrderSyncJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "order_sync_job"),
	}
}

// Start begins the sync job to run every thirty seconds.
func (j *OrderSyncJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()

		applied, handleErr := j.handler.Handle(ctx, commands.NewSyncOrdersCommand())
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Order sync failed", "error", handleErr)
			return
		}
		if applied > 0 {
			j.logger.InfoContext(ctx, "Order sync applied remote changes", "count", applied)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order sync job started (running every 30 seconds)")
	return nil
}

// Stop stops the sync job.
func (j *OrderSyncJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order sync job stopped")
}
