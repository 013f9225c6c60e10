package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/notifications"

	"github.com/robfig/cron/v3"
)

// ReminderJob speaks a pending-order summary to each connected session
// every fifteen minutes. The announcer's own per-session gap keeps sessions
// that just heard a summary from hearing another.
type ReminderJob struct {
	announcer *notifications.Announcer
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewReminderJob creates the reminder job over the given announcer.
func NewReminderJob(announcer *notifications.Announcer, logger *slog.Logger) *ReminderJob {
	return &ReminderJob{
		announcer: announcer,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "reminder_job"),
	}
}

// Start begins the reminder job to run every fifteen minutes.
func (j *ReminderJob) Start() error {
	_, err := j.cron.AddFunc("0 */15 * * * *", func() {
		ctx := context.Background()

		if handleErr := j.announcer.AnnouncePendingSummary(ctx, time.Now()); handleErr != nil {
			j.logger.ErrorContext(ctx, "Pending summary reminder failed", "error", handleErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reminder job started (running every 15 minutes)")
	return nil
}

// Stop stops the reminder job.
func (j *ReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Reminder job stopped")
}
