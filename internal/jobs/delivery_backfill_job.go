package jobs

import (
	"context"
	"log/slog"

	"terabia/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DeliveryBackfillJob periodically opens delivery jobs for orders that have
// none yet. Order creation does not open a job itself, so this sweep is what
// makes new orders visible to delivery agencies.
type DeliveryBackfillJob struct {
	handler  commands.BackfillDeliveriesCommandHandler
	cron     *cron.Cron
	schedule string
	logger   *slog.Logger
}

// NewDeliveryBackfillJob creates the backfill job with a six-field cron
// schedule.
func NewDeliveryBackfillJob(
	handler commands.BackfillDeliveriesCommandHandler,
	schedule string,
	logger *slog.Logger,
) *DeliveryBackfillJob {
	return &DeliveryBackfillJob{
		handler:  handler,
		cron:     cron.New(cron.WithSeconds()),
		schedule: schedule,
		logger:   logger.With("component", "delivery_backfill_job"),
	}
}

// Start schedules the backfill sweep.
func (j *DeliveryBackfillJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewBackfillDeliveriesCommand()

		created, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Delivery backfill job failed", "error", handleErr)
			return
		}
		if created > 0 {
			j.logger.InfoContext(ctx, "Opened delivery jobs for uncovered orders", "count", created)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delivery backfill job started", "schedule", j.schedule)
	return nil
}

// Stop stops the backfill job.
func (j *DeliveryBackfillJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Delivery backfill job stopped")
}
