// Package jobs provides the scheduled background tasks of the coordination
// core, built on github.com/robfig/cron/v3.
package jobs

import (
	"fmt"
	"log/slog"

	"terabia/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	deliveryBackfillJob *DeliveryBackfillJob
}

// NewJobManager creates a job manager wired to the given handlers.
func NewJobManager(
	backfillHandler commands.BackfillDeliveriesCommandHandler,
	backfillSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		deliveryBackfillJob: NewDeliveryBackfillJob(backfillHandler, backfillSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.deliveryBackfillJob.Start(); err != nil {
		return fmt.Errorf("failed to start delivery backfill job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.deliveryBackfillJob.Stop()
}
