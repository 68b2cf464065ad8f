package jobs

import (
	"fmt"
	"log/slog"

	"parcelflow/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	progressSweepJob *ProgressSweepJob
	capacityResetJob *CapacityResetJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	advanceJobsHandler commands.AdvanceJobsCommandHandler,
	resetVehiclesHandler commands.ResetVehiclesCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		progressSweepJob: NewProgressSweepJob(advanceJobsHandler, logger),
		capacityResetJob: NewCapacityResetJob(resetVehiclesHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.capacityResetJob.Start(); err != nil {
		return fmt.Errorf("failed to start capacity reset job: %w", err)
	}

	if err := jm.progressSweepJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.capacityResetJob.Stop()
		return fmt.Errorf("failed to start progress sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.progressSweepJob.Stop()
	jm.capacityResetJob.Stop()
}
