package jobs

import (
	"context"
	"log/slog"

	"parcelflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// CapacityResetJob restores every vehicle's daily route-second budget at
// midnight, so each new day starts with a full fleet.
type CapacityResetJob struct {
	handler commands.ResetVehiclesCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewCapacityResetJob creates the nightly capacity reset job.
func NewCapacityResetJob(handler commands.ResetVehiclesCommandHandler, logger *slog.Logger) *CapacityResetJob {
	return &CapacityResetJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "capacity_reset_job"),
	}
}

// Start schedules the reset for midnight every day.
func (j *CapacityResetJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * *", func() {
		ctx := context.Background()
		cmd := commands.NewResetVehiclesCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Capacity reset job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Capacity reset job started (running at midnight)")
	return nil
}

// Stop stops the reset job.
func (j *CapacityResetJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Capacity reset job stopped")
}
