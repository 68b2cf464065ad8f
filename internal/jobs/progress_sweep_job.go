package jobs

import (
	"context"
	"log/slog"
	"time"

	"parcelflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ProgressSweepJob drives simulated time forward. It runs the progress
// generator every five seconds, advancing every tracked vehicle route and
// transfer trip against the wall clock.
type ProgressSweepJob struct {
	handler commands.AdvanceJobsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewProgressSweepJob creates the recurring progress generator job.
func NewProgressSweepJob(handler commands.AdvanceJobsCommandHandler, logger *slog.Logger) *ProgressSweepJob {
	return &ProgressSweepJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "progress_sweep_job"),
	}
}

// Start begins the sweep, running every five seconds.
func (j *ProgressSweepJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewAdvanceJobsCommand(time.Now())
		if err != nil {
			j.logger.ErrorContext(ctx, "Failed to build sweep command", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Progress sweep finished with errors", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Progress sweep job started (running every five seconds)")
	return nil
}

// Stop stops the sweep job.
func (j *ProgressSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Progress sweep job stopped")
}
