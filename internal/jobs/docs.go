// Package jobs provides scheduled background tasks for the parcel lifecycle
// engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic operations the engine needs.
//
// # Available Jobs
//
// 1. ProgressSweepJob - Runs every five seconds to advance vehicle routes and
// transfer trips against the wall clock
// 2. CapacityResetJob - Runs at midnight to restore every vehicle's daily
// route-second budget
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(advanceJobsHandler, resetVehiclesHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Job executions log their errors and keep the schedule; a failed sweep does
// not prevent the next one. Failed job starts stop any already running jobs.
package jobs
