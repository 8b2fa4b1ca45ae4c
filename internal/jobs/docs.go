// Package jobs runs the engine's scheduled work with github.com/robfig/cron/v3.
//
// The only job is ExpirationSweepJob. On every tick it builds a
// SweepExpirationsCommand with asOf set to the current time and hands it to the
// sweep handler, which moves overdue quotes from pending_customer to expired.
//
//	jobManager := jobs.NewJobManager(sweepHandler, cfg.SweepSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// Schedules use the six-field cron syntax (seconds first). Overlapping ticks are
// skipped while a sweep is still running. Sweep failures are logged and retried
// on the next tick.
package jobs
