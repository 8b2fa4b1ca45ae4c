package jobs

import (
	"context"
	"log/slog"
	"time"

	"docflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultSweepSchedule fires at second zero of every minute.
const DefaultSweepSchedule = "0 * * * * *"

// ExpirationSweeper is the part of commands.SweepExpirationsCommandHandler the
// job depends on.
type ExpirationSweeper interface {
	Handle(ctx context.Context, command commands.SweepExpirationsCommand) (int, error)
}

// ExpirationSweepJob expires overdue quotes on a cron schedule, with asOf set
// to the time the tick fires.
type ExpirationSweepJob struct {
	sweeper  ExpirationSweeper
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
	now      func() time.Time
}

func NewExpirationSweepJob(sweeper ExpirationSweeper, schedule string, logger *slog.Logger) *ExpirationSweepJob {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	return &ExpirationSweepJob{
		sweeper:  sweeper,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "expiration_sweep_job"),
		now:      time.Now,
	}
}

// RunOnce performs a single sweep as of now.
func (j *ExpirationSweepJob) RunOnce(ctx context.Context) (int, error) {
	cmd, err := commands.NewSweepExpirationsCommand(j.now())
	if err != nil {
		return 0, err
	}
	return j.sweeper.Handle(ctx, cmd)
}

// Start registers the sweep with the scheduler and starts it.
func (j *ExpirationSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		count, err := j.RunOnce(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Expiration sweep failed", "error", err)
			return
		}
		if count > 0 {
			j.logger.InfoContext(ctx, "Expired overdue quotes", "count", count)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Expiration sweep job started", "schedule", j.schedule)
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (j *ExpirationSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Expiration sweep job stopped")
}
