package jobs

import (
	"context"
	"log/slog"

	"herdshare/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// RouteDensityJob periodically recomputes the density score of every active
// route. The score is a dashboard heuristic, so a five minute cadence is
// plenty.
type RouteDensityJob struct {
	handler commands.RefreshRouteDensityCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewRouteDensityJob creates a job for refreshing route density scores.
func NewRouteDensityJob(handler commands.RefreshRouteDensityCommandHandler, logger *slog.Logger) *RouteDensityJob {
	return &RouteDensityJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "route_density_job"),
	}
}

// Start begins the route density job to run every five minutes.
func (j *RouteDensityJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * *", func() {
		ctx := context.Background()

		refreshed, handleErr := j.handler.Handle(ctx)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Route density refresh failed", "error", handleErr)
			return
		}

		j.logger.DebugContext(ctx, "Route density refreshed", "routes", refreshed)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Route density job started (running every five minutes)")
	return nil
}

// Stop stops the route density job.
func (j *RouteDensityJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Route density job stopped")
}
