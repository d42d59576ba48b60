package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"buildconnect/internal/core/application/usecases/commands"
	"buildconnect/internal/core/application/usecases/queries"
	"buildconnect/internal/observability"
	"buildconnect/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// TimeoutScanJob sweeps contacted queue entries whose response deadline has
// passed and records a timeout response for each, which advances the
// rotation. Runs every 30 seconds.
//
// The sweep is safe to run on multiple nodes: a contact already answered or
// timed out by another node surfaces as a conflict and is skipped.
type TimeoutScanJob struct {
	queryHandler    queries.GetExpiredContactsQueryHandler
	responseHandler commands.SubmitProviderResponseCommandHandler
	cron            *cron.Cron
	logger          *slog.Logger
}

// NewTimeoutScanJob creates the deadline sweep job.
func NewTimeoutScanJob(
	queryHandler queries.GetExpiredContactsQueryHandler,
	responseHandler commands.SubmitProviderResponseCommandHandler,
	logger *slog.Logger,
) *TimeoutScanJob {
	return &TimeoutScanJob{
		queryHandler:    queryHandler,
		responseHandler: responseHandler,
		cron:            cron.New(cron.WithSeconds()),
		logger:          logger.With("component", "timeout_scan_job"),
	}
}

// Start begins the deadline sweep on a 30 second schedule.
func (j *TimeoutScanJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Timeout scan job started (running every 30 seconds)")
	return nil
}

// Run executes one sweep. Exported so the scan can be triggered directly.
func (j *TimeoutScanJob) Run(ctx context.Context) {
	query, err := queries.NewGetExpiredContactsQuery(time.Now().UTC())
	if err != nil {
		j.logger.ErrorContext(ctx, "Timeout scan query construction failed", "error", err)
		return
	}

	expired, err := j.queryHandler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Timeout scan failed to list expired contacts", "error", err)
		return
	}

	for _, contact := range expired {
		cmd, err := commands.NewSubmitProviderResponseCommand(
			contact.RequestID, contact.ProviderID, commands.ActionTimeout, "", 0, 0)
		if err != nil {
			j.logger.ErrorContext(ctx, "Timeout command construction failed",
				"request_id", contact.RequestID.String(), "error", err)
			continue
		}

		err = j.responseHandler.Handle(ctx, cmd)
		switch {
		case err == nil:
			observability.TimeoutsProcessedTotal.Inc()
			j.logger.InfoContext(ctx, "Provider contact timed out",
				"request_id", contact.RequestID.String(),
				"provider_id", contact.ProviderID.String(),
				"deadline", contact.ResponseDeadline)
		case errors.Is(err, errs.ErrConflict), errors.Is(err, commands.ErrRequestNotFound):
			// Already resolved elsewhere.
		default:
			j.logger.ErrorContext(ctx, "Timeout processing failed",
				"request_id", contact.RequestID.String(),
				"provider_id", contact.ProviderID.String(),
				"error", err)
		}
	}

	observability.TimeoutScansTotal.Inc()
}

// Stop stops the deadline sweep.
func (j *TimeoutScanJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Timeout scan job stopped")
}
