// Package scheduler hosts the recurring daily trigger for the reminder
// run. The scheduled run and the on-demand HTTP trigger execute the same
// orchestrator with the same semantics.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/wb-go/wbf/zlog"

	"github.com/adr1ang1lbert/birth-vaccine-system/internal/model"
)

// runTimeout bounds one scheduled run end to end.
const runTimeout = 15 * time.Minute

type runner interface {
	Run(ctx context.Context, today time.Time) (model.RunSummary, error)
}

// Scheduler triggers one reminder run per day at a fixed wall-clock time
// in the deployment time zone.
type Scheduler struct {
	cronEngine *cron.Cron
	service    runner
	spec       string
	location   *time.Location
}

// New creates a scheduler firing at the given cron spec in the given zone.
func New(service runner, spec string, loc *time.Location) *Scheduler {
	return &Scheduler{
		cronEngine: cron.New(cron.WithLocation(loc)),
		service:    service,
		spec:       spec,
		location:   loc,
	}
}

// Start registers the daily job and starts the cron engine.
func (s *Scheduler) Start() error {
	_, err := s.cronEngine.AddFunc(s.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		// "today" is fixed once at trigger time so a run straddling
		// midnight stays consistent.
		today := time.Now().In(s.location)

		zlog.Logger.Info().
			Str("today", today.Format("2006-01-02")).
			Msg("daily reminder trigger fired")

		summary, err := s.service.Run(ctx, today)
		if err != nil {
			zlog.Logger.Error().Err(err).Msg("scheduled reminder run failed")
			return
		}

		zlog.Logger.Info().
			Int("sent", summary.NotificationsSent).
			Int("failed", summary.NotificationsFailed).
			Str("status", string(summary.Status)).
			Msg("scheduled reminder run finished")
	})
	if err != nil {
		return err
	}

	s.cronEngine.Start()
	zlog.Logger.Info().
		Str("spec", s.spec).
		Str("timezone", s.location.String()).
		Msg("reminder scheduler started")

	return nil
}

// Stop stops the cron engine and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	zlog.Logger.Info().Msg("reminder scheduler stopped")
}
