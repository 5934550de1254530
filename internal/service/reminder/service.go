package reminder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/adr1ang1lbert/birth-vaccine-system/internal/model"
)

// ErrRunAborted indicates that the run could not even enumerate children.
// It is the only error a run surfaces to its trigger; everything below the
// child listing is isolated per item.
var ErrRunAborted = errors.New("reminder run aborted")

type childRepository interface {
	ListChildren(ctx context.Context) ([]model.Child, error)
	ListSchedule(ctx context.Context, childID uuid.UUID) ([]model.ScheduledDose, error)
}

type doseDispatcher interface {
	Dispatch(ctx context.Context, child model.Child, dose model.ScheduledDose, kind model.ReminderKind) []model.NotificationAttempt
}

// Service is the top-level batch orchestrator. One Run walks every child,
// evaluates every scheduled dose against a single "today", and dispatches
// the actionable ones.
type Service struct {
	repo       childRepository
	dispatcher doseDispatcher
	workers    int
}

// NewService creates the reminder run orchestrator. workers bounds the
// number of children processed concurrently; 1 means sequential.
func NewService(repo childRepository, dispatcher doseDispatcher, workers int) *Service {
	if workers < 1 {
		workers = 1
	}

	return &Service{repo: repo, dispatcher: dispatcher, workers: workers}
}

// Run executes one full reminder run for the given calendar day.
//
// It returns ErrRunAborted (wrapping the cause) when the child listing
// itself is unavailable; per-child and per-channel failures are recorded
// in the summary and never abort the run.
func (s *Service) Run(ctx context.Context, today time.Time) (model.RunSummary, error) {
	summary := model.RunSummary{StartedAt: time.Now()}

	zlog.Logger.Info().
		Str("today", today.Format("2006-01-02")).
		Msg("starting reminder run")

	children, err := s.repo.ListChildren(ctx)
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to list children, aborting run")
		return model.RunSummary{}, fmt.Errorf("%w: %w", ErrRunAborted, err)
	}

	summary.ChildrenScanned = len(children)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		jobs = make(chan model.Child)
	)

	wg.Add(s.workers)
	for i := 0; i < s.workers; i++ {
		go func() {
			defer wg.Done()

			for child := range jobs {
				s.processChild(ctx, child, today, &summary, &mu)
			}
		}()
	}

feed:
	for _, child := range children {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- child:
		}
	}
	close(jobs)
	wg.Wait()

	summary.FinishedAt = time.Now()
	summary.Status = model.RunCompleted
	if summary.ChildrenFailed > 0 || summary.NotificationsFailed > 0 {
		summary.Status = model.RunCompletedWithErrors
	}

	zlog.Logger.Info().Msg(summary.StatusLine())

	return summary, nil
}

// processChild evaluates one child's schedule and dispatches actionable
// doses, folding the outcomes into the shared summary under mu.
func (s *Service) processChild(ctx context.Context, child model.Child, today time.Time, summary *model.RunSummary, mu *sync.Mutex) {
	doses, err := s.repo.ListSchedule(ctx, child.ID)
	if err != nil {
		zlog.Logger.Error().Err(err).
			Str("child", child.ID.String()).
			Msg("failed to list schedule, skipping child")

		mu.Lock()
		summary.ChildrenFailed++
		mu.Unlock()
		return
	}

	for _, dose := range doses {
		mu.Lock()
		summary.DosesEvaluated++
		mu.Unlock()

		kind := Classify(dose.DueDate, dose.Status, today)
		if kind == model.KindNone {
			continue
		}

		zlog.Logger.Info().
			Str("child", child.ID.String()).
			Str("dose", dose.ID.String()).
			Str("vaccine", dose.Vaccine).
			Str("kind", string(kind)).
			Msg("dose needs a reminder")

		attempts := s.dispatcher.Dispatch(ctx, child, dose, kind)

		mu.Lock()
		for _, attempt := range attempts {
			switch attempt.Outcome {
			case model.OutcomeSent:
				summary.NotificationsSent++
			case model.OutcomeFailed:
				summary.NotificationsFailed++
			case model.OutcomeSkipped:
				summary.NotificationsSkipped++
			}
		}
		mu.Unlock()
	}
}
