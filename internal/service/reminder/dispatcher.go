package reminder

import (
	"context"
	"sync"
	"time"

	"github.com/wb-go/wbf/zlog"

	"github.com/adr1ang1lbert/birth-vaccine-system/internal/channel"
	"github.com/adr1ang1lbert/birth-vaccine-system/internal/model"
)

// sentMarker is the effectively-once guard consulted before each channel
// attempt and written after a successful send.
type sentMarker interface {
	AlreadySent(ctx context.Context, dose model.ScheduledDose, kind model.ReminderKind, day time.Time, ch model.Channel) (bool, error)
	MarkSent(ctx context.Context, dose model.ScheduledDose, kind model.ReminderKind, day time.Time, ch model.Channel) error
}

// Dispatcher fans one actionable (child, dose) pair out across the
// delivery channels the guardian is reachable on.
type Dispatcher struct {
	adapters []channel.Adapter
	marker   sentMarker
}

// NewDispatcher creates a dispatcher over the given channel adapters.
func NewDispatcher(adapters []channel.Adapter, marker sentMarker) *Dispatcher {
	return &Dispatcher{adapters: adapters, marker: marker}
}

// Dispatch composes the reminder for the dose and attempts delivery on
// every channel for which the guardian has a destination. Channel attempts
// run concurrently and fail independently; Dispatch itself never fails.
//
// The returned slice holds one attempt per channel with a destination; a
// child reachable on neither channel yields an empty slice.
func (d *Dispatcher) Dispatch(ctx context.Context, child model.Child, dose model.ScheduledDose, kind model.ReminderKind) []model.NotificationAttempt {
	dueDateText := ""
	if dose.DueDate != nil {
		dueDateText = dose.DueDate.Format("2006-01-02")
	}
	msg := Compose(child.Name, dose.Vaccine, dueDateText, kind)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		attempts []model.NotificationAttempt
	)

	for _, adapter := range d.adapters {
		destination := destinationFor(child, adapter.Name())
		if destination == "" {
			zlog.Logger.Debug().
				Str("child", child.ID.String()).
				Str("channel", string(adapter.Name())).
				Str("cause", string(model.CauseNoDestination)).
				Msg("channel not attempted")
			continue
		}

		wg.Add(1)
		go func(adapter channel.Adapter, destination string) {
			defer wg.Done()

			attempt := d.attempt(ctx, adapter, destination, msg, dose, kind)

			mu.Lock()
			attempts = append(attempts, attempt)
			mu.Unlock()
		}(adapter, destination)
	}
	wg.Wait()

	if len(attempts) == 0 {
		zlog.Logger.Info().
			Str("child", child.ID.String()).
			Str("dose", dose.ID.String()).
			Msg("no reachable channel for guardian")
	}

	return attempts
}

// attempt performs a single channel attempt and classifies its outcome.
func (d *Dispatcher) attempt(ctx context.Context, adapter channel.Adapter, destination string, msg model.Message, dose model.ScheduledDose, kind model.ReminderKind) model.NotificationAttempt {
	attempt := model.NotificationAttempt{
		Channel:     adapter.Name(),
		Destination: destination,
	}

	if !adapter.Configured() {
		attempt.Outcome = model.OutcomeSkipped
		attempt.Cause = model.CauseNotConfigured
		return attempt
	}

	day := dueDay(dose)
	sent, err := d.marker.AlreadySent(ctx, dose, kind, day, adapter.Name())
	if err != nil {
		// A marker outage degrades to at-least-once, never to a missed
		// reminder.
		zlog.Logger.Warn().Err(err).
			Str("dose", dose.ID.String()).
			Str("channel", string(adapter.Name())).
			Msg("sent-marker read failed, attempting anyway")
	}
	if sent {
		attempt.Outcome = model.OutcomeSkipped
		attempt.Cause = model.CauseAlreadySent
		return attempt
	}

	if err := adapter.Send(ctx, destination, msg); err != nil {
		attempt.Outcome = model.OutcomeFailed
		attempt.Cause = channel.Cause(err)

		zlog.Logger.Error().Err(err).
			Str("dose", dose.ID.String()).
			Str("channel", string(adapter.Name())).
			Str("cause", string(attempt.Cause)).
			Msg("notification failed")
		return attempt
	}

	attempt.Outcome = model.OutcomeSent
	zlog.Logger.Info().
		Str("dose", dose.ID.String()).
		Str("channel", string(adapter.Name())).
		Str("kind", string(kind)).
		Msg("notification sent")

	if err := d.marker.MarkSent(ctx, dose, kind, day, adapter.Name()); err != nil {
		zlog.Logger.Warn().Err(err).
			Str("dose", dose.ID.String()).
			Str("channel", string(adapter.Name())).
			Msg("sent-marker write failed")
	}

	return attempt
}

func destinationFor(child model.Child, ch model.Channel) string {
	switch ch {
	case model.ChannelSMS:
		return child.GuardianPhone
	case model.ChannelEmail:
		return child.GuardianEmail
	default:
		return ""
	}
}

// dueDay is the calendar date the sent marker is scoped to.
func dueDay(dose model.ScheduledDose) time.Time {
	if dose.DueDate == nil {
		return time.Time{}
	}
	return *dose.DueDate
}
