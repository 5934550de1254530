// Package cache provides the sent-marker store that makes reminder
// delivery effectively-once per calendar day. A marker is written after a
// successful send and consulted before the next attempt; a missing or
// unreachable store degrades to at-least-once delivery, never to a missed
// reminder.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/wb-go/wbf/retry"

	"github.com/adr1ang1lbert/birth-vaccine-system/internal/model"
)

type kvStore interface {
	SetWithRetry(ctx context.Context, strategy retry.Strategy, key string, value interface{}) error
	GetWithRetry(ctx context.Context, strategy retry.Strategy, key string) (string, error)
}

// SentMarker records which (dose, reminder kind, date, channel) tuples have
// already produced a successful send.
type SentMarker struct {
	store    kvStore
	strategy retry.Strategy
}

// NewSentMarker creates a sent-marker store on top of a redis-backed
// key-value client.
func NewSentMarker(store kvStore, strategy retry.Strategy) *SentMarker {
	return &SentMarker{store: store, strategy: strategy}
}

// key embeds the calendar date, so markers from previous days are never
// consulted and need no explicit expiry.
func key(doseID, kind, channel string, day time.Time) string {
	return fmt.Sprintf("reminder:sent:%s:%s:%s:%s", doseID, kind, day.Format("2006-01-02"), channel)
}

// AlreadySent reports whether a successful send was recorded for the given
// dose, kind, day and channel.
func (m *SentMarker) AlreadySent(ctx context.Context, dose model.ScheduledDose, kind model.ReminderKind, day time.Time, ch model.Channel) (bool, error) {
	_, err := m.store.GetWithRetry(ctx, m.strategy, key(dose.ID.String(), string(kind), string(ch), day))
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read sent marker: %w", err)
	}

	return true, nil
}

// MarkSent records a successful send for the given dose, kind, day and channel.
func (m *SentMarker) MarkSent(ctx context.Context, dose model.ScheduledDose, kind model.ReminderKind, day time.Time, ch model.Channel) error {
	err := m.store.SetWithRetry(ctx, m.strategy, key(dose.ID.String(), string(kind), string(ch), day), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("write sent marker: %w", err)
	}

	return nil
}
