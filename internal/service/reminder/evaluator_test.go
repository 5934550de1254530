package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/adr1ang1lbert/birth-vaccine-system/internal/model"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestClassify(t *testing.T) {
	today := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		dueDate *time.Time
		status  model.DoseStatus
		want    model.ReminderKind
	}{
		{"due in two days", date(2026, 9, 3), model.StatusPending, model.KindTwoDaysBefore},
		{"due today", date(2026, 9, 1), model.StatusPending, model.KindDueToday},
		{"due tomorrow", date(2026, 9, 2), model.StatusPending, model.KindNone},
		{"due in five days", date(2026, 9, 6), model.StatusPending, model.KindNone},
		{"overdue yesterday", date(2026, 8, 31), model.StatusPending, model.KindNone},
		{"long overdue", date(2026, 7, 1), model.StatusMissed, model.KindNone},
		{"no due date", nil, model.StatusPending, model.KindNone},
		{"given today", date(2026, 9, 1), model.StatusGiven, model.KindNone},
		{"given, due in two days", date(2026, 9, 3), model.StatusGiven, model.KindNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.dueDate, tt.status, today))
		})
	}
}

func TestClassify_CalendarDayTruncation(t *testing.T) {
	// A due date earlier in the day than "now" is still the same calendar
	// day and counts as due today, not overdue.
	lateEvening := time.Date(2026, 9, 1, 23, 45, 0, 0, time.UTC)
	dueMorning := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, model.KindDueToday, Classify(&dueMorning, model.StatusPending, lateEvening))

	// 47 hours ahead is still two calendar days ahead.
	due := time.Date(2026, 9, 3, 22, 0, 0, 0, time.UTC)
	earlyMorning := time.Date(2026, 9, 1, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, model.KindTwoDaysBefore, Classify(&due, model.StatusPending, earlyMorning))
}

func TestClassify_Deterministic(t *testing.T) {
	today := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	due := date(2026, 9, 3)

	first := Classify(due, model.StatusPending, today)
	second := Classify(due, model.StatusPending, today)
	assert.Equal(t, first, second)
}
