package reminder

import (
	"time"

	"github.com/adr1ang1lbert/birth-vaccine-system/internal/model"
)

// Classify decides whether a dose needs a reminder on the given day.
//
// The difference is computed by calendar-day truncation: a due date on the
// same calendar day as today yields zero regardless of the time of day.
// Doses already given never produce a reminder, and overdue doses do not
// re-enter the pipeline.
func Classify(dueDate *time.Time, status model.DoseStatus, today time.Time) model.ReminderKind {
	if dueDate == nil {
		return model.KindNone
	}
	if status == model.StatusGiven {
		return model.KindNone
	}

	switch daysUntil(*dueDate, today) {
	case 0:
		return model.KindDueToday
	case 2:
		return model.KindTwoDaysBefore
	default:
		return model.KindNone
	}
}

// daysUntil returns the whole calendar days from today until due, negative
// when the due date has passed. Calendar days are taken in today's
// location, then rebuilt as UTC midnights so the difference is an exact
// multiple of 24h even across DST transitions.
func daysUntil(due, today time.Time) int {
	due = due.In(today.Location())
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	todayDay := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	return int(dueDay.Sub(todayDay) / (24 * time.Hour))
}
