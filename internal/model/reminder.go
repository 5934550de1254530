package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Child represents a registered child together with the guardian contact
// details used for reminders. The record is owned by the registration
// system; the reminder engine only reads it.
type Child struct {
	ID            uuid.UUID `json:"id"`             // unique identifier for the child
	Name          string    `json:"name"`           // child display name
	GuardianName  string    `json:"guardian_name"`  // guardian display name
	GuardianPhone string    `json:"guardian_phone"` // guardian phone number, empty if not provided
	GuardianEmail string    `json:"guardian_email"` // guardian email address, empty if not provided
}

// DoseStatus is the administration state of a scheduled dose.
type DoseStatus string

const (
	StatusPending DoseStatus = "Pending"
	StatusGiven   DoseStatus = "Given"
	StatusMissed  DoseStatus = "Missed"
)

// ScheduledDose is one planned vaccine administration for a child.
// Administration metadata is populated only once the status becomes Given.
type ScheduledDose struct {
	ID           uuid.UUID  `json:"id"`
	ChildID      uuid.UUID  `json:"child_id"`
	Vaccine      string     `json:"vaccine"`    // vaccine name, e.g. "BCG"
	DoseLabel    string     `json:"dose_label"` // e.g. "Dose 1"
	DueDate      *time.Time `json:"due_date"`   // calendar date, nil if not scheduled yet
	Status       DoseStatus `json:"status"`
	DateGiven    *time.Time `json:"date_given,omitempty"`
	BatchNumber  string     `json:"batch_number,omitempty"`
	HealthWorker string     `json:"health_worker,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

// ReminderKind classifies why a notification fires today. It is derived
// from the due date on every run and never stored.
type ReminderKind string

const (
	KindNone          ReminderKind = ""
	KindTwoDaysBefore ReminderKind = "2days"
	KindDueToday      ReminderKind = "today"
)

// Channel identifies one delivery transport.
type Channel string

const (
	ChannelSMS   Channel = "sms"
	ChannelEmail Channel = "email"
)

// Message is a composed reminder in both delivery variants: a short
// plain-text body for SMS and a formatted HTML body for email.
type Message struct {
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}

// Outcome is the result of a single channel attempt.
type Outcome string

const (
	OutcomeSent    Outcome = "sent"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// FailureCause explains a failed or skipped attempt.
type FailureCause string

const (
	CauseInvalidDestination FailureCause = "invalid_destination"
	CauseProviderError      FailureCause = "provider_error"
	CauseTimeout            FailureCause = "timeout"
	CauseNotConfigured      FailureCause = "not_configured"
	CauseNoDestination      FailureCause = "no_destination"
	CauseAlreadySent        FailureCause = "already_sent"
)

// NotificationAttempt records one channel attempt for one dose within a
// run. Attempts live only for the duration of the run and are aggregated
// into the run summary.
type NotificationAttempt struct {
	Channel     Channel      `json:"channel"`
	Destination string       `json:"destination"`
	Outcome     Outcome      `json:"outcome"`
	Cause       FailureCause `json:"cause,omitempty"`
}

// RunStatus is the terminal state of a reminder run.
type RunStatus string

const (
	RunCompleted           RunStatus = "completed"
	RunCompletedWithErrors RunStatus = "completed_with_errors"
)

// RunSummary aggregates the outcome of one full reminder run.
// All counters are commutative; the order in which children and doses
// were processed does not affect the summary.
type RunSummary struct {
	StartedAt            time.Time `json:"started_at"`
	FinishedAt           time.Time `json:"finished_at"`
	Status               RunStatus `json:"status"`
	ChildrenScanned      int       `json:"children_scanned"`
	ChildrenFailed       int       `json:"children_failed"`
	DosesEvaluated       int       `json:"doses_evaluated"`
	NotificationsSent    int       `json:"notifications_sent"`
	NotificationsFailed  int       `json:"notifications_failed"`
	NotificationsSkipped int       `json:"notifications_skipped"`
}

// StatusLine renders the summary as a single human-readable line.
func (s RunSummary) StatusLine() string {
	return fmt.Sprintf(
		"reminder run %s: %d children scanned (%d failed), %d doses evaluated, %d sent, %d failed, %d skipped in %s",
		s.Status, s.ChildrenScanned, s.ChildrenFailed, s.DosesEvaluated,
		s.NotificationsSent, s.NotificationsFailed, s.NotificationsSkipped,
		s.FinishedAt.Sub(s.StartedAt).Round(time.Millisecond),
	)
}
