package child

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/adr1ang1lbert/birth-vaccine-system/internal/model"
)

// ErrStoreUnavailable indicates that the child store could not be queried.
// Callers distinguish it from data-shape errors to decide whether to abort
// a run or skip a single child.
var ErrStoreUnavailable = errors.New("child store unavailable")

// Repository reads children and their vaccination schedules. The reminder
// engine never writes through it.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new child repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// ListChildren returns every registered child with guardian contact details.
func (r *Repository) ListChildren(ctx context.Context) ([]model.Child, error) {
	query := `
		SELECT id, child_name, guardian_name, guardian_phone, guardian_email
		FROM children
		ORDER BY child_name;
    `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: list children: %w", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var children []model.Child
	for rows.Next() {
		var (
			c            model.Child
			phone, email sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.GuardianName, &phone, &email); err != nil {
			return nil, fmt.Errorf("scan child row: %w", err)
		}

		c.GuardianPhone = phone.String
		c.GuardianEmail = email.String
		children = append(children, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list children: %w", ErrStoreUnavailable, err)
	}

	return children, nil
}

// ListSchedule returns all scheduled doses for one child, ordered by due date.
func (r *Repository) ListSchedule(ctx context.Context, childID uuid.UUID) ([]model.ScheduledDose, error) {
	query := `
		SELECT id, child_id, vaccine, dose_label, due_date, status,
		       date_given, batch_number, health_worker, notes
		FROM vaccination_schedule
		WHERE child_id = $1
		ORDER BY due_date;
    `

	rows, err := r.db.QueryContext(ctx, query, childID)
	if err != nil {
		return nil, fmt.Errorf("%w: list schedule for child %s: %w", ErrStoreUnavailable, childID, err)
	}
	defer rows.Close()

	var doses []model.ScheduledDose
	for rows.Next() {
		var (
			d                          model.ScheduledDose
			dueDate, dateGiven         sql.NullTime
			batch, healthWorker, notes sql.NullString
		)
		if err := rows.Scan(
			&d.ID, &d.ChildID, &d.Vaccine, &d.DoseLabel, &dueDate, &d.Status,
			&dateGiven, &batch, &healthWorker, &notes,
		); err != nil {
			return nil, fmt.Errorf("scan dose row: %w", err)
		}

		if dueDate.Valid {
			t := dueDate.Time
			d.DueDate = &t
		}
		if dateGiven.Valid {
			t := dateGiven.Time
			d.DateGiven = &t
		}
		d.BatchNumber = batch.String
		d.HealthWorker = healthWorker.String
		d.Notes = notes.String

		doses = append(doses, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list schedule for child %s: %w", ErrStoreUnavailable, childID, err)
	}

	return doses, nil
}
