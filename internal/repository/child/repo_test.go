package child

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/wb-go/wbf/dbpg"

	"github.com/adr1ang1lbert/birth-vaccine-system/internal/model"
)

func setupMockDB(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open mock db: %v", err)
	}

	wrappedDB := &dbpg.DB{Master: db}
	repo := NewRepository(wrappedDB)

	return repo, mock
}

func TestListChildren(t *testing.T) {
	repo, mock := setupMockDB(t)

	idA := uuid.New()
	idB := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "child_name", "guardian_name", "guardian_phone", "guardian_email"}).
		AddRow(idA, "Amina Yusuf", "Fatuma Yusuf", "+254700000001", "fatuma@example.com").
		AddRow(idB, "Brian Otieno", "Grace Otieno", nil, nil)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, child_name, guardian_name, guardian_phone, guardian_email
		FROM children
		ORDER BY child_name;
    `)).WillReturnRows(rows)

	children, err := repo.ListChildren(context.Background())
	assert.NoError(t, err)
	assert.Len(t, children, 2)
	assert.Equal(t, "+254700000001", children[0].GuardianPhone)
	assert.Equal(t, "fatuma@example.com", children[0].GuardianEmail)
	assert.Empty(t, children[1].GuardianPhone)
	assert.Empty(t, children[1].GuardianEmail)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListChildren_StoreUnavailable(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, child_name, guardian_name, guardian_phone, guardian_email
		FROM children
		ORDER BY child_name;
    `)).WillReturnError(errors.New("connection refused"))

	_, err := repo.ListChildren(context.Background())
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListSchedule(t *testing.T) {
	repo, mock := setupMockDB(t)

	childID := uuid.New()
	doseID := uuid.New()
	due := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)
	given := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "child_id", "vaccine", "dose_label", "due_date", "status",
		"date_given", "batch_number", "health_worker", "notes",
	}).
		AddRow(doseID, childID, "BCG", "Dose 1", due, model.StatusPending, nil, nil, nil, nil).
		AddRow(uuid.New(), childID, "Polio", "Dose 2", nil, model.StatusGiven, given, "B-204", "J. Mwangi", "left arm")

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, child_id, vaccine, dose_label, due_date, status,
		       date_given, batch_number, health_worker, notes
		FROM vaccination_schedule
		WHERE child_id = $1
		ORDER BY due_date;
    `)).
		WithArgs(childID).
		WillReturnRows(rows)

	doses, err := repo.ListSchedule(context.Background(), childID)
	assert.NoError(t, err)
	assert.Len(t, doses, 2)

	assert.Equal(t, "BCG", doses[0].Vaccine)
	assert.NotNil(t, doses[0].DueDate)
	assert.True(t, due.Equal(*doses[0].DueDate))
	assert.Nil(t, doses[0].DateGiven)

	assert.Equal(t, model.StatusGiven, doses[1].Status)
	assert.Nil(t, doses[1].DueDate)
	assert.NotNil(t, doses[1].DateGiven)
	assert.Equal(t, "B-204", doses[1].BatchNumber)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListSchedule_StoreUnavailable(t *testing.T) {
	repo, mock := setupMockDB(t)

	childID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, child_id, vaccine, dose_label, due_date, status,
		       date_given, batch_number, health_worker, notes
		FROM vaccination_schedule
		WHERE child_id = $1
		ORDER BY due_date;
    `)).
		WithArgs(childID).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.ListSchedule(context.Background(), childID)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}
