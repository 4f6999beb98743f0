package repository

import (
	"testing"
	"time"

	"github.com/VictorAraujo38/akkadian-test/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentRepository_HasConflict(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewAppointmentRepository()
	doctorID := uuid.New()
	instant := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "appointments" WHERE doctor_id = \$1 AND appointment_date = \$2 AND status <> \$3`).
		WithArgs(doctorID, instant, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	conflict, err := repo.HasConflict(db, doctorID, instant)
	require.NoError(t, err)
	assert.True(t, conflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepository_CountByPatientBetween(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewAppointmentRepository()
	patientID := uuid.New()
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "appointments" WHERE patient_id = \$1 AND appointment_date >= \$2 AND appointment_date < \$3 AND status <> \$4`).
		WithArgs(patientID, start, end, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	count, err := repo.CountByPatientBetween(db, patientID, start, end)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepository_CancelAppointment(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewAppointmentRepository()
	id := uuid.New()
	cancelledAt := time.Date(2026, 3, 2, 6, 30, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "appointments" SET "status"=\$1,"updated_at"=\$2 WHERE id = \$3 AND status NOT IN \(\$4,\$5\)`).
		WithArgs(sqlmock.AnyArg(), cancelledAt, id, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	affected, err := repo.CancelAppointment(db, id, cancelledAt)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepository_FindByIDNotFound(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewAppointmentRepository()

	mock.ExpectQuery(`SELECT \* FROM "appointments" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	appointment, err := repo.FindByID(db, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, appointment)
}
