package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/require"
)

func TestScheduleRepositoryGetByEmail(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	rows := sqlmock.NewRows([]string{"id", "email", "schedule_data", "created_at", "updated_at"}).
		AddRow(1, "amy@vu.edu", []byte(`{"2024-06-10":[]}`), time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM student_schedules WHERE email = $1")).
		WithArgs("amy@vu.edu").
		WillReturnRows(rows)

	schedule, err := repo.GetByEmail(context.Background(), "amy@vu.edu")
	require.NoError(t, err)
	require.Equal(t, "amy@vu.edu", schedule.Email)
	require.JSONEq(t, `{"2024-06-10":[]}`, string(schedule.ScheduleData))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (email) DO UPDATE SET schedule_data = EXCLUDED.schedule_data")).
		WithArgs("amy@vu.edu", types.JSONText(`{}`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Upsert(context.Background(), "amy@vu.edu", types.JSONText(`{}`)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryListEmails(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	rows := sqlmock.NewRows([]string{"email"}).AddRow("amy@vu.edu").AddRow("ben@vu.edu")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT email FROM student_schedules ORDER BY email")).
		WillReturnRows(rows)

	emails, err := repo.ListEmails(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"amy@vu.edu", "ben@vu.edu"}, emails)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryDeleteStale(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	cutoff := time.Date(2024, time.May, 11, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM student_schedules WHERE updated_at < $1")).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))

	deleted, err := repo.DeleteStale(context.Background(), cutoff)
	require.NoError(t, err)
	require.EqualValues(t, 3, deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}
