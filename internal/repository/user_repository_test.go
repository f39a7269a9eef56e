package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepositoryUpsertPreferences(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (email) DO UPDATE SET preferences = EXCLUDED.preferences")).
		WithArgs(sqlmock.AnyArg(), "amy@vu.edu", "student", []byte(`{"wakeup":9}`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpsertPreferences(context.Background(), "amy@vu.edu", []byte(`{"wakeup":9}`))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryGetPreferences(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"preferences"}).AddRow([]byte(`{"study_style":"focused"}`))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT preferences FROM users WHERE email = $1")).
		WithArgs("amy@vu.edu").
		WillReturnRows(rows)

	preferences, err := repo.GetPreferences(context.Background(), "amy@vu.edu")
	require.NoError(t, err)
	assert.JSONEq(t, `{"study_style":"focused"}`, string(preferences))
}
