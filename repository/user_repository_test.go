package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserList(t *testing.T) {
	mock := setupMockDB(t)
	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, name, email, is_admin, created_at FROM users ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "is_admin", "created_at"}).
			AddRow("u2", "Ravi", "ravi@example.com", false, now).
			AddRow("u1", "Admin", "admin@example.com", true, now.Add(-time.Hour)))

	users, err := NewUserRepository().List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.True(t, users[1].IsAdmin)
}

func TestUserDeleteProtectsAdmins(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery("SELECT is_admin FROM users WHERE id = \\$1").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"is_admin"}).AddRow(true))

	err := NewUserRepository().Delete(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrProtectedUser)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserDelete(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery("SELECT is_admin FROM users WHERE id = \\$1").
		WithArgs("u2").
		WillReturnRows(sqlmock.NewRows([]string{"is_admin"}).AddRow(false))
	mock.ExpectExec("DELETE FROM users WHERE id = \\$1 AND is_admin = FALSE").
		WithArgs("u2").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewUserRepository().Delete(context.Background(), "u2"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserDeleteNotFound(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery("SELECT is_admin FROM users").WithArgs("nobody").WillReturnError(sql.ErrNoRows)

	assert.ErrorIs(t, NewUserRepository().Delete(context.Background(), "nobody"), ErrNotFound)
}
