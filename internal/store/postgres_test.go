package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/focusflow/backend/internal/errs"
	"github.com/focusflow/backend/internal/models"
)

func newStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewPostgresStore(mock), mock
}

func userRows(id string) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "email", "username", "first_name", "last_name", "created_at"}).
		AddRow(id, "test@example.com", "testuser", "Test", "User", time.Now())
}

func TestPostgresStore_CreateUser(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()
	ctx := context.Background()

	u := &models.User{
		Email:    "test@example.com",
		Username: "testuser",
		Password: "hashed",
	}

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(u.Email, u.Username, u.Password, u.FirstName, u.LastName).
		WillReturnRows(userRows("id-1"))

	out, err := s.CreateUser(ctx, u)
	require.NoError(t, err)
	require.Equal(t, "id-1", out.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateUser_UniqueViolations(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()
	ctx := context.Background()

	u := &models.User{Email: "test@example.com", Username: "testuser", Password: "hashed"}

	// The constraint name decides which conflict fired.
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(u.Email, u.Username, u.Password, u.FirstName, u.LastName).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	_, err := s.CreateUser(ctx, u)
	require.ErrorIs(t, err, errs.ErrEmailExists)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(u.Email, u.Username, u.Password, u.FirstName, u.LastName).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})
	_, err = s.CreateUser(ctx, u)
	require.ErrorIs(t, err, errs.ErrUsernameTaken)
}

func TestPostgresStore_GetUserByEmail(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()
	ctx := context.Background()

	rows := pgxmock.NewRows([]string{"id", "email", "username", "password", "first_name", "last_name", "created_at"}).
		AddRow("id-1", "test@example.com", "testuser", "hashed", "Test", "User", time.Now())
	mock.ExpectQuery(`SELECT id, email, username, password, first_name, last_name, created_at\s+FROM users WHERE email`).
		WithArgs("test@example.com").
		WillReturnRows(rows)

	u, err := s.GetUserByEmail(ctx, "test@example.com")
	require.NoError(t, err)
	require.Equal(t, "testuser", u.Username)
	require.Equal(t, "hashed", u.Password)

	mock.ExpectQuery(`SELECT id, email, username, password, first_name, last_name, created_at\s+FROM users WHERE email`).
		WithArgs("missing@example.com").
		WillReturnError(pgx.ErrNoRows)
	_, err = s.GetUserByEmail(ctx, "missing@example.com")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestPostgresStore_UpdateUser(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()
	ctx := context.Background()

	u := &models.User{ID: "id-1", Email: "new@example.com", FirstName: "New", LastName: "Name"}

	mock.ExpectQuery(`UPDATE users SET`).
		WithArgs(u.ID, u.Email, u.FirstName, u.LastName).
		WillReturnRows(userRows("id-1"))
	_, err := s.UpdateUser(ctx, u)
	require.NoError(t, err)

	// email collision on update maps like on insert
	mock.ExpectQuery(`UPDATE users SET`).
		WithArgs(u.ID, u.Email, u.FirstName, u.LastName).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	_, err = s.UpdateUser(ctx, u)
	require.ErrorIs(t, err, errs.ErrEmailExists)
}

func TestPostgresStore_UpdatePassword(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()
	ctx := context.Background()

	mock.ExpectExec(`UPDATE users SET password`).
		WithArgs("id-1", "new-hash").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, s.UpdatePassword(ctx, "id-1", "new-hash"))

	mock.ExpectExec(`UPDATE users SET password`).
		WithArgs("missing", "new-hash").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	require.ErrorIs(t, s.UpdatePassword(ctx, "missing", "new-hash"), errs.ErrNotFound)
}

func TestPostgresStore_DeleteUser(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM users WHERE id`).
		WithArgs("id-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, s.DeleteUser(ctx, "id-1"))

	mock.ExpectExec(`DELETE FROM users WHERE id`).
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	require.ErrorIs(t, s.DeleteUser(ctx, "missing"), errs.ErrNotFound)
}
