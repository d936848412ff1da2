package store

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/focusflow/backend/internal/errs"
	"github.com/focusflow/backend/internal/models"
)

// PgxPool is a minimal abstraction over a Postgres connection pool.
// It is implemented by *pgxpool.Pool and pgxmock.PgxPoolIface.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore handles user CRUD against PostgreSQL.
type PostgresStore struct {
	pool PgxPool
}

func NewPostgresStore(pool PgxPool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// mapUniqueViolation translates a 23505 into the matching conflict sentinel.
// The constraint name is the authoritative signal: the service-level
// pre-check only exists for a friendlier error path and can lose the race.
func mapUniqueViolation(err error) error {
	var pg *pgconn.PgError
	if !errors.As(err, &pg) || pg.Code != "23505" {
		return err
	}
	if strings.Contains(pg.ConstraintName, "username") {
		return errs.ErrUsernameTaken
	}
	return errs.ErrEmailExists
}

func (s *PostgresStore) CreateUser(ctx context.Context, u *models.User) (*models.User, error) {
	var out models.User
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (email, username, password, first_name, last_name)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, email, username, first_name, last_name, created_at`,
		u.Email, u.Username, u.Password, u.FirstName, u.LastName,
	).Scan(&out.ID, &out.Email, &out.Username, &out.FirstName, &out.LastName, &out.CreatedAt)
	if err != nil {
		return nil, mapUniqueViolation(err)
	}
	return &out, nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx,
		`SELECT id, email, username, password, first_name, last_name, created_at
		 FROM users WHERE email = $1`, email)
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUser(ctx,
		`SELECT id, email, username, password, first_name, last_name, created_at
		 FROM users WHERE username = $1`, username)
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx,
		`SELECT id, email, username, password, first_name, last_name, created_at
		 FROM users WHERE id = $1`, id)
}

func (s *PostgresStore) getUser(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx, query, arg).
		Scan(&u.ID, &u.Email, &u.Username, &u.Password, &u.FirstName, &u.LastName, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *PostgresStore) UpdateUser(ctx context.Context, u *models.User) (*models.User, error) {
	var out models.User
	err := s.pool.QueryRow(ctx,
		`UPDATE users SET email = $2, first_name = $3, last_name = $4
		 WHERE id = $1
		 RETURNING id, email, username, first_name, last_name, created_at`,
		u.ID, u.Email, u.FirstName, u.LastName,
	).Scan(&out.ID, &out.Email, &out.Username, &out.FirstName, &out.LastName, &out.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, mapUniqueViolation(err)
	}
	return &out, nil
}

func (s *PostgresStore) UpdatePassword(ctx context.Context, id, hashed string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET password = $2 WHERE id = $1`, id, hashed)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteUser(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
