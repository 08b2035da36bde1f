package store

import (
	"context"
	"errors"
	"fmt"

	"user-crud/internal/database"
	"user-crud/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

type PostgresUserStore struct {
	db database.DB
}

func NewPostgresUserStore(db database.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

var _ UserStore = (*PostgresUserStore)(nil)

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Age,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return u, nil
}

func wrapPgErr(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%s: %w", op, ErrDuplicateEmail)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *PostgresUserStore) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, email, age, created_at, updated_at
		 FROM users ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, wrapPgErr("ListUsers", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, wrapPgErr("ListUsers", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("ListUsers", err)
	}
	return users, nil
}

func (s *PostgresUserStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("GetUser: %w", ErrNotFound)
	}
	u, err := scanUser(s.db.QueryRow(ctx,
		`SELECT id, name, email, age, created_at, updated_at
		 FROM users WHERE id = $1`,
		id,
	))
	if err != nil {
		return nil, wrapPgErr("GetUser", err)
	}
	return u, nil
}

func (s *PostgresUserStore) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	t := now()
	created, err := scanUser(s.db.QueryRow(ctx,
		`INSERT INTO users (id, name, email, age, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $5)
		 RETURNING id, name, email, age, created_at, updated_at`,
		uuid.NewString(),
		u.Name,
		u.Email,
		u.Age,
		t,
	))
	if err != nil {
		return nil, wrapPgErr("CreateUser", err)
	}
	return created, nil
}

func (s *PostgresUserStore) UpdateUser(ctx context.Context, id string, patch model.UserPatch) (*model.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("UpdateUser: %w", ErrNotFound)
	}
	u, err := scanUser(s.db.QueryRow(ctx,
		`UPDATE users
		 SET name = COALESCE($2, name),
		     email = COALESCE($3, email),
		     age = COALESCE($4, age),
		     updated_at = GREATEST($5, updated_at + INTERVAL '1 millisecond')
		 WHERE id = $1
		 RETURNING id, name, email, age, created_at, updated_at`,
		id,
		patch.Name,
		patch.Email,
		patch.Age,
		now(),
	))
	if err != nil {
		return nil, wrapPgErr("UpdateUser", err)
	}
	return u, nil
}

func (s *PostgresUserStore) DeleteUser(ctx context.Context, id string) (*model.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("DeleteUser: %w", ErrNotFound)
	}
	u, err := scanUser(s.db.QueryRow(ctx,
		`DELETE FROM users WHERE id = $1
		 RETURNING id, name, email, age, created_at, updated_at`,
		id,
	))
	if err != nil {
		return nil, wrapPgErr("DeleteUser", err)
	}
	return u, nil
}
