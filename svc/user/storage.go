package user

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/progenglish/pkg/pg"
)

// Storage persists accounts. Lookups return ErrNotFound when nothing matches.
type Storage interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

const selectUser = `SELECT id, username, email, full_name, hashed_password,
	is_active, is_superuser, created_at, updated_at FROM users`

// PostgresStorage implements Storage on the users table.
type PostgresStorage struct {
	db pg.DB
}

func NewPostgresStorage(db pg.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

func (s *PostgresStorage) Create(ctx context.Context, u *User) error {
	const q = `INSERT INTO users
		(username, email, full_name, hashed_password, is_active, is_superuser, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	return s.db.QueryRow(ctx, q,
		u.Username, u.Email, u.FullName, u.HashedPassword,
		u.IsActive, u.IsSuperuser, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
}

func (s *PostgresStorage) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.getOne(ctx, selectUser+` WHERE id = $1`, id)
}

func (s *PostgresStorage) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.getOne(ctx, selectUser+` WHERE username = $1`, username)
}

func (s *PostgresStorage) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.getOne(ctx, selectUser+` WHERE email = $1`, email)
}

func (s *PostgresStorage) getOne(ctx context.Context, q string, arg any) (*User, error) {
	rows, err := s.db.Query(ctx, q, arg)
	if err != nil {
		return nil, err
	}

	u, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[User])
	if pg.IsNotFoundError(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return u, nil
}
