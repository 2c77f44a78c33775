package word

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/progenglish/pkg/pg"
)

// Storage persists words. Single-row reads and Delete return ErrNotFound
// when nothing matches.
type Storage interface {
	Create(ctx context.Context, w *Word) error
	Get(ctx context.Context, id int64) (*Word, error)
	GetByText(ctx context.Context, text string) (*Word, error)
	List(ctx context.Context, f Filter, limit, offset int) ([]Word, error)
	Count(ctx context.Context, f Filter) (int64, error)
	Update(ctx context.Context, w *Word) error
	Delete(ctx context.Context, id int64) error
	Random(ctx context.Context) (*Word, error)
}

const selectWord = `SELECT id, word, translation, definition, example, category,
	difficulty, pronunciation, created_at, updated_at FROM words`

// PostgresStorage implements Storage on the words table.
type PostgresStorage struct {
	db pg.DB
}

func NewPostgresStorage(db pg.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

func (s *PostgresStorage) Create(ctx context.Context, w *Word) error {
	const q = `INSERT INTO words
		(word, translation, definition, example, category, difficulty, pronunciation, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	return s.db.QueryRow(ctx, q,
		w.Word, w.Translation, w.Definition, w.Example,
		w.Category, w.Difficulty, w.Pronunciation, w.CreatedAt, w.UpdatedAt,
	).Scan(&w.ID)
}

func (s *PostgresStorage) Get(ctx context.Context, id int64) (*Word, error) {
	return s.getOne(ctx, selectWord+` WHERE id = $1`, id)
}

func (s *PostgresStorage) GetByText(ctx context.Context, text string) (*Word, error) {
	return s.getOne(ctx, selectWord+` WHERE word = $1`, text)
}

func (s *PostgresStorage) Random(ctx context.Context) (*Word, error) {
	return s.getOne(ctx, selectWord+` ORDER BY random() LIMIT 1`)
}

func (s *PostgresStorage) List(ctx context.Context, f Filter, limit, offset int) ([]Word, error) {
	where, args := f.where()
	args = append(args, limit, offset)
	q := fmt.Sprintf("%s%s ORDER BY id LIMIT $%d OFFSET $%d", selectWord, where, len(args)-1, len(args))

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	words, err := pgx.CollectRows(rows, pgx.RowToStructByName[Word])
	if err != nil {
		return nil, fmt.Errorf("failed to scan words: %w", err)
	}
	return words, nil
}

func (s *PostgresStorage) Count(ctx context.Context, f Filter) (int64, error) {
	where, args := f.where()

	var total int64
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM words`+where, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *PostgresStorage) Update(ctx context.Context, w *Word) error {
	const q = `UPDATE words SET word = $2, translation = $3, definition = $4, example = $5,
		category = $6, difficulty = $7, pronunciation = $8, updated_at = $9
		WHERE id = $1`

	tag, err := s.db.Exec(ctx, q,
		w.ID, w.Word, w.Translation, w.Definition, w.Example,
		w.Category, w.Difficulty, w.Pronunciation, w.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStorage) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM words WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStorage) getOne(ctx context.Context, q string, args ...any) (*Word, error) {
	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}

	w, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[Word])
	if pg.IsNotFoundError(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan word: %w", err)
	}
	return w, nil
}

func (f Filter) where() (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Difficulty != "" {
		args = append(args, f.Difficulty)
		conds = append(conds, fmt.Sprintf("difficulty = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
