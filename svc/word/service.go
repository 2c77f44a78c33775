package word

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/progenglish/pkg/logger"
	"github.com/dmitrymomot/progenglish/pkg/pg"
	"github.com/dmitrymomot/progenglish/pkg/sanitizer"
	"github.com/dmitrymomot/progenglish/pkg/validator"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	wordMaxLength          = 100
	translationMaxLength   = 200
	pronunciationMaxLength = 100
)

// Service manages the vocabulary.
type Service interface {
	Create(ctx context.Context, in CreateInput) (*Word, error)
	Get(ctx context.Context, id int64) (*Word, error)
	List(ctx context.Context, page, size int) ([]Word, int64, error)
	Update(ctx context.Context, id int64, in UpdateInput) (*Word, error)
	Delete(ctx context.Context, id int64) error
	Random(ctx context.Context) (*Word, error)
	ListByCategory(ctx context.Context, c Category, page, size int) ([]Word, int64, error)
	ListByDifficulty(ctx context.Context, d Difficulty, page, size int) ([]Word, int64, error)
}

type service struct {
	storage Storage
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures the word service.
type Option func(*service)

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(storage Storage, opts ...Option) Service {
	s := &service{
		storage: storage,
		logger:  logger.Discard(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, in CreateInput) (*Word, error) {
	if in.Category == "" {
		in.Category = CategoryBasic
	}
	if in.Difficulty == "" {
		in.Difficulty = DifficultyBeginner
	}

	now := s.now().UTC()
	w := &Word{
		Word:          sanitizer.SingleLine(in.Word),
		Translation:   sanitizer.SingleLine(in.Translation),
		Definition:    sanitizer.MultiLine(in.Definition),
		Example:       sanitizer.MultiLine(in.Example),
		Category:      in.Category,
		Difficulty:    in.Difficulty,
		Pronunciation: cleanOptional(in.Pronunciation),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := validate(w); err != nil {
		return nil, err
	}

	if err := s.ensureUnique(ctx, w.Word, 0); err != nil {
		return nil, err
	}

	if err := s.storage.Create(ctx, w); err != nil {
		if pg.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateWord
		}
		return nil, fmt.Errorf("failed to create word: %w", err)
	}

	s.logger.InfoContext(ctx, "word created",
		slog.Int64("word_id", w.ID),
		slog.String("word", w.Word),
		logger.Component("word"),
	)

	return w, nil
}

func (s *service) Get(ctx context.Context, id int64) (*Word, error) {
	w, err := s.storage.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrWordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word: %w", err)
	}
	return w, nil
}

func (s *service) List(ctx context.Context, page, size int) ([]Word, int64, error) {
	return s.list(ctx, Filter{}, page, size)
}

func (s *service) ListByCategory(ctx context.Context, c Category, page, size int) ([]Word, int64, error) {
	if err := validator.Apply(validator.InList("category", c, Categories)); err != nil {
		return nil, 0, err
	}
	return s.list(ctx, Filter{Category: c}, page, size)
}

func (s *service) ListByDifficulty(ctx context.Context, d Difficulty, page, size int) ([]Word, int64, error) {
	if err := validator.Apply(validator.InList("difficulty", d, Difficulties)); err != nil {
		return nil, 0, err
	}
	return s.list(ctx, Filter{Difficulty: d}, page, size)
}

func (s *service) list(ctx context.Context, f Filter, page, size int) ([]Word, int64, error) {
	if err := validator.Apply(
		validator.MinNum("page", page, 1),
		validator.MinNum("size", size, 1),
		validator.MaxNum("size", size, MaxPageSize),
	); err != nil {
		return nil, 0, err
	}

	total, err := s.storage.Count(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count words: %w", err)
	}
	if total == 0 {
		return []Word{}, 0, nil
	}
	// Pages past the end are empty; this also keeps the offset from overflowing.
	if int64(page-1) > (total-1)/int64(size) {
		return []Word{}, total, nil
	}

	words, err := s.storage.List(ctx, f, size, (page-1)*size)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list words: %w", err)
	}
	return words, total, nil
}

func (s *service) Update(ctx context.Context, id int64, in UpdateInput) (*Word, error) {
	w, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	original := w.Word
	if in.Word != nil {
		w.Word = sanitizer.SingleLine(*in.Word)
	}
	if in.Translation != nil {
		w.Translation = sanitizer.SingleLine(*in.Translation)
	}
	if in.Definition != nil {
		w.Definition = sanitizer.MultiLine(*in.Definition)
	}
	if in.Example != nil {
		w.Example = sanitizer.MultiLine(*in.Example)
	}
	if in.Category != nil {
		w.Category = *in.Category
	}
	if in.Difficulty != nil {
		w.Difficulty = *in.Difficulty
	}
	if in.Pronunciation != nil {
		w.Pronunciation = cleanOptional(in.Pronunciation)
	}

	if err := validate(w); err != nil {
		return nil, err
	}

	if w.Word != original {
		if err := s.ensureUnique(ctx, w.Word, w.ID); err != nil {
			return nil, err
		}
	}

	w.UpdatedAt = s.now().UTC()
	if err := s.storage.Update(ctx, w); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrWordNotFound
		case pg.IsDuplicateKeyError(err):
			return nil, ErrDuplicateWord
		}
		return nil, fmt.Errorf("failed to update word: %w", err)
	}

	return w, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.storage.Delete(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return ErrWordNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete word: %w", err)
	}

	s.logger.InfoContext(ctx, "word deleted", slog.Int64("word_id", id), logger.Component("word"))
	return nil
}

func (s *service) Random(ctx context.Context) (*Word, error) {
	w, err := s.storage.Random(ctx)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNoWords
	}
	if err != nil {
		return nil, fmt.Errorf("failed to pick random word: %w", err)
	}
	return w, nil
}

func (s *service) ensureUnique(ctx context.Context, text string, selfID int64) error {
	existing, err := s.storage.GetByText(ctx, text)
	switch {
	case errors.Is(err, ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("failed to check word: %w", err)
	case existing.ID != selfID:
		return ErrDuplicateWord
	}
	return nil
}

func validate(w *Word) error {
	rules := []validator.Rule{
		validator.RequiredString("word", w.Word),
		validator.MaxLenString("word", w.Word, wordMaxLength),
		validator.RequiredString("translation", w.Translation),
		validator.MaxLenString("translation", w.Translation, translationMaxLength),
		validator.InList("category", w.Category, Categories),
		validator.InList("difficulty", w.Difficulty, Difficulties),
	}
	if w.Pronunciation != nil {
		rules = append(rules, validator.MaxLenString("pronunciation", *w.Pronunciation, pronunciationMaxLength))
	}
	return validator.Apply(rules...)
}

// cleanOptional sanitizes an optional one-line value; blank becomes nil.
func cleanOptional(v *string) *string {
	if v == nil {
		return nil
	}
	clean := sanitizer.SingleLine(*v)
	if clean == "" {
		return nil
	}
	return &clean
}
