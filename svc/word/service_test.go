package word_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/progenglish/pkg/apperr"
	"github.com/dmitrymomot/progenglish/pkg/validator"
	"github.com/dmitrymomot/progenglish/svc/word"
)

var fixedNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func newService(storage *MockStorage) word.Service {
	return word.NewService(storage, word.WithClock(func() time.Time { return fixedNow }))
}

func ptr[T any](v T) *T { return &v }

func TestService_Create(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("applies defaults and sanitizes", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		storage.On("GetByText", ctx, "variable").Return(nil, word.ErrNotFound)
		storage.On("Create", ctx, mock.AnythingOfType("*word.Word")).
			Run(func(args mock.Arguments) { args.Get(1).(*word.Word).ID = 1 }).
			Return(nil)

		w, err := newService(storage).Create(ctx, word.CreateInput{
			Word:          "  variable ",
			Translation:   "变量",
			Example:       "let x = 10;  \n",
			Pronunciation: ptr("   "),
		})
		require.NoError(t, err)

		assert.Equal(t, int64(1), w.ID)
		assert.Equal(t, "variable", w.Word)
		assert.Equal(t, "let x = 10;", w.Example)
		assert.Equal(t, word.CategoryBasic, w.Category)
		assert.Equal(t, word.DifficultyBeginner, w.Difficulty)
		assert.Nil(t, w.Pronunciation)
		assert.Equal(t, fixedNow, w.CreatedAt)
		storage.AssertExpectations(t)
	})

	t.Run("duplicate word", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		storage.On("GetByText", ctx, "loop").Return(&word.Word{ID: 5, Word: "loop"}, nil)

		_, err := newService(storage).Create(ctx, word.CreateInput{Word: "loop", Translation: "循环"})
		assert.ErrorIs(t, err, word.ErrDuplicateWord)
		assert.Equal(t, apperr.KindDomain, apperr.KindOf(err))
		storage.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unique violation from storage", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		storage.On("GetByText", ctx, "loop").Return(nil, word.ErrNotFound)
		storage.On("Create", ctx, mock.Anything).Return(&pgconn.PgError{Code: "23505"})

		_, err := newService(storage).Create(ctx, word.CreateInput{Word: "loop", Translation: "循环"})
		assert.ErrorIs(t, err, word.ErrDuplicateWord)
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name  string
			in    word.CreateInput
			field string
		}{
			{"missing word", word.CreateInput{Translation: "x"}, "word"},
			{"missing translation", word.CreateInput{Word: "x"}, "translation"},
			{"unknown category", word.CreateInput{Word: "x", Translation: "y", Category: "misc"}, "category"},
			{"unknown difficulty", word.CreateInput{Word: "x", Translation: "y", Difficulty: "expert"}, "difficulty"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()
				storage := &MockStorage{}

				_, err := newService(storage).Create(ctx, tt.in)
				require.True(t, validator.IsValidationError(err))
				assert.True(t, validator.ExtractValidationErrors(err).Has(tt.field))
			})
		}
	})
}

func TestService_Get(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	storage := &MockStorage{}
	storage.On("Get", ctx, int64(1)).Return(&word.Word{ID: 1, Word: "loop"}, nil)
	storage.On("Get", ctx, int64(2)).Return(nil, word.ErrNotFound)
	storage.On("Get", ctx, int64(3)).Return(nil, errors.New("db down"))
	svc := newService(storage)

	w, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "loop", w.Word)

	_, err = svc.Get(ctx, 2)
	assert.ErrorIs(t, err, word.ErrWordNotFound)
	assert.EqualError(t, err, "word not found")

	_, err = svc.Get(ctx, 3)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}

func TestService_List(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("computes offset from page", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		storage.On("Count", ctx, word.Filter{}).Return(int64(45), nil)
		storage.On("List", ctx, word.Filter{}, 20, 40).Return([]word.Word{{ID: 41}}, nil)

		items, total, err := newService(storage).List(ctx, 3, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(45), total)
		assert.Len(t, items, 1)
	})

	t.Run("empty table skips the page query", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		storage.On("Count", ctx, word.Filter{}).Return(int64(0), nil)

		items, total, err := newService(storage).List(ctx, 1, 20)
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.NotNil(t, items)
		assert.Empty(t, items)
		storage.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		t.Parallel()

		for _, page := range []int{2, 1000, math.MaxInt / 50, math.MaxInt} {
			storage := &MockStorage{}
			storage.On("Count", ctx, word.Filter{}).Return(int64(5), nil)

			items, total, err := newService(storage).List(ctx, page, 5)
			require.NoError(t, err, "page=%d", page)
			assert.Equal(t, int64(5), total)
			assert.NotNil(t, items)
			assert.Empty(t, items)
			storage.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		}
	})

	t.Run("last partial page is served", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		storage.On("Count", ctx, word.Filter{}).Return(int64(45), nil)
		storage.On("List", ctx, word.Filter{}, 20, 40).Return([]word.Word{{ID: 41}, {ID: 45}}, nil)

		items, _, err := newService(storage).List(ctx, 3, 20)
		require.NoError(t, err)
		assert.Len(t, items, 2)
		storage.AssertNotCalled(t, "List", ctx, word.Filter{}, 20, 60)
	})

	t.Run("rejects bad paging", func(t *testing.T) {
		t.Parallel()

		for _, tc := range []struct{ page, size int }{{0, 20}, {1, 0}, {1, 101}} {
			_, _, err := newService(&MockStorage{}).List(ctx, tc.page, tc.size)
			assert.True(t, validator.IsValidationError(err), "page=%d size=%d", tc.page, tc.size)
		}
	})

	t.Run("by category", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		f := word.Filter{Category: word.CategoryControlFlow}
		storage.On("Count", ctx, f).Return(int64(1), nil)
		storage.On("List", ctx, f, 20, 0).Return([]word.Word{{ID: 8, Category: word.CategoryControlFlow}}, nil)

		items, _, err := newService(storage).ListByCategory(ctx, word.CategoryControlFlow, 1, 20)
		require.NoError(t, err)
		assert.Len(t, items, 1)

		_, _, err = newService(storage).ListByCategory(ctx, "misc", 1, 20)
		assert.True(t, validator.IsValidationError(err))
	})

	t.Run("by difficulty", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		f := word.Filter{Difficulty: word.DifficultyAdvanced}
		storage.On("Count", ctx, f).Return(int64(0), nil)

		items, total, err := newService(storage).ListByDifficulty(ctx, word.DifficultyAdvanced, 1, 20)
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, items)

		_, _, err = newService(storage).ListByDifficulty(ctx, "expert", 1, 20)
		assert.True(t, validator.IsValidationError(err))
	})
}

func TestService_Update(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	existing := func() *word.Word {
		return &word.Word{ID: 1, Word: "loop", Translation: "循环", Category: word.CategoryBasic, Difficulty: word.DifficultyBeginner}
	}

	t.Run("partial update keeps other fields", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		storage.On("Get", ctx, int64(1)).Return(existing(), nil)
		storage.On("Update", ctx, mock.AnythingOfType("*word.Word")).Return(nil)

		w, err := newService(storage).Update(ctx, 1, word.UpdateInput{
			Category: ptr(word.CategoryControlFlow),
		})
		require.NoError(t, err)
		assert.Equal(t, "loop", w.Word)
		assert.Equal(t, "循环", w.Translation)
		assert.Equal(t, word.CategoryControlFlow, w.Category)
		assert.Equal(t, fixedNow, w.UpdatedAt)
		storage.AssertNotCalled(t, "GetByText", mock.Anything, mock.Anything)
	})

	t.Run("renaming onto an existing word", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		storage.On("Get", ctx, int64(1)).Return(existing(), nil)
		storage.On("GetByText", ctx, "array").Return(&word.Word{ID: 3, Word: "array"}, nil)

		_, err := newService(storage).Update(ctx, 1, word.UpdateInput{Word: ptr("array")})
		assert.ErrorIs(t, err, word.ErrDuplicateWord)
	})

	t.Run("missing word", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		storage.On("Get", ctx, int64(9)).Return(nil, word.ErrNotFound)

		_, err := newService(storage).Update(ctx, 9, word.UpdateInput{Word: ptr("x")})
		assert.ErrorIs(t, err, word.ErrWordNotFound)
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		storage.On("Get", ctx, int64(1)).Return(existing(), nil)

		_, err := newService(storage).Update(ctx, 1, word.UpdateInput{Translation: ptr("  ")})
		assert.True(t, validator.IsValidationError(err))
		storage.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestService_DeleteAndRandom(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	storage := &MockStorage{}
	storage.On("Delete", ctx, int64(1)).Return(nil)
	storage.On("Delete", ctx, int64(2)).Return(word.ErrNotFound)
	svc := newService(storage)

	require.NoError(t, svc.Delete(ctx, 1))
	assert.ErrorIs(t, svc.Delete(ctx, 2), word.ErrWordNotFound)

	empty := &MockStorage{}
	empty.On("Random", ctx).Return(nil, word.ErrNotFound)
	_, err := newService(empty).Random(ctx)
	assert.ErrorIs(t, err, word.ErrNoWords)
	assert.EqualError(t, err, "no words available")
}

func TestSamples(t *testing.T) {
	t.Parallel()

	samples := word.Samples()
	require.Len(t, samples, 10)
	assert.Equal(t, "variable", samples[0].Word)

	samples[0].Word = "changed"
	assert.Equal(t, "variable", word.Samples()[0].Word)

	assert.Contains(t, word.Samples(), word.RandomSample())
}
