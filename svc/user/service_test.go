package user_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/progenglish/pkg/apperr"
	"github.com/dmitrymomot/progenglish/pkg/password"
	"github.com/dmitrymomot/progenglish/pkg/validator"
	"github.com/dmitrymomot/progenglish/svc/user"
)

var fixedNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func newService(storage *MockStorage) user.Service {
	return user.NewService(storage, user.WithClock(func() time.Time { return fixedNow }))
}

func TestService_Create(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates active user with hashed password", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		storage.On("GetByUsername", ctx, "alice").Return(nil, user.ErrNotFound)
		storage.On("GetByEmail", ctx, "alice@example.com").Return(nil, user.ErrNotFound)
		storage.On("Create", ctx, mock.AnythingOfType("*user.User")).
			Run(func(args mock.Arguments) { args.Get(1).(*user.User).ID = 7 }).
			Return(nil)

		u, err := newService(storage).Create(ctx, user.CreateInput{
			Username: " alice ",
			Email:    "alice@example.com",
			Password: "Secret123",
			FullName: "  Alice   Liddell ",
		})
		require.NoError(t, err)

		assert.Equal(t, int64(7), u.ID)
		assert.Equal(t, "alice", u.Username)
		assert.Equal(t, "Alice Liddell", u.FullName)
		assert.True(t, u.IsActive)
		assert.False(t, u.IsSuperuser)
		assert.Equal(t, fixedNow, u.CreatedAt)
		assert.True(t, password.Verify("Secret123", u.HashedPassword))
		storage.AssertExpectations(t)
	})

	t.Run("duplicate username", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		storage.On("GetByUsername", ctx, "alice").Return(&user.User{ID: 1}, nil)

		_, err := newService(storage).Create(ctx, user.CreateInput{
			Username: "alice", Email: "alice@example.com", Password: "Secret123",
		})
		require.Error(t, err)
		assert.Equal(t, apperr.KindDomain, apperr.KindOf(err))
		assert.EqualError(t, err, "username alice already exists")
		storage.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		storage.On("GetByUsername", ctx, "alice").Return(nil, user.ErrNotFound)
		storage.On("GetByEmail", ctx, "alice@example.com").Return(&user.User{ID: 1}, nil)

		_, err := newService(storage).Create(ctx, user.CreateInput{
			Username: "alice", Email: "alice@example.com", Password: "Secret123",
		})
		assert.Equal(t, apperr.KindDomain, apperr.KindOf(err))
		assert.EqualError(t, err, "email alice@example.com already exists")
	})

	t.Run("lookup failure is not a duplicate", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		storage.On("GetByUsername", ctx, "alice").Return(nil, errors.New("connection reset"))

		_, err := newService(storage).Create(ctx, user.CreateInput{
			Username: "alice", Email: "alice@example.com", Password: "Secret123",
		})
		require.Error(t, err)
		assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name  string
			in    user.CreateInput
			field string
		}{
			{"short username", user.CreateInput{Username: "al", Email: "a@example.com", Password: "x"}, "username"},
			{"bad username chars", user.CreateInput{Username: "al ice!", Email: "a@example.com", Password: "x"}, "username"},
			{"bad email", user.CreateInput{Username: "alice", Email: "not-an-email", Password: "x"}, "email"},
			{"empty password", user.CreateInput{Username: "alice", Email: "a@example.com"}, "password"},
			{"weak password", user.CreateInput{Username: "alice", Email: "a@example.com", Password: "secret123"}, "password"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()
				storage := &MockStorage{}

				_, err := newService(storage).Create(ctx, tt.in)
				require.True(t, validator.IsValidationError(err))
				assert.True(t, validator.ExtractValidationErrors(err).Has(tt.field))
				storage.AssertNotCalled(t, "GetByUsername", mock.Anything, mock.Anything)
			})
		}
	})
}

func TestService_Bootstrap(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cfg := user.SuperuserConfig{
		Username: "admin",
		Email:    "admin@example.com",
		Password: "Admin1234",
		FullName: "Administrator",
	}

	t.Run("incomplete config skips", func(t *testing.T) {
		t.Parallel()
		storage := &MockStorage{}

		ok, err := newService(storage).Bootstrap(ctx, user.SuperuserConfig{Username: "admin"})
		require.NoError(t, err)
		assert.False(t, ok)
		storage.AssertNotCalled(t, "GetByUsername", mock.Anything, mock.Anything)
	})

	t.Run("existing superuser is kept", func(t *testing.T) {
		t.Parallel()
		storage := &MockStorage{}
		storage.On("GetByUsername", ctx, "admin").Return(&user.User{ID: 1, Username: "admin"}, nil)

		ok, err := newService(storage).Bootstrap(ctx, cfg)
		require.NoError(t, err)
		assert.True(t, ok)
		storage.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("creates superuser", func(t *testing.T) {
		t.Parallel()
		storage := &MockStorage{}
		storage.On("GetByUsername", ctx, "admin").Return(nil, user.ErrNotFound)
		storage.On("GetByEmail", ctx, "admin@example.com").Return(nil, user.ErrNotFound)
		storage.On("Create", ctx, mock.MatchedBy(func(u *user.User) bool {
			return u.IsSuperuser && u.IsActive && u.Username == "admin"
		})).Return(nil)

		ok, err := newService(storage).Bootstrap(ctx, cfg)
		require.NoError(t, err)
		assert.True(t, ok)
		storage.AssertExpectations(t)
	})

	t.Run("weak password fails", func(t *testing.T) {
		t.Parallel()
		storage := &MockStorage{}
		storage.On("GetByUsername", ctx, "admin").Return(nil, user.ErrNotFound)

		weak := cfg
		weak.Password = "admin123"
		ok, err := newService(storage).Bootstrap(ctx, weak)
		assert.ErrorIs(t, err, user.ErrBootstrapFailed)
		assert.True(t, validator.IsValidationError(err))
		assert.False(t, ok)
		storage.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("storage failure", func(t *testing.T) {
		t.Parallel()
		storage := &MockStorage{}
		storage.On("GetByUsername", ctx, "admin").Return(nil, errors.New("db down"))

		ok, err := newService(storage).Bootstrap(ctx, cfg)
		assert.ErrorIs(t, err, user.ErrBootstrapFailed)
		assert.False(t, ok)
	})
}

func TestUser_Profile(t *testing.T) {
	t.Parallel()

	u := &user.User{ID: 3, Username: "bob", Email: "bob@example.com", FullName: "Bob", HashedPassword: "x", IsActive: true}
	assert.Equal(t, user.Profile{ID: 3, Username: "bob", Email: "bob@example.com", FullName: "Bob", IsActive: true}, u.Profile())
}
