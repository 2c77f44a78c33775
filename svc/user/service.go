package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/progenglish/pkg/apperr"
	"github.com/dmitrymomot/progenglish/pkg/logger"
	"github.com/dmitrymomot/progenglish/pkg/password"
	"github.com/dmitrymomot/progenglish/pkg/sanitizer"
	"github.com/dmitrymomot/progenglish/pkg/validator"
)

const (
	UsernameMinLength = 3
	UsernameMaxLength = 50
	FullNameMaxLength = 100
)

// Service manages accounts.
type Service interface {
	Create(ctx context.Context, in CreateInput) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Bootstrap(ctx context.Context, cfg SuperuserConfig) (bool, error)
}

type service struct {
	storage Storage
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures the user service.
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

// Create registers an account. Duplicate usernames or emails are reported
// as domain failures naming the taken value.
func (s *service) Create(ctx context.Context, in CreateInput) (*User, error) {
	in.Username = sanitizer.Trim(in.Username)
	in.Email = sanitizer.Trim(in.Email)
	in.FullName = sanitizer.SingleLine(in.FullName)

	if err := validator.Apply(
		validator.ValidUsername("username", in.Username, UsernameMinLength, UsernameMaxLength),
		validator.ValidEmail("email", in.Email),
		validator.RequiredString("password", in.Password),
		validator.StrongPassword("password", in.Password),
		validator.MaxLenString("full_name", in.FullName, FullNameMaxLength),
	); err != nil {
		return nil, err
	}

	if _, err := s.storage.GetByUsername(ctx, in.Username); err == nil {
		return nil, apperr.Domain(fmt.Sprintf("username %s already exists", in.Username))
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	if _, err := s.storage.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperr.Domain(fmt.Sprintf("email %s already exists", in.Email))
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now().UTC()
	u := &User{
		Username:       in.Username,
		Email:          in.Email,
		FullName:       in.FullName,
		HashedPassword: hash,
		IsActive:       true,
		IsSuperuser:    in.IsSuperuser,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.storage.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user created",
		logger.UserID(u.ID),
		slog.String("username", u.Username),
		logger.Component("user"),
	)

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.storage.GetByID(ctx, id)
}

func (s *service) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.storage.GetByUsername(ctx, username)
}

func (s *service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.storage.GetByEmail(ctx, email)
}

// Bootstrap creates the configured superuser unless it already exists.
// It reports whether the account is present afterwards; an incomplete
// configuration skips creation.
func (s *service) Bootstrap(ctx context.Context, cfg SuperuserConfig) (bool, error) {
	if cfg.Username == "" || cfg.Email == "" || cfg.Password == "" {
		s.logger.WarnContext(ctx, "superuser configuration incomplete, skipping bootstrap",
			logger.Component("user"),
		)
		return false, nil
	}

	_, err := s.storage.GetByUsername(ctx, cfg.Username)
	if err == nil {
		s.logger.InfoContext(ctx, "superuser already exists",
			slog.String("username", cfg.Username),
			logger.Component("user"),
		)
		return true, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return false, errors.Join(ErrBootstrapFailed, err)
	}

	if _, err := s.Create(ctx, CreateInput{
		Username:    cfg.Username,
		Email:       cfg.Email,
		Password:    cfg.Password,
		FullName:    cfg.FullName,
		IsSuperuser: true,
	}); err != nil {
		return false, errors.Join(ErrBootstrapFailed, err)
	}

	return true, nil
}
