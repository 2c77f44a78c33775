package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEventValidation = errors.New("audit event validation failed")
	ErrStorageFailed   = errors.New("audit storage failed")
)

type Result string

const (
	ResultSuccess Result = "success"
	ResultFailure Result = "failure"
	ResultError   Result = "error"
)

// Event is a single audited action.
type Event struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id,omitempty"`
	Action    string         `json:"action"`
	Result    Result         `json:"result"`
	Error     string         `json:"error,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
	IP        string         `json:"ip,omitempty"`
	UserAgent string         `json:"user_agent,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func (e *Event) Validate() error {
	if e.Action == "" {
		return fmt.Errorf("%w: action is required", ErrEventValidation)
	}
	return nil
}

// Storage persists events.
type Storage interface {
	Store(ctx context.Context, events ...Event) error
}

// Logger records audit events.
type Logger interface {
	Log(ctx context.Context, action string, opts ...EventOption) error
	LogError(ctx context.Context, action string, err error, opts ...EventOption) error
}

type EventOption func(*Event)

func WithUserID(id string) EventOption {
	return func(e *Event) { e.UserID = id }
}

func WithResult(result Result) EventOption {
	return func(e *Event) { e.Result = result }
}

func WithMetadata(key string, value any) EventOption {
	return func(e *Event) {
		if e.Metadata == nil {
			e.Metadata = make(map[string]any)
		}
		e.Metadata[key] = value
	}
}

type contextExtractor func(context.Context) string

// Option configures a Logger.
type Option func(*logger)

func WithRequestIDExtractor(fn func(context.Context) string) Option {
	return func(l *logger) { l.requestID = fn }
}

func WithIPExtractor(fn func(context.Context) string) Option {
	return func(l *logger) { l.ip = fn }
}

func WithUserAgentExtractor(fn func(context.Context) string) Option {
	return func(l *logger) { l.userAgent = fn }
}

func WithClock(now func() time.Time) Option {
	return func(l *logger) {
		if now != nil {
			l.now = now
		}
	}
}

type logger struct {
	storage   Storage
	requestID contextExtractor
	ip        contextExtractor
	userAgent contextExtractor
	now       func() time.Time
}

// NewLogger creates a Logger. Panics when storage is nil.
func NewLogger(storage Storage, opts ...Option) Logger {
	if storage == nil {
		panic("audit: storage cannot be nil")
	}
	l := &logger{storage: storage, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *logger) Log(ctx context.Context, action string, opts ...EventOption) error {
	return l.store(ctx, l.newEvent(ctx, action, ResultSuccess), opts)
}

func (l *logger) LogError(ctx context.Context, action string, err error, opts ...EventOption) error {
	event := l.newEvent(ctx, action, ResultError)
	if err != nil {
		event.Error = err.Error()
	}
	return l.store(ctx, event, opts)
}

func (l *logger) newEvent(ctx context.Context, action string, result Result) Event {
	e := Event{
		ID:        uuid.NewString(),
		Action:    action,
		Result:    result,
		CreatedAt: l.now().UTC(),
	}
	if l.requestID != nil {
		e.RequestID = l.requestID(ctx)
	}
	if l.ip != nil {
		e.IP = l.ip(ctx)
	}
	if l.userAgent != nil {
		e.UserAgent = l.userAgent(ctx)
	}
	return e
}

func (l *logger) store(ctx context.Context, event Event, opts []EventOption) error {
	for _, opt := range opts {
		opt(&event)
	}
	if err := event.Validate(); err != nil {
		return err
	}
	if err := l.storage.Store(ctx, event); err != nil {
		return errors.Join(ErrStorageFailed, err)
	}
	return nil
}

// Nop returns a Logger that discards events.
func Nop() Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Log(context.Context, string, ...EventOption) error { return nil }

func (nopLogger) LogError(context.Context, string, error, ...EventOption) error { return nil }
