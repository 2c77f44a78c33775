package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/progenglish/pkg/apperr"
	"github.com/dmitrymomot/progenglish/pkg/logger"
	"github.com/dmitrymomot/progenglish/pkg/pg"
	"github.com/dmitrymomot/progenglish/pkg/requestid"
	"github.com/dmitrymomot/progenglish/pkg/validator"
)

// ErrorHandlerConfig configures the error translator.
type ErrorHandlerConfig struct {
	// Debug exposes the type and message of unexpected faults in 500 responses.
	Debug bool
}

// ErrorTranslator turns any error into an Envelope and writes it.
type ErrorTranslator struct {
	log   *slog.Logger
	debug bool
	rules []translateRule
}

// translateRule converts err when it recognises it.
type translateRule func(t *ErrorTranslator, err error) (Envelope, bool)

var defaultTranslator = NewErrorTranslator(nil, ErrorHandlerConfig{})

// NewErrorTranslator creates a translator. A nil logger falls back to slog.Default.
func NewErrorTranslator(log *slog.Logger, cfg ErrorHandlerConfig) *ErrorTranslator {
	if log == nil {
		log = slog.Default()
	}
	return &ErrorTranslator{
		log:   log,
		debug: cfg.Debug,
		rules: []translateRule{
			translateValidation,
			translateTyped,
			translateConstraint,
		},
	}
}

// NewErrorHandler returns the translator as an ErrorHandler for Wrap.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	return NewErrorTranslator(log, cfg).Handle
}

// Translate maps err to an envelope. It never fails: errors no rule
// recognises become a 500 envelope.
func (t *ErrorTranslator) Translate(err error) Envelope {
	for _, rule := range t.rules {
		if env, ok := rule(t, err); ok {
			return env
		}
	}
	return t.internal(err)
}

// Handle implements ErrorHandler[Context].
func (t *ErrorTranslator) Handle(ctx Context, err error) {
	t.Write(ctx.ResponseWriter(), ctx.Request(), err)
}

// Write translates, logs and renders err.
func (t *ErrorTranslator) Write(w http.ResponseWriter, r *http.Request, err error) {
	env := t.Translate(err)
	t.logError(r, err, env.Code)
	if renderErr := env.Render(w, r); renderErr != nil {
		t.log.ErrorContext(r.Context(), "failed to render error response",
			logger.Error(renderErr),
			logger.Component("error_handler"),
		)
	}
}

func translateValidation(_ *ErrorTranslator, err error) (Envelope, bool) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return Envelope{}, false
	}
	return Status(http.StatusUnprocessableEntity, MessageValidation, WithData(ve)), true
}

func translateTyped(t *ErrorTranslator, err error) (Envelope, bool) {
	e, ok := apperr.As(err)
	if !ok {
		return Envelope{}, false
	}
	switch e.Kind {
	case apperr.KindInternal:
		return t.internal(err), true
	case apperr.KindValidation:
		return Status(http.StatusUnprocessableEntity, MessageValidation, WithMessage(e.Message), WithData(e.Data)), true
	default:
		return Status(e.Kind.Status(), e.Message, WithData(e.Data)), true
	}
}

func translateConstraint(_ *ErrorTranslator, err error) (Envelope, bool) {
	ct, ok := pg.ConstraintTypeOf(err)
	if !ok {
		return Envelope{}, false
	}
	return Status(http.StatusBadRequest, apperr.ConstraintMessage(ct)), true
}

func (t *ErrorTranslator) internal(err error) Envelope {
	if !t.debug {
		return InternalError()
	}

	var chain []string
	for e := err; e != nil; e = errors.Unwrap(e) {
		chain = append(chain, e.Error())
	}
	typeName := fmt.Sprintf("%T", err)
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return InternalError(
		WithMessage(typeName+": "+msg),
		WithData(map[string]any{
			"exception_type": typeName,
			"message":        msg,
			"args":           chain,
		}),
	)
}

func (t *ErrorTranslator) logError(r *http.Request, err error, status int) {
	level := slog.LevelError
	if status < http.StatusInternalServerError {
		level = slog.LevelWarn
	}
	t.log.LogAttrs(r.Context(), level, "request error",
		logger.RequestID(requestid.FromContext(r.Context())),
		logger.Error(err),
		slog.Int("status_code", status),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		logger.Component("error_handler"),
	)
}
