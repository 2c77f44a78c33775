package handler

import (
	"fmt"
	"net/http"

	"github.com/dmitrymomot/progenglish/pkg/apperr"
	"github.com/dmitrymomot/progenglish/pkg/logger"
)

// Recoverer converts panics into a 500 envelope.
func (t *ErrorTranslator) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			err, ok := rec.(error)
			if !ok {
				err = fmt.Errorf("%v", rec)
			}
			t.Write(w, r, fmt.Errorf("panic recovered: %w", err))
		}()
		next.ServeHTTP(w, r)
	})
}

// NotFoundHandler renders unknown routes as a 404 envelope.
func (t *ErrorTranslator) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t.Write(w, r, apperr.NotFound(MessageNotFound))
	}
}

// MethodNotAllowedHandler renders a 405 envelope.
func (t *ErrorTranslator) MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		env := Status(http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
		if err := env.Render(w, r); err != nil {
			t.log.ErrorContext(r.Context(), "failed to render error response",
				logger.Error(err),
				logger.Component("error_handler"),
			)
		}
	}
}

// ErrorFunc adapts the translator to middleware error callbacks.
func (t *ErrorTranslator) ErrorFunc(wrap func(error) error) func(w http.ResponseWriter, r *http.Request, err error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		if wrap != nil {
			err = wrap(err)
		}
		t.Write(w, r, err)
	}
}
