package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/dmitrymomot/progenglish/pkg/validator"
)

// DefaultMaxJSONSize is the maximum accepted JSON body size.
const DefaultMaxJSONSize = 1 << 20

// JSON creates a JSON body binder.
//
//	r.Post("/login", handler.Wrap(h, handler.WithBinders[handler.Context, loginRequest](binder.JSON())))
func JSON() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if ct := r.Header.Get("Content-Type"); ct != "" {
			mediaType, _, err := mime.ParseMediaType(ct)
			if err != nil || mediaType != "application/json" {
				return bodyError(ErrUnsupportedMediaType, "expected application/json content type")
			}
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, DefaultMaxJSONSize+1))
		if err != nil {
			return fmt.Errorf("%w: failed to read request body: %w", ErrFailedToParseJSON, err)
		}
		if len(body) > DefaultMaxJSONSize {
			return bodyError(ErrFailedToParseJSON, fmt.Sprintf("request body too large (max %d bytes)", DefaultMaxJSONSize))
		}
		if len(bytes.TrimSpace(body)) == 0 {
			return bodyError(ErrFailedToParseJSON, "request body is required")
		}

		dec := json.NewDecoder(bytes.NewReader(body))
		if err := dec.Decode(v); err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) && typeErr.Field != "" {
				return errors.Join(ErrFailedToParseJSON, validator.ValidationErrors{{
					Field:   typeErr.Field,
					Message: fmt.Sprintf("expected %s, got %s", typeErr.Type.Kind(), typeErr.Value),
					Type:    validator.TypeParsing,
				}})
			}
			return bodyError(ErrFailedToParseJSON, "malformed JSON: "+err.Error())
		}
		if dec.More() {
			return bodyError(ErrFailedToParseJSON, "unexpected data after JSON object")
		}

		return nil
	}
}

func bodyError(sentinel error, msg string) error {
	return errors.Join(sentinel, validator.ValidationErrors{{
		Field:   "body",
		Message: msg,
		Type:    validator.TypeJSONInvalid,
	}})
}
