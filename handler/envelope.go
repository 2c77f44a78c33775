package handler

import (
	"encoding/json"
	"net/http"
	"time"
)

// TimestampLayout renders envelope timestamps: ISO-8601, UTC, millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Default envelope messages.
const (
	MessageSuccess         = "operation successful"
	MessageCreated         = "created successfully"
	MessageUpdated         = "updated successfully"
	MessageDeleted         = "deleted successfully"
	MessageNotFound        = "resource not found"
	MessageUnauthorized    = "unauthorized access"
	MessageForbidden       = "access forbidden"
	MessageBadRequest      = "bad request"
	MessageInternalError   = "internal server error"
	MessageValidation      = "request validation failed"
	MessageTooManyRequests = "too many requests"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success   bool   `json:"success"`
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
	Timestamp string `json:"timestamp"`
}

// NewEnvelope builds an envelope stamped with the current UTC time.
func NewEnvelope(success bool, code int, message string, data any) Envelope {
	return Envelope{
		Success:   success,
		Code:      code,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC().Format(TimestampLayout),
	}
}

// Render writes the envelope as JSON with the HTTP status equal to Code.
func (e Envelope) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.Code)
	return json.NewEncoder(w).Encode(e)
}

// Option overrides envelope defaults.
type Option func(*Envelope)

// WithMessage replaces the default message. Empty values are ignored.
func WithMessage(msg string) Option {
	return func(e *Envelope) {
		if msg != "" {
			e.Message = msg
		}
	}
}

// WithData attaches a payload.
func WithData(data any) Option {
	return func(e *Envelope) { e.Data = data }
}

// Status builds an envelope for code with success derived from it.
func Status(code int, message string, opts ...Option) Envelope {
	e := NewEnvelope(code < http.StatusBadRequest, code, message, nil)
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Success builds a 200 envelope carrying data.
func Success(data any, opts ...Option) Envelope {
	return Status(http.StatusOK, MessageSuccess, append([]Option{WithData(data)}, opts...)...)
}

// Created builds a 201 envelope carrying the new resource.
func Created(data any, opts ...Option) Envelope {
	return Status(http.StatusCreated, MessageCreated, append([]Option{WithData(data)}, opts...)...)
}

// Updated builds a 200 envelope carrying the changed resource.
func Updated(data any, opts ...Option) Envelope {
	return Status(http.StatusOK, MessageUpdated, append([]Option{WithData(data)}, opts...)...)
}

// Deleted builds a 200 envelope without data.
func Deleted(opts ...Option) Envelope {
	return Status(http.StatusOK, MessageDeleted, opts...)
}

// NotFound builds a 404 envelope.
func NotFound(opts ...Option) Envelope {
	return Status(http.StatusNotFound, MessageNotFound, opts...)
}

// Unauthorized builds a 401 envelope.
func Unauthorized(opts ...Option) Envelope {
	return Status(http.StatusUnauthorized, MessageUnauthorized, opts...)
}

// Forbidden builds a 403 envelope.
func Forbidden(opts ...Option) Envelope {
	return Status(http.StatusForbidden, MessageForbidden, opts...)
}

// BadRequest builds a 400 envelope.
func BadRequest(opts ...Option) Envelope {
	return Status(http.StatusBadRequest, MessageBadRequest, opts...)
}

// InternalError builds a 500 envelope.
func InternalError(opts ...Option) Envelope {
	return Status(http.StatusInternalServerError, MessageInternalError, opts...)
}

// Page is the data payload of a paginated envelope.
type Page[T any] struct {
	Items   []T   `json:"items"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Size    int   `json:"size"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"has_next"`
	HasPrev bool  `json:"has_prev"`
}

// NewPage computes the derived pagination fields.
func NewPage[T any](items []T, total int64, page, size int) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if size > 0 {
		pages = int((total + int64(size) - 1) / int64(size))
	}
	return Page[T]{
		Items:   items,
		Total:   total,
		Page:    page,
		Size:    size,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}

// Paginated builds a success envelope carrying a Page.
func Paginated[T any](items []T, total int64, page, size int, opts ...Option) Envelope {
	return Success(NewPage(items, total, page, size), opts...)
}
