package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/progenglish/pkg/pg"
)

// PostgresStorage writes events to the audit_events table.
type PostgresStorage struct {
	db pg.DB
}

func NewPostgresStorage(db pg.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

const insertEventQuery = `INSERT INTO audit_events
	(id, user_id, action, result, request_id, ip, user_agent, error, metadata, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

func (s *PostgresStorage) Store(ctx context.Context, events ...Event) error {
	for _, e := range events {
		meta := []byte("{}")
		if len(e.Metadata) > 0 {
			var err error
			if meta, err = json.Marshal(e.Metadata); err != nil {
				return fmt.Errorf("marshal metadata: %w", err)
			}
		}
		if _, err := s.db.Exec(ctx, insertEventQuery,
			e.ID, e.UserID, e.Action, string(e.Result), e.RequestID,
			e.IP, e.UserAgent, e.Error, meta, e.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert audit event: %w", err)
		}
	}
	return nil
}

// SlogStorage writes events as structured log records.
type SlogStorage struct {
	log *slog.Logger
}

func NewSlogStorage(log *slog.Logger) *SlogStorage {
	return &SlogStorage{log: log}
}

func (s *SlogStorage) Store(ctx context.Context, events ...Event) error {
	for _, e := range events {
		level := slog.LevelInfo
		if e.Result != ResultSuccess {
			level = slog.LevelWarn
		}
		s.log.LogAttrs(ctx, level, "audit event",
			slog.String("event_id", e.ID),
			slog.String("action", e.Action),
			slog.String("result", string(e.Result)),
			slog.String("user_id", e.UserID),
			slog.String("ip", e.IP),
			slog.String("error", e.Error),
			slog.Any("metadata", e.Metadata),
			slog.String("component", "audit"),
		)
	}
	return nil
}
