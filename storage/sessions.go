package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/gennadis/medagentui/internal/session"
)

// schemaVersion tags persisted payloads so future field additions can migrate
// instead of silently discarding old data.
const schemaVersion = 1

type envelope struct {
	SchemaVersion int                `json:"schema_version"`
	Sessions      []*session.Session `json:"sessions"`
}

// Sessions is a storage for session collections, one serialized collection per
// agent scope key. The three agents never see each other's sessions.
type Sessions struct {
	db *sqlx.DB
}

// NewSessions creates a new Sessions storage
func NewSessions(db *sqlx.DB) (*Sessions, error) {
	createCollectionsTable := `
	CREATE TABLE IF NOT EXISTS session_collections (
		scope_key TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)
	`
	if _, err := db.Exec(createCollectionsTable); err != nil {
		return nil, fmt.Errorf("failed to create session_collections table: %w", err)
	}

	return &Sessions{db: db}, nil
}

// Load returns the session collection stored under the given scope key. A
// missing row, unreadable payload or unknown schema version all yield an empty
// collection: the caller must always get a usable starting state.
func (s *Sessions) Load(scopeKey string) ([]*session.Session, error) {
	var payload string
	err := s.db.Get(&payload, "SELECT payload FROM session_collections WHERE scope_key = ?", scopeKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions for scope %s: %w", scopeKey, err)
	}

	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		slog.Warn("discarding unreadable session payload",
			slog.String("scope", scopeKey),
			slog.Any("error", err),
		)
		return nil, nil
	}
	if env.SchemaVersion != schemaVersion {
		slog.Warn("discarding session payload with unknown schema version",
			slog.String("scope", scopeKey),
			slog.Int("version", env.SchemaVersion),
		)
		return nil, nil
	}

	slog.Debug("read sessions",
		slog.String("scope", scopeKey),
		slog.Int("count", len(env.Sessions)),
	)
	return env.Sessions, nil
}

// Save writes the full session collection for the given scope key.
func (s *Sessions) Save(scopeKey string, sessions []*session.Session) error {
	payload, err := json.Marshal(envelope{SchemaVersion: schemaVersion, Sessions: sessions})
	if err != nil {
		return fmt.Errorf("failed to marshal sessions for scope %s: %w", scopeKey, err)
	}

	upsertQuery := `
	INSERT INTO session_collections (scope_key, payload, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(scope_key) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := s.db.Exec(upsertQuery, scopeKey, string(payload)); err != nil {
		return fmt.Errorf("failed to save sessions for scope %s: %w", scopeKey, err)
	}

	slog.Debug("saved sessions",
		slog.String("scope", scopeKey),
		slog.Int("count", len(sessions)),
	)
	return nil
}
