package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gennadis/medagentui/internal/session"
)

func newTestStorage(t *testing.T) *Sessions {
	t.Helper()
	db, err := NewSqliteDB(":memory:")
	require.NoError(t, err)
	// Each new pooled connection would get its own in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	s, err := NewSessions(db)
	require.NoError(t, err)
	return s
}

func TestSessions_LoadMissingScopeIsEmpty(t *testing.T) {
	s := newTestStorage(t)

	sessions, err := s.Load("doctor_chats")
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestSessions_SaveLoadRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	first := session.NewSession("fever and headache")
	first.SourceFileName = "scan.pdf"
	second := session.NewSession("New Symptom Check")

	require.NoError(t, s.Save("doctor_chats", []*session.Session{first, second}))

	loaded, err := s.Load("doctor_chats")
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, first.ID, loaded[0].ID)
	assert.Equal(t, "fever and headache", loaded[0].Title)
	assert.Equal(t, "scan.pdf", loaded[0].SourceFileName)
	assert.Equal(t, second.ID, loaded[1].ID)
}

func TestSessions_SaveOverwritesScope(t *testing.T) {
	s := newTestStorage(t)

	require.NoError(t, s.Save("doctor_chats", []*session.Session{session.NewSession("old")}))
	replacement := session.NewSession("new")
	require.NoError(t, s.Save("doctor_chats", []*session.Session{replacement}))

	loaded, err := s.Load("doctor_chats")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, replacement.ID, loaded[0].ID)
}

func TestSessions_ScopesAreIsolated(t *testing.T) {
	s := newTestStorage(t)

	require.NoError(t, s.Save("doctor_chats", []*session.Session{session.NewSession("chat")}))
	require.NoError(t, s.Save("report_sessions", []*session.Session{session.NewSession("report")}))

	doctor, err := s.Load("doctor_chats")
	require.NoError(t, err)
	reports, err := s.Load("report_sessions")
	require.NoError(t, err)

	require.Len(t, doctor, 1)
	require.Len(t, reports, 1)
	assert.Equal(t, "chat", doctor[0].Title)
	assert.Equal(t, "report", reports[0].Title)
}

func TestSessions_CorruptPayloadIsSwallowed(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.db.Exec(
		"INSERT INTO session_collections (scope_key, payload) VALUES (?, ?)",
		"doctor_chats", "{not json at all",
	)
	require.NoError(t, err)

	sessions, err := s.Load("doctor_chats")
	require.NoError(t, err, "corruption must never propagate")
	assert.Empty(t, sessions)
}

func TestSessions_UnknownSchemaVersionIsDiscarded(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.db.Exec(
		"INSERT INTO session_collections (scope_key, payload) VALUES (?, ?)",
		"doctor_chats", `{"schema_version":99,"sessions":[{"id":"x","title":"t"}]}`,
	)
	require.NoError(t, err)

	sessions, err := s.Load("doctor_chats")
	require.NoError(t, err)
	assert.Empty(t, sessions)
}
