package session

import (
	"errors"
	"log/slog"

	"github.com/gennadis/medagentui/internal/agent"
	"github.com/gennadis/medagentui/internal/chat"
)

// ErrNotFound is returned when a session id is absent from the store.
var ErrNotFound = errors.New("session not found")

// Adapter persists one session collection per scope key. Load must return an
// empty collection, not an error, when nothing usable was stored before.
type Adapter interface {
	Load(scopeKey string) ([]*Session, error)
	Save(scopeKey string, sessions []*Session) error
}

// Store owns the ordered session collection for one agent. New sessions are
// prepended, exactly one session is current at any time, and the collection is
// never empty after any operation completes. Every successful mutation is
// followed by a full save; save failures are logged and never surfaced.
type Store struct {
	profile   agent.Profile
	adapter   Adapter
	sessions  []*Session
	currentID string
}

// NewStore loads the persisted collection for the profile's scope and ensures
// there is at least one session to show.
func NewStore(profile agent.Profile, adapter Adapter) *Store {
	st := &Store{profile: profile, adapter: adapter}

	sessions, err := adapter.Load(profile.ScopeKey)
	if err != nil {
		slog.Error("failed to load sessions, starting fresh",
			slog.String("scope", profile.ScopeKey),
			slog.Any("error", err),
		)
		sessions = nil
	}
	st.sessions = sessions

	if len(st.sessions) == 0 {
		st.Create()
	} else {
		st.currentID = st.sessions[0].ID
	}
	return st
}

// Sessions returns the collection newest-first.
func (st *Store) Sessions() []*Session {
	out := make([]*Session, len(st.sessions))
	copy(out, st.sessions)
	return out
}

// Current returns the session the user is viewing.
func (st *Store) Current() *Session {
	s, _ := st.find(st.currentID)
	return s
}

// Create prepends a fresh session seeded with the agent's defaults, makes it
// current and persists. It never fails.
func (st *Store) Create() *Session {
	s := NewSession(st.profile.DefaultTitle)
	if st.profile.Mode == agent.ModeChat && st.profile.Welcome != "" {
		s.Entries = append(s.Entries, chat.NewAgentEntry(st.profile.Welcome, chat.RenderRich))
	}

	st.sessions = append([]*Session{s}, st.sessions...)
	st.currentID = s.ID
	st.persist()
	return s
}

// Select makes the session with the given id current.
func (st *Store) Select(id string) (*Session, error) {
	s, ok := st.find(id)
	if !ok {
		return nil, ErrNotFound
	}
	st.currentID = id
	return s, nil
}

// Delete removes the session with the given id. Deleting the current session
// moves selection to the head of the remainder; deleting the last session
// creates a fresh default one before returning.
func (st *Store) Delete(id string) {
	remaining := st.sessions[:0]
	for _, s := range st.sessions {
		if s.ID != id {
			remaining = append(remaining, s)
		}
	}
	st.sessions = remaining

	if len(st.sessions) == 0 {
		st.Create()
		return
	}
	if st.currentID == id {
		st.currentID = st.sessions[0].ID
	}
	st.persist()
}

// Apply runs mutate against the session with the given id and persists. The id
// is captured by callers at submit time, so a response landing after its
// session was deleted surfaces here as ErrNotFound instead of touching
// whatever is current.
func (st *Store) Apply(id string, mutate func(*Session)) error {
	s, ok := st.find(id)
	if !ok {
		return ErrNotFound
	}
	mutate(s)
	st.persist()
	return nil
}

// UpdateCurrent applies mutate to the current session.
func (st *Store) UpdateCurrent(mutate func(*Session)) error {
	return st.Apply(st.currentID, mutate)
}

func (st *Store) find(id string) (*Session, bool) {
	for _, s := range st.sessions {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

func (st *Store) persist() {
	if err := st.adapter.Save(st.profile.ScopeKey, st.sessions); err != nil {
		slog.Error("failed to persist sessions",
			slog.String("scope", st.profile.ScopeKey),
			slog.Any("error", err),
		)
	}
}
