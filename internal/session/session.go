package session

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gennadis/medagentui/internal/chat"
)

const (
	maxTitleRunes     = 30
	maxFileTitleRunes = 25
	titleEllipsis     = "..."
)

// Session represents one independent analysis thread. Chat-mode agents fill
// Entries; document-mode agents fill Result with the raw service payload.
type Session struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	TitleDerived   bool            `json:"title_derived,omitempty"`
	Entries        []chat.Entry    `json:"entries,omitempty"`
	Result         json.RawMessage `json:"result,omitempty"`
	SourceFileName string          `json:"source_file_name,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// NewSession creates a new Session instance.
func NewSession(title string) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: time.Now(),
	}
}

// DeriveTitleOnce overwrites the placeholder title with candidate. Only the
// first call has any effect; later exchanges never rename a session.
func (s *Session) DeriveTitleOnce(candidate string) {
	if s.TitleDerived {
		return
	}
	s.Title = candidate
	s.TitleDerived = true
}

// DeriveTitle truncates a first user message into a session title.
func DeriveTitle(input string) string {
	return truncateRunes(strings.TrimSpace(input), maxTitleRunes)
}

// DeriveFileTitle builds a session title from an uploaded file's name.
func DeriveFileTitle(filename string) string {
	return "Analysis: " + truncateRunes(filename, maxFileTitleRunes)
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + titleEllipsis
}
