package chat

import "time"

// Author marks who produced an entry.
type Author string

const (
	AuthorUser  Author = "user"
	AuthorAgent Author = "agent"
)

// RenderKind decides how an entry's content is displayed. It is fixed at
// creation time and never re-evaluated: rich entries pass through the
// transform pipeline before display, plain entries are shown literally.
type RenderKind string

const (
	RenderPlain RenderKind = "plain"
	RenderRich  RenderKind = "rich"
)

// Entry is one message within a chat-mode session.
type Entry struct {
	Content   string     `json:"content"`
	Author    Author     `json:"author"`
	Kind      RenderKind `json:"kind"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewUserEntry creates a plain entry authored by the user. User input is never
// interpreted as markup.
func NewUserEntry(content string) Entry {
	return Entry{
		Content:   content,
		Author:    AuthorUser,
		Kind:      RenderPlain,
		CreatedAt: time.Now(),
	}
}

// NewAgentEntry creates an agent entry with the given render kind.
func NewAgentEntry(content string, kind RenderKind) Entry {
	return Entry{
		Content:   content,
		Author:    AuthorAgent,
		Kind:      kind,
		CreatedAt: time.Now(),
	}
}
