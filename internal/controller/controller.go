package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/gennadis/medagentui/internal/agent"
	"github.com/gennadis/medagentui/internal/chat"
	"github.com/gennadis/medagentui/internal/client"
	"github.com/gennadis/medagentui/internal/session"
)

var (
	// ErrEmptyInput rejects an empty or whitespace-only chat submission.
	ErrEmptyInput = errors.New("empty input")
	// ErrNoFile rejects an upload with no file chosen.
	ErrNoFile = errors.New("no file chosen")
	// ErrBusy rejects a submission while another one is in flight.
	ErrBusy = errors.New("a submission is already in flight")
	// ErrWrongMode rejects an operation the agent's session mode does not
	// support.
	ErrWrongMode = errors.New("operation not supported by this agent")
)

// Analyzer is the analysis service contract the controller depends on.
type Analyzer interface {
	AnalyzeSymptoms(ctx context.Context, symptoms string) (string, error)
	AnalyzeReport(ctx context.Context, filename string, file io.Reader) (*client.ReportPayload, json.RawMessage, error)
	AnalyzePrescription(ctx context.Context, filename string, file io.Reader) (*client.PrescriptionPayload, json.RawMessage, error)
}

// Controller orchestrates one user interaction at a time for a single agent:
// validate input, record the user's contribution optimistically, call the
// service, and apply the outcome to the session that initiated it. Outcomes
// are applied by the session id captured at submit time, so a response landing
// after its session was deleted is silently dropped instead of hitting
// whatever is current.
type Controller struct {
	profile  agent.Profile
	store    *session.Store
	analyzer Analyzer

	busy    bool
	lastErr string
}

// New creates a controller for one agent.
func New(profile agent.Profile, store *session.Store, analyzer Analyzer) *Controller {
	return &Controller{profile: profile, store: store, analyzer: analyzer}
}

// Store exposes the underlying session store for browsing operations.
func (c *Controller) Store() *session.Store {
	return c.store
}

// Busy reports whether a submission is in flight.
func (c *Controller) Busy() bool {
	return c.busy
}

// LastError returns the transient error banner, empty if none.
func (c *Controller) LastError() string {
	return c.lastErr
}

// ClearError dismisses the error banner.
func (c *Controller) ClearError() {
	c.lastErr = ""
}

// SendMessage runs one chat interaction. Validation failures reject the
// submission before any state change; service failures surface as a plain
// error entry plus the error banner, and the user's optimistic entry is kept.
func (c *Controller) SendMessage(ctx context.Context, text string) error {
	if c.profile.Mode != agent.ModeChat {
		return ErrWrongMode
	}
	symptoms := strings.TrimSpace(text)
	if symptoms == "" {
		return ErrEmptyInput
	}
	if c.busy {
		return ErrBusy
	}

	c.busy = true
	defer func() { c.busy = false }()

	sessionID := c.store.Current().ID
	c.mustApply(sessionID, func(s *session.Session) {
		s.Entries = append(s.Entries, chat.NewUserEntry(symptoms))
	})

	markdown, err := c.analyzer.AnalyzeSymptoms(ctx, symptoms)
	if err != nil {
		c.recordFailure(sessionID, err)
		return nil
	}

	applyErr := c.store.Apply(sessionID, func(s *session.Session) {
		s.Entries = append(s.Entries, chat.NewAgentEntry(markdown, chat.RenderRich))
		s.DeriveTitleOnce(session.DeriveTitle(symptoms))
	})
	if errors.Is(applyErr, session.ErrNotFound) {
		c.dropStale(sessionID)
		return nil
	}
	c.lastErr = ""
	return nil
}

// UploadFile runs one document interaction. The raw payload is stored
// verbatim so the session can be re-rendered from its persisted copy.
func (c *Controller) UploadFile(ctx context.Context, filename string, file io.Reader) error {
	if c.profile.Mode != agent.ModeDocument {
		return ErrWrongMode
	}
	if filename == "" || file == nil {
		return ErrNoFile
	}
	if c.busy {
		return ErrBusy
	}

	c.busy = true
	defer func() { c.busy = false }()

	sessionID := c.store.Current().ID
	c.mustApply(sessionID, func(s *session.Session) {
		s.SourceFileName = filename
	})

	raw, err := c.analyze(ctx, filename, file)
	if err != nil {
		c.recordFailure(sessionID, err)
		return nil
	}

	applyErr := c.store.Apply(sessionID, func(s *session.Session) {
		s.Result = raw
		s.DeriveTitleOnce(session.DeriveFileTitle(filename))
	})
	if errors.Is(applyErr, session.ErrNotFound) {
		c.dropStale(sessionID)
		return nil
	}
	c.lastErr = ""
	return nil
}

func (c *Controller) analyze(ctx context.Context, filename string, file io.Reader) (json.RawMessage, error) {
	switch c.profile.Kind {
	case agent.KindPrescription:
		_, raw, err := c.analyzer.AnalyzePrescription(ctx, filename, file)
		return raw, err
	default:
		_, raw, err := c.analyzer.AnalyzeReport(ctx, filename, file)
		return raw, err
	}
}

// recordFailure appends a plain error entry (chat mode) and raises the error
// banner. Failure text is always plain so a malformed or adversarial service
// response is never interpreted as markup.
func (c *Controller) recordFailure(sessionID string, err error) {
	reason := "Error: " + err.Error()

	applyErr := c.store.Apply(sessionID, func(s *session.Session) {
		if c.profile.Mode == agent.ModeChat {
			s.Entries = append(s.Entries, chat.NewAgentEntry(reason, chat.RenderPlain))
		}
	})
	if errors.Is(applyErr, session.ErrNotFound) {
		c.dropStale(sessionID)
		return
	}
	c.lastErr = reason
}

func (c *Controller) mustApply(sessionID string, mutate func(*session.Session)) {
	if err := c.store.Apply(sessionID, mutate); err != nil {
		slog.Error("failed to update session", "session_id", sessionID, "error", err)
	}
}

func (c *Controller) dropStale(sessionID string) {
	slog.Debug("dropping response for deleted session", "session_id", sessionID)
}
