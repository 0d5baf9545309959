package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/gennadis/medagentui/internal/agent"
	"github.com/gennadis/medagentui/internal/chat"
	"github.com/gennadis/medagentui/internal/client"
	"github.com/gennadis/medagentui/internal/config"
	"github.com/gennadis/medagentui/internal/controller"
	"github.com/gennadis/medagentui/internal/render"
	"github.com/gennadis/medagentui/internal/session"
	"github.com/gennadis/medagentui/storage"
)

const helpText = `Commands:
  /agent doctor|report|rx   switch agent
  /new                      start a new session
  /list                     list sessions
  /select N                 switch to session N from /list
  /delete N                 delete session N from /list
  /upload PATH              upload a file (report and rx agents)
  /help                     show this help
  /quit                     exit

Anything else is sent to the doctor agent as a symptom description.`

type app struct {
	controllers map[agent.Kind]*controller.Controller
	profiles    map[agent.Kind]agent.Profile
	pipeline    *render.Pipeline
	docs        *render.DocumentRenderer
	styles      render.Styles
	current     agent.Kind
}

func main() {
	ctx := context.Background()
	godotenv.Load(".env")

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg := config.NewConfig()

	db, err := storage.NewSqliteDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open session database: %s", err)
	}
	defer db.Close()

	sessionsStorage, err := storage.NewSessions(db)
	if err != nil {
		log.Fatalf("Failed to init session storage: %s", err)
	}

	apiClient := client.NewClient(*cfg)
	styles := render.DefaultStyles()

	a := &app{
		controllers: make(map[agent.Kind]*controller.Controller),
		profiles:    make(map[agent.Kind]agent.Profile),
		pipeline:    render.NewPipeline(styles),
		docs:        render.NewDocumentRenderer(styles),
		styles:      styles,
		current:     agent.KindDoctor,
	}
	for _, profile := range agent.Profiles() {
		store := session.NewStore(profile, sessionsStorage)
		a.controllers[profile.Kind] = controller.New(profile, store, apiClient)
		a.profiles[profile.Kind] = profile
	}

	fmt.Println(helpText)
	a.showSession()

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("\n[%s] > ", a.profiles[a.current].Name)
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		if !a.dispatch(ctx, strings.TrimSpace(line)) {
			return
		}
	}
}

// dispatch handles one input line; it returns false to exit.
func (a *app) dispatch(ctx context.Context, line string) bool {
	ctrl := a.controllers[a.current]

	switch {
	case line == "":
		return true
	case line == "/quit":
		return false
	case line == "/help":
		fmt.Println(helpText)
	case line == "/new":
		ctrl.Store().Create()
		a.showSession()
	case line == "/list":
		a.listSessions()
	case strings.HasPrefix(line, "/agent "):
		a.switchAgent(strings.TrimPrefix(line, "/agent "))
	case strings.HasPrefix(line, "/select "):
		a.selectSession(strings.TrimPrefix(line, "/select "))
	case strings.HasPrefix(line, "/delete "):
		a.deleteSession(strings.TrimPrefix(line, "/delete "))
	case strings.HasPrefix(line, "/upload "):
		a.upload(ctx, strings.TrimPrefix(line, "/upload "))
	case strings.HasPrefix(line, "/"):
		fmt.Println("Unknown command. Try /help.")
	default:
		a.send(ctx, line)
	}
	return true
}

func (a *app) switchAgent(name string) {
	switch strings.TrimSpace(name) {
	case "doctor":
		a.current = agent.KindDoctor
	case "report":
		a.current = agent.KindReport
	case "rx", "prescription":
		a.current = agent.KindPrescription
	default:
		fmt.Println("Unknown agent. Use doctor, report or rx.")
		return
	}
	a.showSession()
}

func (a *app) send(ctx context.Context, text string) {
	ctrl := a.controllers[a.current]
	if a.profiles[a.current].Mode != agent.ModeChat {
		fmt.Println("This agent analyzes uploaded files. Use /upload PATH.")
		return
	}

	fmt.Println("Analyzing symptoms...")
	if err := ctrl.SendMessage(ctx, text); err != nil {
		fmt.Printf("Cannot send: %s\n", err)
		return
	}
	a.showSession()
}

func (a *app) upload(ctx context.Context, path string) {
	ctrl := a.controllers[a.current]
	if a.profiles[a.current].Mode != agent.ModeDocument {
		fmt.Println("The doctor agent takes text messages; just type your symptoms.")
		return
	}

	path = strings.TrimSpace(path)
	file, err := os.Open(path)
	if err != nil {
		fmt.Printf("Cannot open file: %s\n", err)
		return
	}
	defer file.Close()

	fmt.Println("Processing file...")
	if err := ctrl.UploadFile(ctx, filepath.Base(path), file); err != nil {
		fmt.Printf("Cannot upload: %s\n", err)
		return
	}
	a.showSession()
}

func (a *app) listSessions() {
	for i, s := range a.controllers[a.current].Store().Sessions() {
		marker := " "
		if s.ID == a.controllers[a.current].Store().Current().ID {
			marker = "*"
		}
		fmt.Printf("%s %d. %s\n", marker, i+1, s.Title)
	}
}

func (a *app) selectSession(arg string) {
	s, ok := a.sessionByIndex(arg)
	if !ok {
		return
	}
	if _, err := a.controllers[a.current].Store().Select(s.ID); err != nil {
		fmt.Printf("Cannot select session: %s\n", err)
		return
	}
	a.showSession()
}

func (a *app) deleteSession(arg string) {
	s, ok := a.sessionByIndex(arg)
	if !ok {
		return
	}
	a.controllers[a.current].Store().Delete(s.ID)
	a.showSession()
}

func (a *app) sessionByIndex(arg string) (*session.Session, bool) {
	sessions := a.controllers[a.current].Store().Sessions()
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 || n > len(sessions) {
		fmt.Printf("Pick a session number between 1 and %d (see /list).\n", len(sessions))
		return nil, false
	}
	return sessions[n-1], true
}

// showSession redraws the current session: chat history for the doctor agent,
// the rendered document for the upload agents.
func (a *app) showSession() {
	ctrl := a.controllers[a.current]
	current := ctrl.Store().Current()

	fmt.Println("\n" + a.styles.Header.Render(current.Title))

	if a.profiles[a.current].Mode == agent.ModeChat {
		for _, entry := range current.Entries {
			fmt.Println(a.renderEntry(entry))
		}
	} else {
		fmt.Println(a.renderDocument(current))
	}

	if banner := ctrl.LastError(); banner != "" {
		fmt.Println(a.styles.Warn.Render(banner))
		ctrl.ClearError()
	}
}

// renderEntry displays one chat entry. Only rich agent entries go through the
// transform pipeline; user input and error entries are shown literally.
func (a *app) renderEntry(entry chat.Entry) string {
	if entry.Author == chat.AuthorUser {
		return a.styles.FieldName.Render("You:") + " " + entry.Content
	}
	if entry.Kind == chat.RenderRich {
		return a.pipeline.Run(entry.Content)
	}
	return entry.Content
}

func (a *app) renderDocument(s *session.Session) string {
	if len(s.Result) == 0 {
		return a.styles.Muted.Render("No analysis yet. Use /upload PATH to analyze a file.")
	}

	var doc string
	var err error
	switch a.current {
	case agent.KindPrescription:
		doc, err = a.docs.Prescription(s.Result)
	default:
		doc, err = a.docs.Report(s.Result)
	}
	if err != nil {
		slog.Error("failed to render stored analysis", "session_id", s.ID, "error", err)
		return a.styles.Warn.Render("Stored analysis could not be displayed.")
	}
	return doc
}
