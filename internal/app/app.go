package app

import (
	"context"
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/botenders/govsimplify/internal/agency"
	"github.com/botenders/govsimplify/internal/api"
	"github.com/botenders/govsimplify/internal/attachment"
	"github.com/botenders/govsimplify/internal/config"
	"github.com/botenders/govsimplify/internal/logger"
	"github.com/botenders/govsimplify/internal/news"
	"github.com/botenders/govsimplify/internal/session"
	"github.com/botenders/govsimplify/internal/ui"
)

// ViewMode is which top-level view is mounted
type ViewMode int

const (
	ViewAgencySelection ViewMode = iota
	ViewConversation
)

// String returns a human-readable name for the view
func (v ViewMode) String() string {
	switch v {
	case ViewAgencySelection:
		return "agency-selection"
	case ViewConversation:
		return "conversation"
	default:
		return "unknown"
	}
}

// Focus represents which panel of the conversation view is focused
type Focus int

const (
	FocusChat Focus = iota
	FocusNews
)

// Backend is the chat and news service the app talks to.
type Backend interface {
	SendMessage(ctx context.Context, agencyID string, req api.MessageRequest) (*api.Reply, error)
	FetchNews(ctx context.Context, agencyName string) ([]api.Article, error)
}

// BackendFactory builds a Backend from the current settings. The app calls it
// at startup and again when the backend URL changes.
type BackendFactory func(cfg *config.Config) Backend

// NewAPIBackend is the default BackendFactory: an HTTP client for the
// configured base URL.
func NewAPIBackend(cfg *config.Config) Backend {
	return api.NewClient(cfg.GetAPIBaseURL(), api.WithTimeout(cfg.RequestTimeout()))
}

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	version string
	log     *slog.Logger

	catalog  *agency.Catalog
	backend  Backend
	newBack  BackendFactory
	convert  *attachment.Converter
	newsData *news.Panel

	header     *ui.Header
	footer     *ui.Footer
	agencyGrid *ui.Catalog
	chat       *ui.Chat
	news       *ui.NewsView
	modal      *ui.Modal

	width  int
	height int
	view   ViewMode
	focus  Focus

	// Conversation state, set only while the conversation view is mounted
	session *session.Session
	agency  agency.Record

	windowFocused bool
}

// ReplyMsg carries the backend's answer to one message request.
type ReplyMsg struct {
	Request session.Request
	Reply   *api.Reply
	Err     error
}

// SlowMsg fires when a request has been pending past the slow threshold.
type SlowMsg struct {
	Request session.Request
}

// NewsMsg carries the result of a news fetch.
type NewsMsg struct {
	Ticket   news.Ticket
	Articles []api.Article
	Err      error
}

// New creates a new app model
func New(cfg *config.Config, cat *agency.Catalog, version string) *Model {
	// Load saved theme from config, or use default
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.SetThemeByName(savedTheme)
	}

	panel := &news.Panel{}
	m := &Model{
		config:        cfg,
		version:       version,
		log:           logger.WithComponent("app"),
		catalog:       cat,
		newBack:       NewAPIBackend,
		convert:       attachment.NewConverter(cfg.GetTrustAttachmentHTML()),
		newsData:      panel,
		header:        ui.NewHeader(),
		footer:        ui.NewFooter(),
		agencyGrid:    ui.NewCatalog(cat),
		chat:          ui.NewChat(),
		news:          ui.NewNewsView(panel),
		modal:         ui.NewModal(),
		view:          ViewAgencySelection,
		focus:         FocusChat,
		windowFocused: true,
	}
	m.backend = m.newBack(cfg)

	ui.GetViewContext().SetNewsHidden(cfg.GetNewsPanelHidden())

	// Pre-position the cursor on the last visited agency
	if last := cfg.GetLastAgency(); last != "" {
		m.agencyGrid.MoveCursorTo(last)
	}

	return m
}

// SetBackendFactory replaces how the backend is built and rebuilds it.
func (m *Model) SetBackendFactory(f BackendFactory) {
	m.newBack = f
	m.backend = f(m.config)
}

// View mode helpers

// Mode returns the mounted view
func (m *Model) Mode() ViewMode {
	return m.view
}

// Session returns the active conversation, or nil in the agency-selection view
func (m *Model) Session() *session.Session {
	return m.session
}

// ActiveAgency returns the agency of the active conversation
func (m *Model) ActiveAgency() (agency.Record, bool) {
	return m.agency, m.session != nil
}

// NewsPanel returns the news state
func (m *Model) NewsPanel() *news.Panel {
	return m.newsData
}

// CanSendMessage returns true if the user can send a new message
func (m *Model) CanSendMessage() bool {
	return m.session != nil && !m.session.IsAwaiting()
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return m.agencyGrid.Focus()
}
