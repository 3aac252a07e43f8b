package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/botenders/govsimplify/internal/agency"
	"github.com/botenders/govsimplify/internal/logger"
	"github.com/botenders/govsimplify/internal/notification"
	"github.com/botenders/govsimplify/internal/session"
	"github.com/botenders/govsimplify/internal/ui"
)

// mountConversation leaves the catalog and starts a fresh session with rec.
// The news fetch for rec's full name is issued in the same update.
func (m *Model) mountConversation(rec agency.Record) tea.Cmd {
	if m.session != nil {
		m.session.Close()
	}

	m.session = session.New(rec.ID, session.WithSlowThreshold(m.config.SlowResponseThreshold()))
	m.agency = rec
	m.view = ViewConversation

	logger.WithSession(m.session.ID()).Info("conversation started", "agency", rec.ID)

	m.config.SetLastAgency(rec.ID)
	if err := m.config.Save(); err != nil {
		m.log.Warn("failed to save last agency", "error", err)
	}

	m.agencyGrid.Blur()
	m.header.SetAgency(rec.ShortName, rec.FullName)
	m.chat.SetSession(m.session, rec)
	m.setFocus(FocusChat)
	m.updateSizes()

	return m.fetchNews(rec)
}

// unmountConversation tears the session down and returns to the catalog.
// Late replies and news for the old session are fenced out.
func (m *Model) unmountConversation() tea.Cmd {
	if m.view != ViewConversation {
		return nil
	}
	if m.session != nil {
		logger.WithSession(m.session.ID()).Info("conversation closed", "agency", m.agency.ID)
		m.session.Close()
	}
	m.session = nil
	m.agency = agency.Record{}
	m.view = ViewAgencySelection

	m.newsData.Reset()
	m.chat.ClearSession()
	m.chat.SetFocused(false)
	m.news.SetFocused(false)
	m.header.SetAgency("", "")
	m.agencyGrid.ClearSelection()
	if m.modal.IsVisible() {
		m.modal.Hide()
	}
	m.updateSizes()

	return m.agencyGrid.Focus()
}

// fetchNews requests articles for rec and starts the loading spinner.
func (m *Model) fetchNews(rec agency.Record) tea.Cmd {
	ticket := m.newsData.Request(rec.ID)
	backend := m.backend
	name := rec.FullName

	fetch := func() tea.Msg {
		articles, err := backend.FetchNews(context.Background(), name)
		return NewsMsg{Ticket: ticket, Articles: articles, Err: err}
	}
	return tea.Batch(fetch, m.news.StartLoading())
}

// sendMessage sends the chat input. Blank input and sends while a reply is
// pending are ignored without touching the input.
func (m *Model) sendMessage() (tea.Model, tea.Cmd) {
	if m.session == nil {
		return m, nil
	}
	req, ok := m.session.Begin(m.chat.GetInput())
	if !ok {
		return m, nil
	}
	m.chat.ClearInput()

	backend := m.backend
	send := func() tea.Msg {
		reply, err := backend.SendMessage(req.Context(), req.AgencyID, req.Body())
		return ReplyMsg{Request: req, Reply: reply, Err: err}
	}
	slow := func() tea.Msg {
		if session.WaitSlow(req) {
			return SlowMsg{Request: req}
		}
		return nil
	}
	return m, tea.Batch(send, slow, m.chat.StartWaiting())
}

// handleReplyMsg merges a reply into the session it was sent from.
func (m *Model) handleReplyMsg(msg ReplyMsg) (tea.Model, tea.Cmd) {
	if m.session == nil {
		m.log.Debug("reply arrived after conversation closed", "session", msg.Request.SessionID)
		return m, nil
	}
	wasSlow := m.session.IsSlow()
	if _, ok := m.session.Resolve(msg.Request, msg.Reply, msg.Err); !ok {
		return m, nil
	}
	m.chat.Refresh()

	if wasSlow && !m.windowFocused && m.config.GetNotificationsEnabled() {
		agencyName := m.agency.ShortName
		return m, func() tea.Msg {
			notification.ReplyReady(agencyName)
			return nil
		}
	}
	return m, nil
}

// handleSlowMsg shows the slow hint if the request is still the pending one.
func (m *Model) handleSlowMsg(msg SlowMsg) (tea.Model, tea.Cmd) {
	if m.session == nil || !m.session.MarkSlow(msg.Request) {
		return m, nil
	}
	m.chat.Refresh()
	return m, nil
}

// handleNewsMsg applies a news result unless a newer request superseded it.
func (m *Model) handleNewsMsg(msg NewsMsg) (tea.Model, tea.Cmd) {
	if !m.newsData.Apply(msg.Ticket, msg.Articles, msg.Err) {
		return m, nil
	}
	if m.newsData.Empty() && m.focus == FocusNews {
		m.setFocus(FocusChat)
	}
	return m, nil
}

// setFocus moves keyboard focus between chat and news.
func (m *Model) setFocus(f Focus) {
	if f == FocusNews && ui.GetViewContext().NewsHidden() {
		f = FocusChat
	}
	m.focus = f
	m.chat.SetFocused(f == FocusChat)
	m.news.SetFocused(f == FocusNews)
}

// toggleFocus switches between chat and news
func (m *Model) toggleFocus() {
	if m.focus == FocusChat {
		m.setFocus(FocusNews)
	} else {
		m.setFocus(FocusChat)
	}
}

// toggleNewsPanel collapses or restores the news column and remembers it.
func (m *Model) toggleNewsPanel() tea.Cmd {
	vc := ui.GetViewContext()
	hidden := !vc.NewsHidden()
	vc.SetNewsHidden(hidden)
	if hidden && m.focus == FocusNews {
		m.setFocus(FocusChat)
	}
	m.updateSizes()

	m.config.SetNewsPanelHidden(hidden)
	if err := m.config.Save(); err != nil {
		m.log.Warn("failed to save news panel state", "error", err)
	}
	if hidden {
		return m.ShowFlashInfo("News hidden")
	}
	return m.ShowFlashInfo("News shown")
}
