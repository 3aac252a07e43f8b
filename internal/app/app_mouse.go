package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/botenders/govsimplify/internal/ui"
)

// handleMouseClick routes a left click by screen region.
func (m *Model) handleMouseClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseLeft {
		return m, nil
	}

	// A click on the backdrop dismisses the modal
	if m.modal.IsVisible() {
		if !m.modal.Contains(msg.X, msg.Y) {
			m.modal.Hide()
		}
		return m, nil
	}

	if msg.Y < ui.HeaderHeight {
		return m.handleHeaderClick(msg.X)
	}
	if msg.Y >= m.height-ui.FooterHeight {
		if url, ok := m.footer.LinkAt(msg.X); ok {
			return m, openURL(url)
		}
		return m, nil
	}
	y := msg.Y - ui.HeaderHeight

	if m.view == ViewAgencySelection {
		return m, m.agencyGrid.Click(msg.X, y)
	}

	vc := ui.GetViewContext()
	if vc.NewsWidth > 0 && msg.X >= vc.ChatWidth {
		m.news.Click(y)
		m.setFocus(FocusNews)
		return m, nil
	}
	m.setFocus(FocusChat)
	return m, nil
}

// handleHeaderClick opens the logo link or leaves the conversation.
func (m *Model) handleHeaderClick(x int) (tea.Model, tea.Cmd) {
	if m.header.HitLogo(x) {
		return m, openURL(ui.LogoURL)
	}
	if m.view == ViewConversation {
		return m, m.unmountConversation()
	}
	return m, nil
}

// handleMouseWheel scrolls whatever is under the pointer.
func (m *Model) handleMouseWheel(msg tea.MouseWheelMsg) tea.Cmd {
	if m.modal.IsVisible() {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		return cmd
	}
	if m.view != ViewConversation {
		return nil
	}

	vc := ui.GetViewContext()
	if vc.NewsWidth > 0 && msg.X >= vc.ChatWidth {
		switch msg.Button {
		case tea.MouseWheelUp:
			m.news.Scroll(-1)
		case tea.MouseWheelDown:
			m.news.Scroll(1)
		}
		return nil
	}

	chat, cmd := m.chat.Update(msg)
	m.chat = chat
	return cmd
}
