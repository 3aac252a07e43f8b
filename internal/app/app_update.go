package app

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/botenders/govsimplify/internal/keys"
	"github.com/botenders/govsimplify/internal/ui"
)

// Update handles messages. This is the core Bubble Tea update function that routes
// all messages to appropriate handlers.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.FocusMsg:
		m.windowFocused = true
		m.log.Debug("window focused")
		return m, nil

	case tea.BlurMsg:
		m.windowFocused = false
		m.log.Debug("window blurred")
		return m, nil

	case tea.KeyPressMsg:
		if result, cmd := m.handleKeyPress(msg); result != nil {
			return result, cmd
		}
		// Key not handled by handleKeyPress, let it fall through to the focused component

	case tea.MouseClickMsg:
		return m.handleMouseClick(msg)

	case tea.MouseWheelMsg:
		return m, m.handleMouseWheel(msg)

	case ui.AgencyConfirmedMsg:
		return m, m.mountConversation(msg.Record)

	case ReplyMsg:
		return m.handleReplyMsg(msg)

	case SlowMsg:
		return m.handleSlowMsg(msg)

	case NewsMsg:
		return m.handleNewsMsg(msg)

	case ClipboardErrorMsg:
		return m, m.ShowFlashError("Failed to copy to clipboard")

	case OpenFailedMsg:
		m.log.Warn("failed to open link", "url", msg.URL, "error", msg.Error)
		return m, m.ShowFlashError("Could not open the browser")
	}

	// Handle tick messages - components need these regardless of focus
	if cmd, handled := m.handleTickMessages(msg); handled {
		return m, cmd
	}

	// Update modal
	if m.modal.IsVisible() {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		return m, cmd
	}

	// Update focused component for other messages
	switch {
	case m.view == ViewAgencySelection:
		grid, cmd := m.agencyGrid.Update(msg)
		m.agencyGrid = grid
		cmds = append(cmds, cmd)
	case m.focus == FocusNews:
		n, cmd := m.news.Update(msg)
		m.news = n
		cmds = append(cmds, cmd)
	default:
		chat, cmd := m.chat.Update(msg)
		m.chat = chat
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles all keyboard input.
// Returns (model, cmd) if the key was handled, or (nil, nil) if it should fall through
// to the focused component.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	m.log.Debug("key press", "key", key, "view", m.view.String(), "modal", m.modal.IsVisible())

	// ctrl+c always quits, even over a modal
	if key == keys.CtrlC {
		return shortcutQuit(m)
	}

	// Handle modal first if visible
	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	// Try executing from shortcut registry
	if result, cmd, handled := m.ExecuteShortcut(key); handled {
		return result, cmd
	}

	if m.view == ViewConversation {
		if m.focus == FocusNews {
			return m.handleNewsKey(key)
		}
		if key == keys.Enter {
			return m.sendMessage()
		}
	}

	// Key not handled - return nil to signal it should fall through
	return nil, nil
}

// handleNewsKey handles the keys the news column acts on. Navigation falls
// through to the news view.
func (m *Model) handleNewsKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Enter:
		return m, m.openSelectedArticle()
	case "y":
		return m, m.copySelectedArticleLink()
	case keys.Escape:
		m.setFocus(FocusChat)
		return m, nil
	}
	return nil, nil
}

// handleTickMessages handles tick messages for animations and timers.
func (m *Model) handleTickMessages(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case ui.StopwatchTickMsg:
		chat, cmd := m.chat.Update(msg)
		m.chat = chat
		return cmd, true
	case spinner.TickMsg:
		n, cmd := m.news.Update(msg)
		m.news = n
		return cmd, true
	case ui.AnnouncementClearMsg:
		grid, cmd := m.agencyGrid.Update(msg)
		m.agencyGrid = grid
		return cmd, true
	case ui.FlashTickMsg:
		// Check if flash message has expired
		if m.footer.ClearIfExpired() {
			return nil, true
		}
		// Flash still active, continue ticking
		if m.footer.HasFlash() {
			return ui.FlashTick(), true
		}
		return nil, true
	}
	return nil, false
}
