package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/botenders/govsimplify/internal/attachment"
	"github.com/botenders/govsimplify/internal/keys"
	"github.com/botenders/govsimplify/internal/ui"
	"github.com/botenders/govsimplify/internal/ui/modals"
)

// handleModalKey routes a key press to the handler for the visible modal.
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch s := m.modal.State.(type) {
	case *modals.AttachmentListState:
		return m.handleAttachmentListModal(key, msg, s)
	case *modals.AttachmentPreviewState:
		return m.handleAttachmentPreviewModal(key, msg)
	case *modals.HelpState:
		return m.handleHelpModal(key, msg, s)
	case *modals.SettingsState:
		return m.handleSettingsModal(key, msg, s)
	}

	if key == keys.Escape {
		m.modal.Hide()
		return m, nil
	}
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

func (m *Model) handleAttachmentListModal(key string, msg tea.KeyPressMsg, state *modals.AttachmentListState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		att, ok := state.SelectedAttachment()
		m.modal.Hide()
		if !ok {
			return m, nil
		}
		return m, m.openAttachment(att)
	}
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

func (m *Model) handleAttachmentPreviewModal(key string, msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape, keys.Enter, "q":
		m.modal.Hide()
		return m, nil
	}
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

func (m *Model) handleHelpModal(key string, msg tea.KeyPressMsg, state *modals.HelpState) (tea.Model, tea.Cmd) {
	// While filtering, Enter and Esc belong to the filter input
	if !state.IsFiltering() {
		switch key {
		case keys.Escape, keys.Enter, "q":
			m.modal.Hide()
			return m, nil
		}
	}
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleSettingsModal saves the form on Enter. A backend URL change rebuilds
// the client; the active conversation keeps its transcript.
func (m *Model) handleSettingsModal(key string, msg tea.KeyPressMsg, state *modals.SettingsState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		if err := state.Validate(); err != nil {
			m.modal.SetError(err.Error())
			return m, nil
		}

		if state.APIBaseURLChanged() {
			m.config.SetAPIBaseURL(state.GetAPIBaseURL())
			m.backend = m.newBack(m.config)
			m.log.Info("backend changed", "url", state.GetAPIBaseURL())
		}
		if state.ThemeChanged() {
			theme := state.GetSelectedTheme()
			ui.SetThemeByName(theme)
			m.config.SetTheme(theme)
			m.log.Info("theme changed", "theme", theme)
		}
		m.config.SetNotificationsEnabled(state.NotificationsEnabled)
		if m.config.GetTrustAttachmentHTML() != state.TrustAttachmentHTML {
			m.config.SetTrustAttachmentHTML(state.TrustAttachmentHTML)
			m.convert = attachment.NewConverter(state.TrustAttachmentHTML)
		}

		m.modal.Hide()
		if err := m.config.Save(); err != nil {
			m.log.Error("failed to save settings", "error", err)
			return m, m.ShowFlashError("Could not save settings")
		}
		m.chat.Refresh()
		return m, m.ShowFlashSuccess("Settings saved")
	}
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}
