package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/botenders/govsimplify/internal/ui"
)

// ShowFlash puts text in the footer and starts the expiry ticker.
func (m *Model) ShowFlash(text string, flashType ui.FlashType) tea.Cmd {
	m.footer.SetFlash(text, flashType)
	if flashType == ui.FlashError {
		m.log.Warn("flash", "text", text)
	}
	return ui.FlashTick()
}

func (m *Model) ShowFlashError(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashError)
}

func (m *Model) ShowFlashWarning(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashWarning)
}

func (m *Model) ShowFlashInfo(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashInfo)
}

// ShowFlashSuccess is used for completed user actions such as copies and saves.
func (m *Model) ShowFlashSuccess(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashSuccess)
}
