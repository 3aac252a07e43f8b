package modals

import (
	"os"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/botenders/govsimplify/internal/logger"
)

func TestMain(m *testing.M) {
	// Keep test runs out of the debug log
	logger.Reset()
	logger.Init(os.DevNull)

	// Initialize modal constants for tests
	ModalWidth = 80
	ModalWidthWide = 120
	ModalInputWidth = 72
	ModalInputCharLimit = 256
	ColorPrimary = lipgloss.Color("#1F5FAD")
	ColorSecondary = lipgloss.Color("#B22234")
	ColorText = lipgloss.Color("#E6E6E6")
	ColorTextMuted = lipgloss.Color("#8A8A8A")
	ColorTextInverse = lipgloss.Color("#FFFFFF")
	ColorWarning = lipgloss.Color("#E0A100")

	code := m.Run()

	logger.Reset()
	os.Exit(code)
}

var (
	keyDown  = tea.KeyPressMsg{Code: tea.KeyDown}
	keyUp    = tea.KeyPressMsg{Code: tea.KeyUp}
	keyEnter = tea.KeyPressMsg{Code: tea.KeyEnter}
	keyEsc   = tea.KeyPressMsg{Code: tea.KeyEscape}
)

func runeKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}
