package ui

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/botenders/govsimplify/internal/ui/modals"
)

// Modal represents a popup dialog with type-safe state management.
// The State field is nil when no modal is visible.
type Modal struct {
	State modals.ModalState
	error string

	// Placement of the box from the last View, for backdrop clicks
	x, y, w, h int
}

// NewModal creates a new modal
func NewModal() *Modal {
	return &Modal{}
}

// Show displays a modal with the given state
func (m *Modal) Show(state modals.ModalState) {
	m.State = state
	m.error = ""
}

// Hide hides the modal
func (m *Modal) Hide() {
	m.State = nil
	m.error = ""
	m.w, m.h = 0, 0
}

// IsVisible returns whether the modal is visible
func (m *Modal) IsVisible() bool {
	return m.State != nil
}

// SetError sets an error message
func (m *Modal) SetError(err string) {
	m.error = err
}

// GetError returns the current error message
func (m *Modal) GetError() string {
	return m.error
}

// Update handles messages by delegating to the current state
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if m.State == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.State, cmd = m.State.Update(msg)
	return m, cmd
}

// width returns the outer width of the modal box
func (m *Modal) width(screenWidth int) int {
	w := ModalWidth
	if pw, ok := m.State.(modals.ModalWithPreferredWidth); ok {
		w = pw.PreferredWidth()
	}
	return min(w, max(1, screenWidth-2))
}

// SetSize passes the space inside the box to states that lay out their content.
func (m *Modal) SetSize(screenWidth, screenHeight int) {
	ms, ok := m.State.(modals.ModalWithSize)
	if !ok {
		return
	}
	frameW, frameH := ModalStyle.GetFrameSize()
	ms.SetSize(m.width(screenWidth)-frameW, max(1, screenHeight-frameH-2))
}

// View renders the modal centered over base. The base view is dimmed and
// stays visible around the box.
func (m *Modal) View(base string, screenWidth, screenHeight int) string {
	if m.State == nil {
		return base
	}

	content := m.State.Render()

	// Add error if present
	if m.error != "" {
		content += "\n" + StatusErrorStyle.Render(m.error)
	}

	box := ModalStyle.Width(m.width(screenWidth)).Render(content)
	m.w, m.h = lipgloss.Size(box)
	m.x = max(0, (screenWidth-m.w)/2)
	m.y = max(0, (screenHeight-m.h)/2)

	if screenWidth <= 0 || screenHeight <= 0 {
		return box
	}

	area := uv.Rect(0, 0, screenWidth, screenHeight)
	scr := uv.NewScreenBuffer(area.Dx(), area.Dy())
	uv.NewStyledString(base).Draw(scr, area)

	dim := ModalBackdropStyle.GetForeground()
	for y := 0; y < screenHeight; y++ {
		for x := 0; x < screenWidth; x++ {
			cell := scr.CellAt(x, y)
			if cell == nil {
				continue
			}
			cell = cell.Clone()
			cell.Style.Fg = dim
			cell.Style.Bg = nil
			scr.SetCell(x, y, cell)
		}
	}

	uv.NewStyledString(box).Draw(scr, uv.Rect(m.x, m.y, m.w, m.h))
	return scr.Render()
}

// Contains reports whether a screen cell falls inside the box drawn by the
// last View. Clicks outside it land on the backdrop.
func (m *Modal) Contains(x, y int) bool {
	if m.State == nil || m.w == 0 {
		return false
	}
	return x >= m.x && x < m.x+m.w && y >= m.y && y < m.y+m.h
}
