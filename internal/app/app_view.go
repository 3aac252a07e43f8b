package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/botenders/govsimplify/internal/ui"
)

// View renders the app. This is the core Bubble Tea view function.
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.ReportFocus = true
	v.WindowTitle = ui.AppTitle
	if m.view == ViewConversation {
		v.WindowTitle = ui.AppTitle + " · " + m.agency.ShortName
	}
	v.SetContent(m.RenderToString())
	return v
}

// RenderToString renders the current view as a string.
// This is useful for testing.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Update footer context for conditional bindings
	m.updateFooterContext()

	header := m.header.View()
	footer := m.footer.View()

	var body string
	if m.view == ViewAgencySelection {
		body = m.agencyGrid.View()
	} else {
		body = m.chat.View()
		if ui.GetViewContext().NewsWidth > 0 {
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.news.View())
		}
	}

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		body,
		footer,
	)

	// Overlay modal if visible
	if m.modal.IsVisible() {
		return m.modal.View(view, m.width, m.height)
	}
	return view
}

// updateSizes lays the components out for the current terminal size.
func (m *Model) updateSizes() {
	if m.width == 0 || m.height == 0 {
		return
	}
	vc := ui.GetViewContext()
	vc.UpdateTerminalSize(m.width, m.height)

	m.header.SetWidth(vc.TerminalWidth)
	m.footer.SetWidth(vc.TerminalWidth)
	m.agencyGrid.SetSize(vc.TerminalWidth, vc.ContentHeight)
	m.chat.SetSize(vc.ChatWidth, vc.ContentHeight)
	m.news.SetSize(vc.NewsWidth, vc.ContentHeight)
	if m.modal.IsVisible() {
		m.modal.SetSize(vc.TerminalWidth, vc.TerminalHeight)
	}
}

// updateFooterContext updates the footer with current context for conditional bindings
func (m *Model) updateFooterContext() {
	ctx := ui.FooterContext{
		Mode:       ui.FooterCatalog,
		NewsHidden: ui.GetViewContext().NewsHidden(),
	}
	switch {
	case m.modal.IsVisible():
		ctx.Mode = ui.FooterModal
	case m.view == ViewConversation && m.focus == FocusNews:
		ctx.Mode = ui.FooterNews
	case m.view == ViewConversation:
		ctx.Mode = ui.FooterChat
	}
	if m.session != nil {
		ctx.Awaiting = m.session.IsAwaiting()
		ctx.HasAttachments = len(m.session.Attachments()) > 0
	}
	m.footer.SetContext(ctx)
}
