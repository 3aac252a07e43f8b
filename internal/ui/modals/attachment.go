package modals

import (
	"fmt"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/botenders/govsimplify/internal/api"
	"github.com/botenders/govsimplify/internal/keys"
)

// =============================================================================
// AttachmentListState - picker over every attachment in the transcript
// =============================================================================

// AttachmentListState lists the conversation's attachments, newest first.
type AttachmentListState struct {
	Items    []api.Attachment
	Selected int
}

func (*AttachmentListState) modalState() {}

func (s *AttachmentListState) Title() string { return "Attachments" }

func (s *AttachmentListState) Help() string {
	return "↑/↓: navigate  Enter: open  Esc: close"
}

func (s *AttachmentListState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	items := make([]string, len(s.Items))
	for i, a := range s.Items {
		kind := "preview"
		if a.IsPDF() {
			kind = "pdf"
		}
		items[i] = TruncateString(fmt.Sprintf("%s (%s)", a.DisplayTitle(), kind), ModalWidth-10)
	}
	list := RenderSelectableList(items, s.Selected)

	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, list, help)
}

func (s *AttachmentListState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case keys.Up, "k":
			if s.Selected > 0 {
				s.Selected--
			}
		case keys.Down, "j":
			if s.Selected < len(s.Items)-1 {
				s.Selected++
			}
		}
	}
	return s, nil
}

// SelectedAttachment returns the highlighted attachment
func (s *AttachmentListState) SelectedAttachment() (api.Attachment, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Items) {
		return api.Attachment{}, false
	}
	return s.Items[s.Selected], true
}

// NewAttachmentListState creates the picker. items should already be ordered
// newest first.
func NewAttachmentListState(items []api.Attachment) *AttachmentListState {
	return &AttachmentListState{Items: items}
}

// =============================================================================
// AttachmentPreviewState - in-app viewer for HTML attachments
// =============================================================================

// titleAndHelpOverhead is the rows taken by the title, help line and margins
const titleAndHelpOverhead = 4

// AttachmentPreviewState shows an attachment's content rendered as terminal
// markdown, with a toggle to the markup it was rendered from.
type AttachmentPreviewState struct {
	title      string
	source     string
	render     func(width int) string
	showSource bool
	viewport   viewport.Model
	width      int
}

func (*AttachmentPreviewState) modalState() {}

func (s *AttachmentPreviewState) PreferredWidth() int { return ModalWidthWide }

func (s *AttachmentPreviewState) Title() string { return s.title }

func (s *AttachmentPreviewState) Help() string {
	if s.showSource {
		return "↑/↓: scroll  r: rendered  Esc/q/Enter: close"
	}
	return "↑/↓: scroll  r: source  Esc/q/Enter: close"
}

// SetSize implements ModalWithSize so the modal framework passes dimensions.
func (s *AttachmentPreviewState) SetSize(width, height int) {
	s.width = max(10, width)
	s.viewport.SetWidth(s.width)
	s.viewport.SetHeight(max(1, height-titleAndHelpOverhead))
	s.refresh()
}

// ShowingSource reports whether the raw markup is displayed.
func (s *AttachmentPreviewState) ShowingSource() bool {
	return s.showSource
}

func (s *AttachmentPreviewState) refresh() {
	if s.showSource {
		s.viewport.SetContent(lipgloss.NewStyle().Foreground(ColorTextMuted).Width(s.width).Render(s.source))
	} else {
		s.viewport.SetContent(s.render(s.width))
	}
}

func (s *AttachmentPreviewState) Render() string {
	title := ModalTitleStyle.Render(TruncateString(s.title, max(10, s.width)))
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.viewport.View(), help)
}

func (s *AttachmentPreviewState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok && key.String() == "r" {
		s.showSource = !s.showSource
		s.refresh()
		s.viewport.GotoTop()
		return s, nil
	}
	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return s, cmd
}

// ScrollOffset returns the preview's vertical scroll position
func (s *AttachmentPreviewState) ScrollOffset() int {
	return s.viewport.YOffset()
}

// NewAttachmentPreviewState creates the preview. render turns the content
// into styled text for a given width; source is shown by the raw toggle.
func NewAttachmentPreviewState(title, source string, render func(width int) string) *AttachmentPreviewState {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	s := &AttachmentPreviewState{
		title:    title,
		source:   source,
		render:   render,
		viewport: vp,
	}
	s.SetSize(ModalWidthWide-6, 20)
	return s
}
