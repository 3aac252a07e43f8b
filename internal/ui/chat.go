package ui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/botenders/govsimplify/internal/agency"
	"github.com/botenders/govsimplify/internal/keys"
	"github.com/botenders/govsimplify/internal/logger"
	"github.com/botenders/govsimplify/internal/session"
)

// ChatInputPlaceholder is shown in the empty message input
const ChatInputPlaceholder = "Type your message..."

// Chat is the conversation panel: the transcript viewport above the message
// input.
type Chat struct {
	viewport viewport.Model
	input    textarea.Model
	width    int
	height   int
	focused  bool

	session *session.Session
	agency  agency.Record

	waitVerb string
	frame    int
	waitGen  int // tags the live stopwatch chain; older ticks are dropped
	now      func() time.Time
}

// NewChat creates a new chat panel
func NewChat() *Chat {
	ti := textarea.New()
	ti.Placeholder = ChatInputPlaceholder
	ti.CharLimit = 0
	ti.SetHeight(TextareaHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""
	// Enter sends; alt+enter and shift+enter insert newlines instead.
	ti.KeyMap.InsertNewline.SetEnabled(false)

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	c := &Chat{
		viewport: vp,
		input:    ti,
		now:      time.Now,
	}
	c.updateContent(true)
	return c
}

// SetSize sets the chat panel dimensions
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	ctx := GetViewContext()

	chatPanelHeight := height - InputTotalHeight
	innerWidth := ctx.InnerWidth(width)
	viewportHeight := max(1, ctx.InnerHeight(chatPanelHeight))

	c.viewport.SetWidth(innerWidth)
	c.viewport.SetHeight(viewportHeight)

	// Input width accounts for its own border AND padding
	c.input.SetWidth(max(1, innerWidth-InputPaddingWidth))

	logger.WithComponent("ui").Debug("chat resized",
		"width", width, "height", height,
		"viewportWidth", c.viewport.Width(), "viewportHeight", c.viewport.Height())

	c.updateContent(false)
}

// SetFocused sets the focus state
func (c *Chat) SetFocused(focused bool) {
	c.focused = focused
	if focused {
		c.input.Focus()
	} else {
		c.input.Blur()
	}
}

// IsFocused returns the focus state
func (c *Chat) IsFocused() bool {
	return c.focused
}

// SetSession attaches the conversation to render.
func (c *Chat) SetSession(s *session.Session, rec agency.Record) {
	c.session = s
	c.agency = rec
	c.input.Reset()
	c.updateContent(true)
}

// ClearSession detaches the conversation
func (c *Chat) ClearSession() {
	c.session = nil
	c.agency = agency.Record{}
	c.input.Reset()
	c.waitGen++
	c.updateContent(true)
}

// HasSession reports whether a conversation is attached
func (c *Chat) HasSession() bool {
	return c.session != nil
}

// Refresh re-renders the transcript and scrolls to the newest entry. Call it
// after every session mutation.
func (c *Chat) Refresh() {
	c.updateContent(true)
}

// GetInput returns the current input text
func (c *Chat) GetInput() string {
	return c.input.Value()
}

// ClearInput clears the input field
func (c *Chat) ClearInput() {
	c.input.Reset()
}

// SetInput sets the input field value
func (c *Chat) SetInput(value string) {
	c.input.SetValue(value)
}

// ScrollOffset returns the transcript's vertical scroll position
func (c *Chat) ScrollOffset() int {
	return c.viewport.YOffset()
}

// AtBottom reports whether the newest entry is in view
func (c *Chat) AtBottom() bool {
	return c.viewport.AtBottom()
}

// Placeholder returns the empty-transcript text for the attached agency.
func (c *Chat) Placeholder() string {
	return "Start your conversation with " + c.agency.ShortName
}

func (c *Chat) wrapWidth() int {
	if w := c.viewport.Width(); w > 0 {
		return w
	}
	return DefaultWrapWidth
}

// updateContent re-renders the transcript. It scrolls to the newest entry when
// snap is set or the view was already there; otherwise the scroll position
// is kept so the reader can look back while a reply is pending.
func (c *Chat) updateContent(snap bool) {
	follow := snap || c.viewport.AtBottom()
	var sb strings.Builder
	width := c.wrapWidth()

	switch {
	case c.session == nil:
		sb.WriteString(StatusPlaceholderStyle.Render("No agency selected"))
	case c.session.Len() == 0 && !c.session.IsAwaiting():
		sb.WriteString(StatusPlaceholderStyle.Render(c.Placeholder()))
	default:
		for i, msg := range c.session.Transcript() {
			if i > 0 {
				sb.WriteString("\n\n")
			}
			sb.WriteString(c.renderMessage(msg, width))
		}

		if c.session.IsAwaiting() {
			sb.WriteString("\n\n")
			sb.WriteString(ChatAssistantStyle.Render(c.agency.ShortName + ":"))
			sb.WriteString("\n")
			elapsed := c.now().Sub(c.session.WaitStarted())
			sb.WriteString(renderWaitingStatus(c.waitVerb, c.frame, elapsed, c.session.IsSlow()))
		}
	}

	c.viewport.SetContent(sb.String())
	if follow {
		c.viewport.GotoBottom()
	}
}

func (c *Chat) renderMessage(msg session.Message, width int) string {
	var sb strings.Builder

	stamp := ChatTimestampStyle.Render(" " + msg.Timestamp.Local().Format("3:04 PM"))
	if msg.IsUser {
		sb.WriteString(ChatUserStyle.Render("You:") + stamp)
		sb.WriteString("\n")
		sb.WriteString(renderUserText(msg.Text, width))
		return sb.String()
	}

	sb.WriteString(ChatAssistantStyle.Render(c.agency.ShortName+":") + stamp)
	sb.WriteString("\n")
	if msg.IsError {
		sb.WriteString(ChatErrorStyle.Render(ansi.Wordwrap(msg.Text, width, " ")))
		return sb.String()
	}
	sb.WriteString(RenderMarkdown(strings.TrimSpace(msg.Text), width))

	for _, att := range msg.VisibleAttachments() {
		kind := "preview"
		if att.IsPDF() {
			kind = "pdf"
		}
		chip := fmt.Sprintf("📎 %s (%s)", att.DisplayTitle(), kind)
		sb.WriteString("\n")
		sb.WriteString(ChatAttachmentStyle.Render(chip))
	}
	return sb.String()
}

// Update handles messages
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	switch msg := msg.(type) {
	case StopwatchTickMsg:
		return c, c.handleStopwatchTick(msg)

	case tea.KeyPressMsg:
		if !c.focused || c.session == nil {
			return c, nil
		}
		switch msg.String() {
		case keys.AltEnter, keys.ShiftEnter:
			c.input.InsertString("\n")
			return c, nil
		case keys.Enter:
			// Sending is the app's job
			return c, nil
		case keys.PgUp, keys.PgDown, keys.Home, keys.End, keys.CtrlU, keys.CtrlD:
			var cmd tea.Cmd
			c.viewport, cmd = c.viewport.Update(msg)
			return c, cmd
		}
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd
	}

	var cmds []tea.Cmd
	if c.focused && c.session != nil {
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	// Mouse wheel and other non-key events scroll the transcript
	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return c, tea.Batch(cmds...)
}

// View renders the chat panel
func (c *Chat) View() string {
	panelStyle := PanelStyle
	if c.focused {
		panelStyle = PanelFocusedStyle
	}

	if c.session == nil {
		return panelStyle.Width(c.width).Height(c.height).Render(c.viewport.View())
	}

	chatPanelHeight := c.height - InputTotalHeight
	chatPanel := panelStyle.Width(c.width).Height(chatPanelHeight).Render(c.viewport.View())

	inputStyle := ChatInputStyle
	if c.focused {
		inputStyle = ChatInputFocusedStyle
	}
	inputArea := inputStyle.Width(c.width).Render(c.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, chatPanel, inputArea)
}
