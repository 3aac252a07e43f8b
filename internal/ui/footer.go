package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FlashType selects the icon and color of a flash message
type FlashType int

const (
	FlashError FlashType = iota
	FlashWarning
	FlashInfo
	FlashSuccess
)

// DefaultFlashDuration is how long a flash message stays up
const DefaultFlashDuration = 3 * time.Second

// FlashMessage is a transient footer notice
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has outlived its duration
func (f *FlashMessage) IsExpired() bool {
	return time.Since(f.CreatedAt) > f.Duration
}

// FlashTickMsg drives flash expiry
type FlashTickMsg time.Time

// FlashTick returns a command that checks flash expiry once a second
func FlashTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// FooterMode selects which bindings the footer shows
type FooterMode int

const (
	FooterCatalog FooterMode = iota
	FooterChat
	FooterNews
	FooterModal
)

// FooterContext is the app state the footer bindings depend on
type FooterContext struct {
	Mode           FooterMode
	Awaiting       bool // a reply is pending, so enter does nothing
	HasAttachments bool
	NewsHidden     bool
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width        int
	ctx          FooterContext
	flashMessage *FlashMessage
	bindings     []KeyBinding // overrides the mode bindings when set
	links        []linkSpan   // columns of the links drawn by the last View
}

// linkSpan is the screen columns [start, end) a footer link occupies.
type linkSpan struct {
	start, end int
	url        string
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(ctx FooterContext) {
	f.ctx = ctx
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetBindings allows custom keybindings. Nil restores the mode bindings.
func (f *Footer) SetBindings(bindings []KeyBinding) {
	f.bindings = bindings
}

// SetFlash shows text for DefaultFlashDuration
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows text for d
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, d time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  d,
	}
}

// ClearFlash removes the flash message
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is showing
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// ClearIfExpired drops an expired flash and reports whether it did
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

// Bindings returns the bindings for the current context.
func (f *Footer) Bindings() []KeyBinding {
	if f.bindings != nil {
		return f.bindings
	}

	switch f.ctx.Mode {
	case FooterModal:
		return []KeyBinding{{Key: "esc", Desc: "close"}}
	case FooterNews:
		return []KeyBinding{
			{Key: "↑/↓", Desc: "navigate"},
			{Key: "enter", Desc: "open article"},
			{Key: "y", Desc: "copy link"},
			{Key: "tab", Desc: "chat"},
			{Key: "ctrl+b", Desc: "agencies"},
		}
	case FooterChat:
		var out []KeyBinding
		if !f.ctx.Awaiting {
			out = append(out,
				KeyBinding{Key: "enter", Desc: "send"},
				KeyBinding{Key: "alt+enter", Desc: "newline"},
			)
		}
		if !f.ctx.NewsHidden {
			out = append(out, KeyBinding{Key: "tab", Desc: "news"})
		}
		if f.ctx.HasAttachments {
			out = append(out, KeyBinding{Key: "ctrl+a", Desc: "attachments"})
		}
		newsDesc := "hide news"
		if f.ctx.NewsHidden {
			newsDesc = "show news"
		}
		return append(out,
			KeyBinding{Key: "ctrl+y", Desc: "copy reply"},
			KeyBinding{Key: "ctrl+n", Desc: newsDesc},
			KeyBinding{Key: "ctrl+b", Desc: "agencies"},
		)
	default:
		return []KeyBinding{
			{Key: "arrows", Desc: "move"},
			{Key: "enter", Desc: "select/continue"},
			{Key: "esc", Desc: "clear search"},
			{Key: "ctrl+s", Desc: "settings"},
			{Key: "ctrl+/", Desc: "help"},
			{Key: "ctrl+c", Desc: "quit"},
		}
	}
}

// View renders the footer
func (f *Footer) View() string {
	f.links = nil
	if f.flashMessage != nil {
		return FooterStyle.Width(f.width).Render(f.renderFlash())
	}

	sep := "  " + lipgloss.NewStyle().Foreground(ColorBorder).Render("|") + "  "
	var parts []string
	for _, b := range f.Bindings() {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	// The links go first when space is short; the copyright stays.
	inner := f.width - 2
	links := FooterLinks
	if uniseg.StringWidth(trailerText(links))+2 > inner {
		links = nil
	}
	trailerWidth := uniseg.StringWidth(trailerText(links))

	// Drop bindings from the end until they fit next to the trailer.
	for len(parts) > 0 && lipgloss.Width(strings.Join(parts, sep))+trailerWidth+2 > inner {
		parts = parts[:len(parts)-1]
	}
	content := strings.Join(parts, sep)

	if gap := inner - lipgloss.Width(content) - trailerWidth; gap >= 2 {
		// Column 0 is the style's left padding.
		start := 1 + lipgloss.Width(content) + gap
		content += strings.Repeat(" ", gap) + f.renderTrailer(links, start)
	}

	return FooterStyle.Width(f.width).Render(content)
}

// LinkAt returns the URL of the footer link drawn at column x.
func (f *Footer) LinkAt(x int) (string, bool) {
	for _, l := range f.links {
		if x >= l.start && x < l.end {
			return l.url, true
		}
	}
	return "", false
}

func trailerText(links []FooterLink) string {
	text := Copyright
	for _, l := range links {
		text += " · " + l.Label
	}
	return text
}

// renderTrailer draws the copyright and links as OSC 8 hyperlinks, recording
// where each link lands when the trailer starts at column start.
func (f *Footer) renderTrailer(links []FooterLink, start int) string {
	var sb strings.Builder
	sb.WriteString(FooterDescStyle.Render(Copyright))
	col := start + uniseg.StringWidth(Copyright)
	for _, l := range links {
		sb.WriteString(FooterDescStyle.Render(" · "))
		col += 3
		sb.WriteString(ansi.SetHyperlink(l.URL) + FooterLinkStyle.Render(l.Label) + ansi.ResetHyperlink())
		w := uniseg.StringWidth(l.Label)
		f.links = append(f.links, linkSpan{start: col, end: col + w, url: l.URL})
		col += w
	}
	return sb.String()
}

func (f *Footer) renderFlash() string {
	var icon string
	var color = ColorInfo
	switch f.flashMessage.Type {
	case FlashError:
		icon, color = "✕", ColorError
	case FlashWarning:
		icon, color = "⚠", ColorWarning
	case FlashSuccess:
		icon, color = "✓", ColorSuccess
	default:
		icon = "ℹ"
	}
	return lipgloss.NewStyle().Foreground(color).Render(icon + " " + f.flashMessage.Text)
}
