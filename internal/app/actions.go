package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/botenders/govsimplify/internal/api"
	"github.com/botenders/govsimplify/internal/attachment"
	"github.com/botenders/govsimplify/internal/browser"
	"github.com/botenders/govsimplify/internal/clipboard"
	"github.com/botenders/govsimplify/internal/logger"
	"github.com/botenders/govsimplify/internal/ui"
	"github.com/botenders/govsimplify/internal/ui/modals"
)

// writeClipboard is the native clipboard fallback, replaced in tests.
var writeClipboard = clipboard.WriteText

// ClipboardErrorMsg is sent when the native clipboard write fails
type ClipboardErrorMsg struct {
	Error error
}

// OpenFailedMsg is sent when the browser could not be launched
type OpenFailedMsg struct {
	URL   string
	Error error
}

// openURL opens rawURL in the user's browser outside the update loop.
func openURL(rawURL string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(rawURL); err != nil {
			return OpenFailedMsg{URL: rawURL, Error: err}
		}
		return nil
	}
}

// copyText copies text via OSC 52 and the native clipboard.
func (m *Model) copyText(text, what string) tea.Cmd {
	return tea.Batch(
		// OSC 52 escape sequence (works in modern terminals)
		tea.SetClipboard(text),
		// Native clipboard fallback - returns error message if it fails
		func() tea.Msg {
			if err := writeClipboard(text); err != nil {
				logger.WithComponent("clipboard").Warn("failed to write to clipboard", "error", err)
				return ClipboardErrorMsg{Error: err}
			}
			return nil
		},
		m.ShowFlashSuccess("Copied "+what),
	)
}

// copyLastReply copies the newest assistant reply.
func (m *Model) copyLastReply() tea.Cmd {
	if m.session == nil {
		return nil
	}
	reply, ok := m.session.LastReply()
	if !ok {
		return m.ShowFlashInfo("No reply to copy yet")
	}
	return m.copyText(reply.Text, "reply")
}

// openAttachment carries out what attachment.Resolve decides for att: PDFs
// and link-only attachments go to the browser, inline content is previewed.
func (m *Model) openAttachment(att api.Attachment) tea.Cmd {
	action := attachment.Resolve(att)
	m.log.Debug("opening attachment", "title", att.DisplayTitle(), "action", action.String())

	switch action {
	case attachment.ActionOpenExternal:
		return tea.Batch(openURL(att.URL), m.ShowFlashInfo("Opening "+att.DisplayTitle()))
	case attachment.ActionPreview:
		m.showAttachmentPreview(att)
		return nil
	default:
		return m.ShowFlashWarning("Nothing to open for " + att.DisplayTitle())
	}
}

// showAttachmentPreview converts att's HTML and shows it in the preview modal.
func (m *Model) showAttachmentPreview(att api.Attachment) {
	conv := m.convert
	source := conv.Source(att.Content)
	md, err := conv.ToMarkdown(att.Content)
	if err != nil {
		m.log.Warn("attachment conversion failed, showing source", "title", att.DisplayTitle(), "error", err)
		md = source
	}
	state := modals.NewAttachmentPreviewState(att.DisplayTitle(), source, func(width int) string {
		return ui.RenderMarkdown(md, width)
	})
	m.modal.Show(state)
	m.modal.SetSize(m.width, m.height)
}

// showAttachmentPicker lists every attachment in the transcript.
func (m *Model) showAttachmentPicker() tea.Cmd {
	if m.session == nil {
		return nil
	}
	items := m.session.Attachments()
	if len(items) == 0 {
		return m.ShowFlashInfo("No attachments in this conversation")
	}
	if len(items) == 1 {
		return m.openAttachment(items[0])
	}
	m.modal.Show(modals.NewAttachmentListState(items))
	return nil
}

// openSelectedArticle opens the highlighted news article.
func (m *Model) openSelectedArticle() tea.Cmd {
	a, ok := m.newsData.Selected()
	if !ok || a.Link == "" {
		return nil
	}
	return tea.Batch(openURL(a.Link), m.ShowFlashInfo("Opening article"))
}

// copySelectedArticleLink copies the highlighted article's link.
func (m *Model) copySelectedArticleLink() tea.Cmd {
	a, ok := m.newsData.Selected()
	if !ok || a.Link == "" {
		return nil
	}
	return m.copyText(a.Link, "article link")
}
