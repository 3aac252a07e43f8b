package ui

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/botenders/govsimplify/internal/api"
	"github.com/botenders/govsimplify/internal/news"
)

// NewsPlaceholder is shown when an agency has no articles.
const NewsPlaceholder = "No news available for this agency."

// NewsTitle heads the news column
const NewsTitle = "Latest News"

// NewsView renders a news.Panel as a column of article cards.
type NewsView struct {
	panel   *news.Panel
	spinner spinner.Model
	width   int
	height  int
	focused bool
	scroll  int // index of the first visible card
	now     func() time.Time
}

// NewNewsView creates the news column over panel.
func NewNewsView(panel *news.Panel) *NewsView {
	s := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(StatusLoadingStyle),
	)
	return &NewsView{
		panel:   panel,
		spinner: s,
		now:     time.Now,
	}
}

// Panel returns the underlying news state
func (n *NewsView) Panel() *news.Panel {
	return n.panel
}

// SetSize sets the column dimensions
func (n *NewsView) SetSize(width, height int) {
	n.width = width
	n.height = height
	n.ensureSelectionVisible()
}

// SetFocused sets the focus state
func (n *NewsView) SetFocused(focused bool) {
	n.focused = focused
}

// IsFocused returns the focus state
func (n *NewsView) IsFocused() bool {
	return n.focused
}

// StartLoading returns the command that animates the loading spinner. The
// panel must already be in the loading state.
func (n *NewsView) StartLoading() tea.Cmd {
	n.scroll = 0
	return n.spinner.Tick
}

// Update handles spinner ticks and, while focused, selection keys.
func (n *NewsView) Update(msg tea.Msg) (*NewsView, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !n.panel.Loading() {
			return n, nil
		}
		var cmd tea.Cmd
		n.spinner, cmd = n.spinner.Update(msg)
		return n, cmd

	case tea.KeyPressMsg:
		if !n.focused {
			return n, nil
		}
		switch msg.String() {
		case "up", "k":
			n.panel.MoveUp()
		case "down", "j":
			n.panel.MoveDown()
		}
		n.ensureSelectionVisible()
	}
	return n, nil
}

// Click selects the card at row y relative to the column's top-left and
// reports whether a card was hit.
func (n *NewsView) Click(y int) bool {
	articles := n.panel.Articles()
	row := y - 2 // border + title line
	if row < 0 || len(articles) == 0 {
		return false
	}
	for i := n.scroll; i < len(articles); i++ {
		h := lipgloss.Height(n.renderCard(articles[i], false)) + 1
		if row < h {
			for n.panel.SelectedIndex() < i {
				n.panel.MoveDown()
			}
			for n.panel.SelectedIndex() > i {
				n.panel.MoveUp()
			}
			return true
		}
		row -= h
	}
	return false
}

// Scroll moves the selection by delta cards, as the mouse wheel does.
func (n *NewsView) Scroll(delta int) {
	for ; delta < 0; delta++ {
		n.panel.MoveUp()
	}
	for ; delta > 0; delta-- {
		n.panel.MoveDown()
	}
	n.ensureSelectionVisible()
}

func (n *NewsView) innerWidth() int {
	return max(1, n.width-BorderSize-2)
}

// ensureSelectionVisible scrolls so the selected card is on screen. Cards
// have varying heights, so this walks back from the selection.
func (n *NewsView) ensureSelectionVisible() {
	sel := n.panel.SelectedIndex()
	if sel < n.scroll {
		n.scroll = sel
		return
	}
	articles := n.panel.Articles()
	if sel >= len(articles) || n.height <= 0 {
		return
	}
	avail := n.height - BorderSize - 1
	used := 0
	first := sel
	for i := sel; i >= n.scroll; i-- {
		used += lipgloss.Height(n.renderCard(articles[i], false)) + 1
		if used > avail {
			break
		}
		first = i
	}
	if first > n.scroll {
		n.scroll = first
	}
}

// View renders the news column
func (n *NewsView) View() string {
	style := PanelStyle
	if n.focused {
		style = PanelFocusedStyle
	}

	var sb strings.Builder
	sb.WriteString(PanelTitleStyle.Render(NewsTitle))
	sb.WriteString("\n")

	switch {
	case n.panel.Loading():
		sb.WriteString(" " + n.spinner.View() + " " + StatusLoadingStyle.Render("Loading news..."))
	case n.panel.Empty():
		sb.WriteString(" " + StatusPlaceholderStyle.Render(NewsPlaceholder))
	case n.panel.Status() == news.StatusReady:
		sb.WriteString(n.renderCards())
	}

	return style.Width(n.width).Height(n.height).Render(sb.String())
}

func (n *NewsView) renderCards() string {
	articles := n.panel.Articles()
	avail := n.height - BorderSize - 1
	var cards []string
	used := 0
	for i := n.scroll; i < len(articles); i++ {
		card := n.renderCard(articles[i], i == n.panel.SelectedIndex())
		h := lipgloss.Height(card)
		if used > 0 && used+h > avail {
			break
		}
		cards = append(cards, card)
		used += h + 1
	}
	return strings.Join(cards, "\n\n")
}

func (n *NewsView) renderCard(a api.Article, selected bool) string {
	w := n.innerWidth()

	titleStyle := NewsTitleStyle
	marker := "  "
	if selected && n.focused {
		titleStyle = NewsSelectedTitleStyle
		marker = NewsSelectedTitleStyle.Render("› ")
	}

	var lines []string
	for i, l := range strings.Split(ansi.Wordwrap(a.Title, w-2, " -"), "\n") {
		prefix := "  "
		if i == 0 {
			prefix = marker
		}
		lines = append(lines, prefix+titleStyle.Render(l))
	}

	if summary := news.Summarize(a); summary != "" {
		for _, l := range strings.Split(ansi.Wordwrap(summary, w-2, " -"), "\n") {
			lines = append(lines, "  "+NewsSummaryStyle.Render(l))
		}
	}

	var meta []string
	if d := news.FormatDate(a); d != "" {
		meta = append(meta, d)
	}
	if a.SourceName != "" {
		meta = append(meta, a.SourceName)
	}
	if age := news.Age(a, n.now()); age != "" {
		meta = append(meta, age)
	}
	if len(meta) > 0 {
		lines = append(lines, "  "+NewsMetaStyle.Render(ansi.Truncate(strings.Join(meta, " · "), w-2, "…")))
	}
	if a.ImageURL != "" {
		lines = append(lines, "  "+NewsMetaStyle.Render("▣ image available"))
	}

	return strings.Join(lines, "\n")
}
