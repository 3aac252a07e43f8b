package ui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/botenders/govsimplify/internal/agency"
	"github.com/botenders/govsimplify/internal/keys"
	"github.com/botenders/govsimplify/internal/logger"
)

// AnnouncementDuration is how long "Selected <agency>" stays on screen
const AnnouncementDuration = time.Second

// Catalog placeholders
const (
	CatalogSearchPlaceholder = "Search agencies..."
	CatalogNoMatches         = "No agencies found matching your search."
)

// AgencyConfirmedMsg is emitted when the user confirms the selected agency.
type AgencyConfirmedMsg struct {
	Record agency.Record
}

// AnnouncementClearMsg clears the selection announcement. Seq fences out
// timers from earlier selections.
type AnnouncementClearMsg struct {
	Seq int
}

// Catalog is the searchable agency grid shown before a conversation starts.
type Catalog struct {
	catalog *agency.Catalog
	input   textinput.Model
	results []agency.Record

	cursor   int
	selected string // ID of the selected record, survives filtering
	scroll   int    // first visible grid row

	announcement    string
	announcementSeq int

	width  int
	height int
}

// NewCatalog creates the agency picker over cat.
func NewCatalog(cat *agency.Catalog) *Catalog {
	ti := textinput.New()
	ti.Placeholder = CatalogSearchPlaceholder
	ti.Prompt = "› "
	ti.CharLimit = 80
	ti.Focus()

	return &Catalog{
		catalog: cat,
		input:   ti,
		results: cat.All(),
	}
}

// SetSize sets the catalog dimensions
func (c *Catalog) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.input.SetWidth(max(10, width-BorderSize-InputPaddingWidth-2))
	c.ensureCursorVisible()
}

// Focus gives the search input the cursor
func (c *Catalog) Focus() tea.Cmd {
	return c.input.Focus()
}

// Blur removes focus from the search input
func (c *Catalog) Blur() {
	c.input.Blur()
}

// Query returns the raw search text.
func (c *Catalog) Query() string {
	return c.input.Value()
}

// SetQuery replaces the search text and refilters.
func (c *Catalog) SetQuery(q string) {
	c.input.SetValue(q)
	c.refilter()
}

// Results returns the records matching the current query, in catalog order.
func (c *Catalog) Results() []agency.Record {
	return c.results
}

// Cursor returns the index of the card under the keyboard cursor.
func (c *Catalog) Cursor() int {
	return c.cursor
}

// CursorRecord returns the record under the cursor.
func (c *Catalog) CursorRecord() (agency.Record, bool) {
	if c.cursor < 0 || c.cursor >= len(c.results) {
		return agency.Record{}, false
	}
	return c.results[c.cursor], true
}

// MoveCursorTo puts the cursor on id without selecting it. Used to restore
// the last visited agency.
func (c *Catalog) MoveCursorTo(id string) bool {
	for i, r := range c.results {
		if r.ID == id {
			c.cursor = i
			c.ensureCursorVisible()
			return true
		}
	}
	return false
}

// Selected returns the selected record.
func (c *Catalog) Selected() (agency.Record, bool) {
	if c.selected == "" {
		return agency.Record{}, false
	}
	return c.catalog.Get(c.selected)
}

// Announcement returns the live selection announcement, if any.
func (c *Catalog) Announcement() string {
	return c.announcement
}

// Select marks id as the current selection and raises the announcement.
// The returned command clears it after AnnouncementDuration.
func (c *Catalog) Select(id string) tea.Cmd {
	rec, ok := c.catalog.Get(id)
	if !ok {
		return nil
	}
	c.selected = id
	c.announcement = rec.Announcement()
	c.announcementSeq++
	logger.WithComponent("catalog").Info(c.announcement, "agency", id)

	seq := c.announcementSeq
	return tea.Tick(AnnouncementDuration, func(time.Time) tea.Msg {
		return AnnouncementClearMsg{Seq: seq}
	})
}

// ClearSelection forgets the selection, used when returning from a conversation.
func (c *Catalog) ClearSelection() {
	c.selected = ""
	c.announcement = ""
}

// Confirm emits AgencyConfirmedMsg for the selected record. It returns nil
// when nothing is selected.
func (c *Catalog) Confirm() tea.Cmd {
	rec, ok := c.Selected()
	if !ok {
		return nil
	}
	return func() tea.Msg { return AgencyConfirmedMsg{Record: rec} }
}

// Activate selects the record at index i, or confirms it when it is already
// the selection.
func (c *Catalog) Activate(i int) tea.Cmd {
	if i < 0 || i >= len(c.results) {
		return nil
	}
	c.cursor = i
	c.ensureCursorVisible()
	if c.results[i].ID == c.selected {
		return c.Confirm()
	}
	return c.Select(c.results[i].ID)
}

// Update handles messages
func (c *Catalog) Update(msg tea.Msg) (*Catalog, tea.Cmd) {
	switch msg := msg.(type) {
	case AnnouncementClearMsg:
		if msg.Seq == c.announcementSeq {
			c.announcement = ""
		}
		return c, nil

	case tea.KeyPressMsg:
		cols := c.columns()
		switch msg.String() {
		case keys.Left:
			c.moveCursor(-1)
			return c, nil
		case keys.Right:
			c.moveCursor(1)
			return c, nil
		case keys.Up:
			c.moveCursor(-cols)
			return c, nil
		case keys.Down:
			c.moveCursor(cols)
			return c, nil
		case keys.Enter:
			return c, c.Activate(c.cursor)
		case keys.CtrlO:
			return c, c.Confirm()
		case keys.Escape:
			c.SetQuery("")
			return c, nil
		}

		before := c.input.Value()
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		if c.input.Value() != before {
			c.refilter()
		}
		return c, cmd
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// Click handles a mouse click at (x, y) relative to the catalog's top-left.
func (c *Catalog) Click(x, y int) tea.Cmd {
	if y < CatalogSearchHeight || x < 0 {
		return nil
	}
	col := x / CatalogCardWidth
	row := (y-CatalogSearchHeight)/CatalogCardHeight + c.scroll
	cols := c.columns()
	if col >= cols {
		return nil
	}
	return c.Activate(row*cols + col)
}

func (c *Catalog) refilter() {
	c.results = c.catalog.Filter(c.input.Value())
	c.cursor = 0
	c.scroll = 0

	// A hidden record cannot stay selected: ctrl+o would confirm it unseen.
	if c.selected != "" && !slices.ContainsFunc(c.results, func(r agency.Record) bool { return r.ID == c.selected }) {
		c.ClearSelection()
	}
}

func (c *Catalog) moveCursor(delta int) {
	if len(c.results) == 0 {
		return
	}
	next := c.cursor + delta
	if next < 0 || next >= len(c.results) {
		return
	}
	c.cursor = next
	c.ensureCursorVisible()
}

func (c *Catalog) columns() int {
	if c.width <= 0 {
		return 1
	}
	return max(1, c.width/CatalogCardWidth)
}

func (c *Catalog) visibleRows() int {
	return max(1, (c.height-CatalogSearchHeight)/CatalogCardHeight)
}

func (c *Catalog) ensureCursorVisible() {
	row := c.cursor / c.columns()
	rows := c.visibleRows()
	if row < c.scroll {
		c.scroll = row
	}
	if row >= c.scroll+rows {
		c.scroll = row - rows + 1
	}
}

// View renders the catalog
func (c *Catalog) View() string {
	search := ChatInputFocusedStyle.Width(c.width).Render(c.input.View())

	status := FooterDescStyle.Render(fmt.Sprintf("%d of %d agencies", len(c.results), c.catalog.Len()))
	if c.announcement != "" {
		status = CatalogAnnouncementStyle.Render("✓ " + c.announcement)
	}

	var body string
	if len(c.results) == 0 {
		body = StatusPlaceholderStyle.Render(CatalogNoMatches)
	} else {
		body = c.renderGrid()
	}

	return lipgloss.JoinVertical(lipgloss.Left, search, " "+status, body)
}

func (c *Catalog) renderGrid() string {
	cols := c.columns()
	first := c.scroll * cols
	last := min(len(c.results), first+c.visibleRows()*cols)

	var rows []string
	for start := first; start < last; start += cols {
		end := min(start+cols, last)
		cards := make([]string, 0, cols)
		for i := start; i < end; i++ {
			cards = append(cards, c.renderCard(i))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return strings.Join(rows, "\n")
}

func (c *Catalog) renderCard(i int) string {
	rec := c.results[i]
	inner := CatalogCardWidth - BorderSize - 2

	style := CatalogCardStyle
	switch {
	case rec.ID == c.selected:
		style = CatalogSelectedStyle
	case i == c.cursor:
		style = CatalogCursorStyle
	}

	name := CatalogShortNameStyle.Render(rec.ShortName)
	if rec.ID == c.selected {
		hint := CatalogContinueStyle.Render("Continue ›")
		gap := max(1, inner-lipgloss.Width(name)-lipgloss.Width(hint))
		name += strings.Repeat(" ", gap) + hint
	}

	lines := []string{
		name,
		CatalogFullNameStyle.Render(ansi.Truncate(rec.FullName, inner, "…")),
		CatalogCategoryStyle.Render(ansi.Truncate(rec.Category, inner, "…")),
	}
	return style.Width(CatalogCardWidth).Render(strings.Join(lines, "\n"))
}
