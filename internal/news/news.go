// Package news tracks the news panel's state for the active agency and fences
// out results that arrive for an agency the user has already left.
package news

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/botenders/govsimplify/internal/api"
	"github.com/botenders/govsimplify/internal/logger"
)

// SummaryMaxWidth bounds the article summary shown on a card.
const SummaryMaxWidth = 120

// DateLayout is how article dates are shown.
const DateLayout = "Jan 2, 2006"

// Status is the loading state of the panel.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
)

// Ticket tags a fetch with the agency and generation it was issued for.
type Ticket struct {
	Agency string
	Gen    uint64
}

// Panel holds the articles for one agency at a time. It is not safe for
// concurrent use; results are applied from the update loop.
type Panel struct {
	agency   string
	gen      uint64
	status   Status
	articles []api.Article
	selected int
}

// Request starts loading news for agency and returns the ticket the result
// must be applied with. Any earlier ticket becomes stale.
func (p *Panel) Request(agency string) Ticket {
	p.gen++
	p.agency = agency
	p.status = StatusLoading
	p.articles = nil
	p.selected = 0
	return Ticket{Agency: agency, Gen: p.gen}
}

// Apply stores the result of a fetch. Results for a stale ticket are dropped
// and Apply returns false. A fetch error is logged and shown as no news.
func (p *Panel) Apply(t Ticket, articles []api.Article, err error) bool {
	log := logger.WithComponent("news")
	if t.Gen != p.gen || t.Agency != p.agency {
		log.Debug("discarding stale news", "for", t.Agency, "active", p.agency)
		return false
	}
	if err != nil {
		log.Warn("news fetch failed", "agency", t.Agency, "error", err)
		articles = nil
	}
	p.articles = articles
	p.status = StatusReady
	p.selected = 0
	return true
}

// Reset clears the panel and invalidates any outstanding ticket.
func (p *Panel) Reset() {
	p.gen++
	p.agency = ""
	p.status = StatusIdle
	p.articles = nil
	p.selected = 0
}

// Agency returns the agency the panel is showing or loading.
func (p *Panel) Agency() string { return p.agency }

// Status returns the loading state.
func (p *Panel) Status() Status { return p.status }

// Loading reports whether a fetch is outstanding.
func (p *Panel) Loading() bool { return p.status == StatusLoading }

// Empty reports whether a finished fetch produced no articles.
func (p *Panel) Empty() bool { return p.status == StatusReady && len(p.articles) == 0 }

// Articles returns the loaded articles.
func (p *Panel) Articles() []api.Article { return p.articles }

// SelectedIndex returns the index of the highlighted article.
func (p *Panel) SelectedIndex() int { return p.selected }

// Selected returns the highlighted article.
func (p *Panel) Selected() (api.Article, bool) {
	if p.selected < 0 || p.selected >= len(p.articles) {
		return api.Article{}, false
	}
	return p.articles[p.selected], true
}

// MoveUp highlights the previous article.
func (p *Panel) MoveUp() {
	if p.selected > 0 {
		p.selected--
	}
}

// MoveDown highlights the next article.
func (p *Panel) MoveDown() {
	if p.selected < len(p.articles)-1 {
		p.selected++
	}
}

// Summarize returns the article's summary cut to SummaryMaxWidth cells with
// "..." appended when it was cut.
func Summarize(a api.Article) string {
	text := strings.Join(strings.Fields(a.Summary()), " ")
	if runewidth.StringWidth(text) <= SummaryMaxWidth {
		return text
	}
	return runewidth.Truncate(text, SummaryMaxWidth, "") + "..."
}

// FormatDate formats the article's publication date, or returns the raw value
// when it cannot be parsed.
func FormatDate(a api.Article) string {
	t, ok := a.Published()
	if !ok {
		return a.PubDate
	}
	return t.Format(DateLayout)
}

// Age describes how long ago the article was published, relative to now.
func Age(a api.Article, now time.Time) string {
	t, ok := a.Published()
	if !ok {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
