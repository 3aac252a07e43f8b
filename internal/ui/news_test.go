package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/botenders/govsimplify/internal/api"
	"github.com/botenders/govsimplify/internal/keys"
	"github.com/botenders/govsimplify/internal/news"
)

func testNewsView(t *testing.T) *NewsView {
	t.Helper()
	n := NewNewsView(&news.Panel{})
	n.now = func() time.Time { return time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC) }
	n.SetSize(50, 40)
	return n
}

func TestNewsView_Loading(t *testing.T) {
	n := testNewsView(t)
	n.Panel().Request("Environmental Protection Agency")

	if n.StartLoading() == nil {
		t.Error("StartLoading() should start the spinner")
	}
	if view := ansi.Strip(n.View()); !strings.Contains(view, "Loading news") {
		t.Errorf("expected loading state, got:\n%s", view)
	}
}

func TestNewsView_EmptyAndFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"empty result", nil},
		{"fetch failed", errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := testNewsView(t)
			ticket := n.Panel().Request("Securities and Exchange Commission")
			n.Panel().Apply(ticket, nil, tt.err)

			view := ansi.Strip(n.View())
			if !strings.Contains(view, NewsPlaceholder) {
				t.Errorf("expected placeholder, got:\n%s", view)
			}
			if strings.Contains(view, "boom") {
				t.Error("fetch errors must not reach the screen")
			}
		})
	}
}

func TestNewsView_Cards(t *testing.T) {
	n := testNewsView(t)
	ticket := n.Panel().Request("Food and Drug Administration")
	n.Panel().Apply(ticket, []api.Article{
		{
			Title:       "FDA approves new treatment",
			Description: "The agency approved a therapy.",
			PubDate:     "2024-06-07T09:00:00Z",
			SourceName:  "Reuters",
			ImageURL:    "https://example.com/a.png",
		},
		{Title: "Second headline", Content: "Content used as summary."},
	}, nil)

	view := ansi.Strip(n.View())
	for _, want := range []string{
		"FDA approves new treatment",
		"The agency approved a therapy.",
		"Jun 7, 2024",
		"Reuters",
		"3 days ago",
		"image available",
		"Second headline",
		"Content used as summary.",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestNewsView_KeysNeedFocus(t *testing.T) {
	n := testNewsView(t)
	ticket := n.Panel().Request("FAA")
	n.Panel().Apply(ticket, []api.Article{{Title: "one"}, {Title: "two"}, {Title: "three"}}, nil)

	n.Update(keyPressMsg(keys.Down))
	if n.Panel().SelectedIndex() != 0 {
		t.Error("unfocused news should ignore keys")
	}

	n.SetFocused(true)
	n.Update(keyPressMsg(keys.Down))
	n.Update(keyPressMsg("j"))
	if n.Panel().SelectedIndex() != 2 {
		t.Errorf("SelectedIndex() = %d, want 2", n.Panel().SelectedIndex())
	}
	n.Update(keyPressMsg(keys.Up))
	if n.Panel().SelectedIndex() != 1 {
		t.Errorf("SelectedIndex() = %d, want 1", n.Panel().SelectedIndex())
	}

	if view := ansi.Strip(n.View()); !strings.Contains(view, "› two") {
		t.Errorf("selected card should carry the marker:\n%s", view)
	}
}

func TestNewsView_Click(t *testing.T) {
	n := testNewsView(t)
	ticket := n.Panel().Request("FAA")
	n.Panel().Apply(ticket, []api.Article{{Title: "one"}, {Title: "two"}}, nil)

	// Row 0 is the border and row 1 the title; each one-line card is
	// followed by a blank line.
	if !n.Click(4) {
		t.Fatal("click on the second card missed")
	}
	if n.Panel().SelectedIndex() != 1 {
		t.Errorf("SelectedIndex() = %d, want 1", n.Panel().SelectedIndex())
	}
	if n.Click(0) {
		t.Error("click on the border should miss")
	}
}
