package modals

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/botenders/govsimplify/internal/api"
)

func TestAttachmentListState(t *testing.T) {
	items := []api.Attachment{
		{Type: "pdf", Title: "Form 3500", URL: "https://example.gov/3500.pdf"},
		{Type: "html", Title: "Summary", Content: "<p>hi</p>"},
	}
	state := NewAttachmentListState(items)

	out := ansi.Strip(state.Render())
	if !strings.Contains(out, "Form 3500 (pdf)") || !strings.Contains(out, "Summary (preview)") {
		t.Errorf("render missing items:\n%s", out)
	}

	state.Update(keyDown)
	state.Update(keyDown)
	got, ok := state.SelectedAttachment()
	if !ok || got.Title != "Summary" {
		t.Errorf("SelectedAttachment() = %+v, %v", got, ok)
	}

	state.Update(runeKey('k'))
	if got, _ := state.SelectedAttachment(); got.Title != "Form 3500" {
		t.Errorf("after k, selected = %q", got.Title)
	}
	state.Update(keyUp)
	if state.Selected != 0 {
		t.Errorf("Selected = %d, want 0", state.Selected)
	}
}

func TestAttachmentListState_Empty(t *testing.T) {
	state := NewAttachmentListState(nil)
	if _, ok := state.SelectedAttachment(); ok {
		t.Error("empty list should have no selection")
	}
}

func TestAttachmentPreviewState_ToggleSource(t *testing.T) {
	var widths []int
	render := func(width int) string {
		widths = append(widths, width)
		return "Rendered body"
	}
	state := NewAttachmentPreviewState("Summary", "<p>Rendered body</p>", render)

	out := ansi.Strip(state.Render())
	if !strings.Contains(out, "Summary") || !strings.Contains(out, "Rendered body") {
		t.Errorf("preview missing content:\n%s", out)
	}
	if strings.Contains(out, "<p>") {
		t.Error("rendered view should not show markup")
	}

	state.Update(runeKey('r'))
	if !state.ShowingSource() {
		t.Fatal("r should switch to the source view")
	}
	if out := ansi.Strip(state.Render()); !strings.Contains(out, "<p>Rendered body</p>") {
		t.Errorf("source view missing markup:\n%s", out)
	}

	state.Update(runeKey('r'))
	if state.ShowingSource() {
		t.Error("second r should switch back")
	}

	state.SetSize(60, 20)
	if last := widths[len(widths)-1]; last != 60 {
		t.Errorf("render width = %d, want 60", last)
	}
}

func TestAttachmentPreviewState_Scroll(t *testing.T) {
	var body strings.Builder
	for i := range 100 {
		fmt.Fprintf(&body, "line %d\n", i)
	}
	state := NewAttachmentPreviewState("Long", "", func(int) string { return body.String() })
	state.SetSize(80, 10)

	state.Update(keyDown)
	if state.ScrollOffset() == 0 {
		t.Error("down should scroll the preview")
	}
}
