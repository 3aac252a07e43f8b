package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
)

func TestNewFooter(t *testing.T) {
	footer := NewFooter()

	if footer == nil {
		t.Fatal("NewFooter() returned nil")
	}
	if footer.flashMessage != nil {
		t.Error("Expected no flash message initially")
	}
	if len(footer.Bindings()) == 0 {
		t.Error("Expected catalog bindings by default")
	}
}

func TestFooter_SetFlash(t *testing.T) {
	footer := NewFooter()

	footer.SetFlash("Copied reply", FlashSuccess)

	if footer.flashMessage == nil {
		t.Fatal("Expected flash message to be set")
	}
	if footer.flashMessage.Text != "Copied reply" || footer.flashMessage.Type != FlashSuccess {
		t.Errorf("unexpected flash %+v", footer.flashMessage)
	}
	if footer.flashMessage.Duration != DefaultFlashDuration {
		t.Errorf("Expected duration %v, got %v", DefaultFlashDuration, footer.flashMessage.Duration)
	}
}

func TestFooter_SetFlashWithDuration(t *testing.T) {
	footer := NewFooter()
	footer.SetFlashWithDuration("Custom duration", FlashInfo, 10*time.Second)

	if footer.flashMessage.Duration != 10*time.Second {
		t.Errorf("Expected duration 10s, got %v", footer.flashMessage.Duration)
	}
}

func TestFooter_ClearFlash(t *testing.T) {
	footer := NewFooter()

	footer.SetFlash("Test message", FlashInfo)
	if !footer.HasFlash() {
		t.Error("Expected HasFlash() to return true")
	}

	footer.ClearFlash()
	if footer.HasFlash() {
		t.Error("Expected HasFlash() to return false after ClearFlash()")
	}
}

func TestFlashMessage_IsExpired(t *testing.T) {
	fresh := &FlashMessage{CreatedAt: time.Now(), Duration: 5 * time.Second}
	if fresh.IsExpired() {
		t.Error("New message should not be expired")
	}

	old := &FlashMessage{CreatedAt: time.Now().Add(-10 * time.Second), Duration: 5 * time.Second}
	if !old.IsExpired() {
		t.Error("Old message should be expired")
	}
}

func TestFooter_ClearIfExpired(t *testing.T) {
	footer := NewFooter()

	footer.SetFlash("Not expired", FlashInfo)
	if footer.ClearIfExpired() {
		t.Error("Should not clear non-expired message")
	}

	footer.flashMessage = &FlashMessage{
		Text:      "Expired",
		CreatedAt: time.Now().Add(-10 * time.Second),
		Duration:  5 * time.Second,
	}
	if !footer.ClearIfExpired() {
		t.Error("Should clear expired message")
	}
	if footer.HasFlash() {
		t.Error("Flash should be cleared")
	}
}

func TestFooter_FlashTypes(t *testing.T) {
	tests := []struct {
		name         string
		flashType    FlashType
		expectedIcon string
	}{
		{"Error", FlashError, "✕"},
		{"Warning", FlashWarning, "⚠"},
		{"Info", FlashInfo, "ℹ"},
		{"Success", FlashSuccess, "✓"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			footer := NewFooter()
			footer.SetWidth(80)
			footer.SetFlash("Test message", tt.flashType)

			view := footer.View()
			if !strings.Contains(view, tt.expectedIcon) || !strings.Contains(view, "Test message") {
				t.Errorf("Expected %s flash to contain icon %q", tt.name, tt.expectedIcon)
			}
		})
	}
}

func TestFooter_FlashReplacesBindings(t *testing.T) {
	footer := NewFooter()
	footer.SetWidth(120)
	footer.SetFlash("Could not open link", FlashError)

	view := ansi.Strip(footer.View())
	if strings.Contains(view, "settings") || strings.Contains(view, Copyright) {
		t.Errorf("flash should replace the bindings, got %q", view)
	}
}

func TestFooter_Copyright(t *testing.T) {
	footer := NewFooter()
	footer.SetWidth(160)

	if view := ansi.Strip(footer.View()); !strings.Contains(view, Copyright) {
		t.Errorf("footer should show the copyright, got %q", view)
	}
}

func TestFooter_Links(t *testing.T) {
	footer := NewFooter()
	footer.SetWidth(200)
	raw := footer.View()

	for _, l := range FooterLinks {
		if !strings.Contains(raw, ansi.SetHyperlink(l.URL)) {
			t.Errorf("footer should hyperlink %s", l.URL)
		}
	}

	// Locate each label on screen and check the click map agrees.
	plain := ansi.Strip(raw)
	for _, l := range FooterLinks {
		idx := strings.Index(plain, l.Label)
		if idx < 0 {
			t.Fatalf("label %q missing from %q", l.Label, plain)
		}
		x := ansi.StringWidth(plain[:idx])
		if got, ok := footer.LinkAt(x); !ok || got != l.URL {
			t.Errorf("LinkAt(%d) = %q, %v, want %s", x, got, ok, l.URL)
		}
	}
	if _, ok := footer.LinkAt(2); ok {
		t.Error("bindings should not be links")
	}
}

func TestFooter_LinksDropFirstWhenNarrow(t *testing.T) {
	footer := NewFooter()
	footer.SetWidth(40)

	view := ansi.Strip(footer.View())
	if !strings.Contains(view, Copyright) {
		t.Errorf("copyright should stay, got %q", view)
	}
	if strings.Contains(view, "GitHub") {
		t.Errorf("links should be dropped when narrow, got %q", view)
	}
	if _, ok := footer.LinkAt(30); ok {
		t.Error("no link should be clickable when none are drawn")
	}
}

func TestFooter_FlashClearsLinks(t *testing.T) {
	footer := NewFooter()
	footer.SetWidth(200)
	footer.View()
	footer.SetFlash("Saved", FlashSuccess)
	footer.View()

	for x := 0; x < 200; x++ {
		if _, ok := footer.LinkAt(x); ok {
			t.Fatalf("link at %d while a flash hides them", x)
		}
	}
}

func TestFooter_NarrowDropsBindings(t *testing.T) {
	footer := NewFooter()
	footer.SetWidth(60)

	view := ansi.Strip(footer.View())
	if ansi.StringWidth(view) > 60 {
		t.Errorf("footer overflowed: width %d", ansi.StringWidth(view))
	}
}

func TestFooter_ModeBindings(t *testing.T) {
	has := func(bs []KeyBinding, desc string) bool {
		for _, b := range bs {
			if b.Desc == desc {
				return true
			}
		}
		return false
	}

	footer := NewFooter()

	footer.SetContext(FooterContext{Mode: FooterChat})
	if !has(footer.Bindings(), "send") || !has(footer.Bindings(), "news") {
		t.Error("chat mode should offer send and news focus")
	}
	if has(footer.Bindings(), "attachments") {
		t.Error("attachments binding needs attachments")
	}

	footer.SetContext(FooterContext{Mode: FooterChat, Awaiting: true, HasAttachments: true, NewsHidden: true})
	bs := footer.Bindings()
	if has(bs, "send") {
		t.Error("send should be hidden while awaiting a reply")
	}
	if has(bs, "news") || !has(bs, "show news") || !has(bs, "attachments") {
		t.Errorf("unexpected bindings %v", bs)
	}

	footer.SetContext(FooterContext{Mode: FooterNews})
	if !has(footer.Bindings(), "open article") || !has(footer.Bindings(), "copy link") {
		t.Error("news mode should offer open and copy")
	}

	footer.SetContext(FooterContext{Mode: FooterModal})
	if !has(footer.Bindings(), "close") {
		t.Error("modal mode should offer close")
	}
}

func TestFooter_SetBindingsOverrides(t *testing.T) {
	footer := NewFooter()
	footer.SetBindings([]KeyBinding{{Key: "x", Desc: "custom"}})

	if bs := footer.Bindings(); len(bs) != 1 || bs[0].Desc != "custom" {
		t.Errorf("Bindings() = %v", bs)
	}

	footer.SetBindings(nil)
	if bs := footer.Bindings(); len(bs) < 2 {
		t.Error("nil should restore mode bindings")
	}
}

func TestFlashTick(t *testing.T) {
	if FlashTick() == nil {
		t.Error("FlashTick() should return a command")
	}
}
