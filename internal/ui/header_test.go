package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestNewHeader(t *testing.T) {
	header := NewHeader()

	if header == nil {
		t.Fatal("NewHeader() returned nil")
	}
	if header.Agency() != "" {
		t.Error("Expected no agency initially")
	}
}

func TestHeader_View_Catalog(t *testing.T) {
	header := NewHeader()
	header.SetWidth(100)

	view := ansi.Strip(header.View())

	if !strings.Contains(view, AppTitle) {
		t.Errorf("Header should contain the title, got: %q", view)
	}
	if !strings.Contains(view, AppSubtitle) {
		t.Errorf("Header should contain the subtitle, got: %q", view)
	}
	if !strings.HasPrefix(view, " "+LogoGlyph) {
		t.Errorf("Header should start with the logo glyph, got: %q", view)
	}
	if w := ansi.StringWidth(view); w != 100 {
		t.Errorf("Header width = %d, want 100", w)
	}
}

func TestHeader_View_WithAgency(t *testing.T) {
	header := NewHeader()
	header.SetWidth(140)
	header.SetAgency("EPA", "Environmental Protection Agency")

	view := ansi.Strip(header.View())

	if !strings.Contains(view, "EPA · Environmental Protection Agency") {
		t.Errorf("Header should show the agency, got: %q", view)
	}
}

func TestHeader_View_Narrow(t *testing.T) {
	header := NewHeader()
	header.SetWidth(40)
	header.SetAgency("EPA", "Environmental Protection Agency")

	view := ansi.Strip(header.View())

	if strings.Contains(view, AppSubtitle) {
		t.Error("subtitle should be dropped on a narrow terminal")
	}
	if !strings.Contains(view, AppTitle) || !strings.Contains(view, "EPA") {
		t.Errorf("title and agency should survive, got: %q", view)
	}
}

func TestHeader_SetAgencyClears(t *testing.T) {
	header := NewHeader()
	header.SetWidth(120)
	header.SetAgency("SEC", "Securities and Exchange Commission")
	header.SetAgency("", "")

	if strings.Contains(ansi.Strip(header.View()), "SEC") {
		t.Error("agency should be cleared")
	}
}

func TestHeader_HitLogo(t *testing.T) {
	header := NewHeader()

	tests := []struct {
		x    int
		want bool
	}{
		{-1, false},
		{0, true},
		{1, true},
		{2, true},
		{3, false},
		{40, false},
	}
	for _, tt := range tests {
		if got := header.HitLogo(tt.x); got != tt.want {
			t.Errorf("HitLogo(%d) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	r, g, b := parseHexColor("#0891B2")
	if r != 0x08 || g != 0x91 || b != 0xB2 {
		t.Errorf("parseHexColor = %d,%d,%d", r, g, b)
	}

	r, g, b = parseHexColor("nope")
	if r != 0 || g != 0 || b != 0 {
		t.Error("invalid color should parse to black")
	}
}
