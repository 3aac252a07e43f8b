package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/rivo/uniseg"
)

// logoHitWidth is how many leading header cells count as the logo.
const logoHitWidth = 3

// Header represents the top header bar
type Header struct {
	width    int
	agency   string // short name of the active agency, empty in the catalog
	fullName string
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetAgency sets the agency shown at the right edge. Empty names clear it.
func (h *Header) SetAgency(shortName, fullName string) {
	h.agency = shortName
	h.fullName = fullName
}

// Agency returns the short name currently shown.
func (h *Header) Agency() string {
	return h.agency
}

// HitLogo reports whether a click at column x lands on the logo glyph.
func (h *Header) HitLogo(x int) bool {
	return x >= 0 && x < logoHitWidth
}

// View renders the header
func (h *Header) View() string {
	titleText := " " + LogoGlyph + " " + AppTitle
	subtitle := "  " + AppSubtitle

	var rightText string
	if h.agency != "" {
		rightText = h.agency
		if h.fullName != "" {
			rightText += " · " + h.fullName
		}
		rightText += " "
	}

	// Drop the subtitle, then the agency's full name, when space runs out.
	if uniseg.StringWidth(titleText+subtitle+rightText) > h.width {
		subtitle = ""
	}
	if uniseg.StringWidth(titleText+rightText) > h.width && h.agency != "" {
		rightText = h.agency + " "
	}

	paddingLen := max(0, h.width-uniseg.StringWidth(titleText+subtitle+rightText))
	fullContent := titleText + subtitle + strings.Repeat(" ", paddingLen) + rightText

	titleEnd := uniseg.GraphemeClusterCount(titleText)
	mutedEnd := titleEnd + uniseg.GraphemeClusterCount(subtitle)
	return h.renderGradient(fullContent, titleEnd, mutedEnd)
}

// parseHexColor parses a hex color string (e.g., "#0891B2") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders the content with a theme-aware gradient background.
// Runes before titleEnd are bold; runes in [titleEnd, mutedEnd) are muted.
func (h *Header) renderGradient(content string, titleEnd, mutedEnd int) string {
	if len(content) == 0 {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	endR, endG, endB := parseHexColor(theme.Bg)

	textColor := lipgloss.Color(theme.Text)
	mutedColor := lipgloss.Color(theme.TextMuted)
	logoColor := lipgloss.Color(theme.Secondary)

	runes := []rune(content)
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		t := float64(i) / float64(width)

		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		bgColor := lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))

		style := lipgloss.NewStyle().
			Background(bgColor).
			Bold(i < titleEnd)

		switch {
		case string(r) == LogoGlyph:
			style = style.Foreground(logoColor)
		case i >= titleEnd && i < mutedEnd:
			style = style.Foreground(mutedColor)
		default:
			style = style.Foreground(textColor)
		}

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
