// Package ui provides theme management for the application.
// Themes define the color palette used throughout the UI, allowing users
// to customize the visual appearance of GovSimplify.
package ui

import (
	"charm.land/lipgloss/v2"

	"github.com/botenders/govsimplify/internal/ui/modals"
)

// Theme defines a complete color palette for the application.
type Theme struct {
	// Name is the display name of the theme
	Name string

	// Primary is the main accent color (used for focus, highlights, headers)
	Primary string
	// Secondary is the secondary accent color (used for selection, key hints)
	Secondary string

	// Background colors
	Bg         string // Main background
	BgSelected string // Selected item background (defaults to Primary if empty)

	// Text colors
	Text        string // Primary text
	TextMuted   string // Secondary/muted text
	TextInverse string // Text on colored backgrounds

	// Semantic colors
	User      string // User message labels
	Assistant string // Assistant message labels
	Warning   string // Slow hint, warnings
	Error     string // Error messages
	Info      string // Information
	Success   string // Confirmations

	// Border colors
	Border      string // Default borders
	BorderFocus string // Focused element borders (defaults to Primary if empty)

	// Markdown colors
	MarkdownH1     string
	MarkdownH2     string
	MarkdownH3     string
	MarkdownCode   string // Inline code
	MarkdownCodeBg string // Code background
	MarkdownLink   string

	// CodeStyle is the chroma style used for fenced code blocks
	CodeStyle string
}

// GetBgSelected returns the selected background color, defaulting to Primary
func (t Theme) GetBgSelected() string {
	if t.BgSelected != "" {
		return t.BgSelected
	}
	return t.Primary
}

// GetBorderFocus returns the focused border color, defaulting to Primary
func (t Theme) GetBorderFocus() string {
	if t.BorderFocus != "" {
		return t.BorderFocus
	}
	return t.Primary
}

// ThemeName is a type for theme identifiers
type ThemeName string

// Available theme names
const (
	ThemeGovSimplify ThemeName = "govsimplify"
	ThemeDarkPurple  ThemeName = "dark-purple"
	ThemeNord        ThemeName = "nord"
	ThemeTokyoNight  ThemeName = "tokyo-night"
	ThemeLight       ThemeName = "light"
)

// DefaultTheme is the default theme name
const DefaultTheme = ThemeGovSimplify

// BuiltinThemes contains all built-in themes
var BuiltinThemes = map[ThemeName]Theme{
	ThemeGovSimplify: {
		Name:           "GovSimplify",
		Primary:        "#0891B2",
		Secondary:      "#F97316",
		Bg:             "#0F172A",
		Text:           "#F8FAFC",
		TextMuted:      "#94A3B8",
		TextInverse:    "#0F172A",
		User:           "#FDBA74",
		Assistant:      "#22D3EE",
		Warning:        "#F59E0B",
		Error:          "#EF4444",
		Info:           "#38BDF8",
		Success:        "#10B981",
		Border:         "#334155",
		MarkdownH1:     "#22D3EE",
		MarkdownH2:     "#67E8F9",
		MarkdownH3:     "#FDBA74",
		MarkdownCode:   "#FDBA74",
		MarkdownCodeBg: "#1E293B",
		MarkdownLink:   "#38BDF8",
		CodeStyle:      "monokai",
	},
	ThemeDarkPurple: {
		Name:           "Dark Purple",
		Primary:        "#7C3AED",
		Secondary:      "#06B6D4",
		Bg:             "#1F2937",
		Text:           "#F9FAFB",
		TextMuted:      "#9CA3AF",
		TextInverse:    "#1F2937",
		User:           "#A78BFA",
		Assistant:      "#22D3EE",
		Warning:        "#F59E0B",
		Error:          "#EF4444",
		Info:           "#06B6D4",
		Success:        "#10B981",
		Border:         "#374151",
		MarkdownH1:     "#A78BFA",
		MarkdownH2:     "#C4B5FD",
		MarkdownH3:     "#22D3EE",
		MarkdownCode:   "#67E8F9",
		MarkdownCodeBg: "#1E1E2E",
		MarkdownLink:   "#67E8F9",
		CodeStyle:      "dracula",
	},
	ThemeNord: {
		Name:           "Nord",
		Primary:        "#88C0D0",
		Secondary:      "#EBCB8B",
		Bg:             "#2E3440",
		Text:           "#ECEFF4",
		TextMuted:      "#D8DEE9",
		TextInverse:    "#2E3440",
		User:           "#A3BE8C",
		Assistant:      "#88C0D0",
		Warning:        "#EBCB8B",
		Error:          "#BF616A",
		Info:           "#81A1C1",
		Success:        "#A3BE8C",
		Border:         "#4C566A",
		MarkdownH1:     "#88C0D0",
		MarkdownH2:     "#81A1C1",
		MarkdownH3:     "#5E81AC",
		MarkdownCode:   "#A3BE8C",
		MarkdownCodeBg: "#242933",
		MarkdownLink:   "#88C0D0",
		CodeStyle:      "nord",
	},
	ThemeTokyoNight: {
		Name:           "Tokyo Night",
		Primary:        "#7AA2F7",
		Secondary:      "#BB9AF7",
		Bg:             "#1A1B26",
		Text:           "#C0CAF5",
		TextMuted:      "#565F89",
		TextInverse:    "#1A1B26",
		User:           "#9ECE6A",
		Assistant:      "#7AA2F7",
		Warning:        "#E0AF68",
		Error:          "#F7768E",
		Info:           "#7DCFFF",
		Success:        "#9ECE6A",
		Border:         "#3B4261",
		MarkdownH1:     "#7AA2F7",
		MarkdownH2:     "#BB9AF7",
		MarkdownH3:     "#7DCFFF",
		MarkdownCode:   "#9ECE6A",
		MarkdownCodeBg: "#16161E",
		MarkdownLink:   "#7DCFFF",
		CodeStyle:      "tokyonight-night",
	},
	ThemeLight: {
		Name:           "Light",
		Primary:        "#0E7490",
		Secondary:      "#C2410C",
		Bg:             "#FFFFFF",
		BgSelected:     "#CFFAFE",
		Text:           "#0F172A",
		TextMuted:      "#64748B",
		TextInverse:    "#FFFFFF",
		User:           "#C2410C",
		Assistant:      "#0E7490",
		Warning:        "#B45309",
		Error:          "#DC2626",
		Info:           "#0369A1",
		Success:        "#15803D",
		Border:         "#CBD5E1",
		MarkdownH1:     "#0E7490",
		MarkdownH2:     "#155E75",
		MarkdownH3:     "#C2410C",
		MarkdownCode:   "#9A3412",
		MarkdownCodeBg: "#F1F5F9",
		MarkdownLink:   "#0369A1",
		CodeStyle:      "github",
	},
}

// ThemeNames returns a list of all available theme names in display order
func ThemeNames() []ThemeName {
	return []ThemeName{
		ThemeGovSimplify,
		ThemeDarkPurple,
		ThemeNord,
		ThemeTokyoNight,
		ThemeLight,
	}
}

// IsKnownTheme reports whether name is a built-in theme.
func IsKnownTheme(name string) bool {
	_, ok := BuiltinThemes[ThemeName(name)]
	return ok
}

// GetTheme returns a theme by name, defaulting to GovSimplify if not found
func GetTheme(name ThemeName) Theme {
	if theme, ok := BuiltinThemes[name]; ok {
		return theme
	}
	return BuiltinThemes[DefaultTheme]
}

// currentTheme holds the active theme
var (
	currentTheme     = BuiltinThemes[DefaultTheme]
	currentThemeName = DefaultTheme
)

// CurrentTheme returns the currently active theme
func CurrentTheme() Theme {
	return currentTheme
}

// CurrentThemeName returns the name of the current theme
func CurrentThemeName() ThemeName {
	return currentThemeName
}

// SetTheme sets the active theme and regenerates all styles. Unknown names
// fall back to the default theme.
func SetTheme(name ThemeName) {
	if _, ok := BuiltinThemes[name]; !ok {
		name = DefaultTheme
	}
	currentThemeName = name
	currentTheme = BuiltinThemes[name]
	regenerateStyles()
	RefreshModalStyles()
}

// SetThemeByName sets the active theme by string name
func SetThemeByName(name string) {
	SetTheme(ThemeName(name))
}

// RefreshModalStyles pushes the current palette into the modals package.
func RefreshModalStyles() {
	modals.SetStyles(
		ModalTitleStyle, ModalHelpStyle, ListItemStyle, ListSelectedStyle, StatusErrorStyle,
		ColorPrimary, ColorSecondary, ColorText, ColorTextMuted, ColorTextInverse, ColorWarning,
		ModalInputWidth, ModalInputCharLimit, ModalWidth, ModalWidthWide,
	)
}

func init() {
	RefreshModalStyles()
}

// regenerateStyles updates all style variables based on the current theme
func regenerateStyles() {
	t := currentTheme

	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorMuted = lipgloss.Color(t.TextMuted)
	ColorBorder = lipgloss.Color(t.Border)
	ColorBorderFocus = lipgloss.Color(t.GetBorderFocus())
	ColorBg = lipgloss.Color(t.Bg)
	ColorText = lipgloss.Color(t.Text)
	ColorTextMuted = lipgloss.Color(t.TextMuted)
	ColorTextInverse = lipgloss.Color(t.TextInverse)
	ColorUser = lipgloss.Color(t.User)
	ColorAssistant = lipgloss.Color(t.Assistant)
	ColorWarning = lipgloss.Color(t.Warning)
	ColorInfo = lipgloss.Color(t.Info)
	ColorError = lipgloss.Color(t.Error)
	ColorSuccess = lipgloss.Color(t.Success)

	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText).
		Background(ColorPrimary).
		Padding(0, 1)

	HeaderTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText)

	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	FooterLinkStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Underline(true)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus)

	PanelTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Padding(0, 1)

	CatalogCardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)

	CatalogCursorStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus).
		Padding(0, 1)

	CatalogSelectedStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(ColorSecondary).
		Padding(0, 1)

	CatalogShortNameStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText)

	CatalogFullNameStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	CatalogCategoryStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Italic(true)

	CatalogContinueStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)

	CatalogAnnouncementStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)

	NewsTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText)

	NewsSelectedTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	NewsSummaryStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	NewsMetaStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)

	ChatUserStyle = lipgloss.NewStyle().
		Foreground(ColorUser).
		Bold(true)

	ChatAssistantStyle = lipgloss.NewStyle().
		Foreground(ColorAssistant).
		Bold(true)

	ChatMessageStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	ChatErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError)

	ChatTimestampStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	ChatAttachmentStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Underline(true)

	ChatSlowHintStyle = lipgloss.NewStyle().
		Foreground(ColorWarning).
		Italic(true)

	ChatInputStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)

	ChatInputFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus).
		Padding(0, 1)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2).
		Width(ModalWidth)

	ModalBackdropStyle = lipgloss.NewStyle().
		Foreground(ColorBorder)

	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)

	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		MarginTop(1)

	ListItemStyle = lipgloss.NewStyle().
		Padding(0, 1)

	ListSelectedStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(t.GetBgSelected())).
		Foreground(lipgloss.Color(t.Text)).
		Bold(true).
		Padding(0, 1)

	StatusLoadingStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Italic(true)

	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	StatusPlaceholderStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	MarkdownH1Style = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.MarkdownH1))

	MarkdownH2Style = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.MarkdownH2))

	MarkdownH3Style = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.MarkdownH3))

	MarkdownH4Style = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorTextMuted)

	MarkdownBoldStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText)

	MarkdownItalicStyle = lipgloss.NewStyle().
		Italic(true).
		Foreground(ColorText)

	MarkdownStrikeStyle = lipgloss.NewStyle().
		Strikethrough(true).
		Foreground(ColorTextMuted)

	MarkdownInlineCodeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.MarkdownCode)).
		Background(lipgloss.Color(t.MarkdownCodeBg))

	MarkdownListBulletStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)

	MarkdownBlockquoteBarStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	MarkdownBlockquoteStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	MarkdownHRStyle = lipgloss.NewStyle().
		Foreground(ColorBorder)

	MarkdownLinkStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.MarkdownLink)).
		Underline(true)
}
