package ui

import "charm.land/lipgloss/v2"

// Color palette - Civic cyan + Botenders orange
var (
	ColorPrimary     = lipgloss.Color("#0891B2") // Cyan
	ColorSecondary   = lipgloss.Color("#F97316") // Orange
	ColorMuted       = lipgloss.Color("#6B7280") // Gray
	ColorBorder      = lipgloss.Color("#334155") // Slate
	ColorBorderFocus = lipgloss.Color("#0891B2") // Cyan when focused
	ColorBg          = lipgloss.Color("#0F172A") // Dark background
	ColorText        = lipgloss.Color("#F8FAFC") // Light text
	ColorTextMuted   = lipgloss.Color("#94A3B8") // Muted text
	ColorTextInverse = lipgloss.Color("#0F172A") // Dark text for light backgrounds
	ColorUser        = lipgloss.Color("#FDBA74") // Light orange for user messages
	ColorAssistant   = lipgloss.Color("#22D3EE") // Bright cyan for assistant messages
	ColorWarning     = lipgloss.Color("#F59E0B") // Amber for the slow hint
	ColorInfo        = lipgloss.Color("#38BDF8") // Sky for info
	ColorError       = lipgloss.Color("#EF4444") // Red for errors
	ColorSuccess     = lipgloss.Color("#10B981") // Green for success
)

// Header styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorPrimary).
			Padding(0, 1)

	HeaderTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorText)
)

// Footer styles
var (
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
)

// Panel styles
var (
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
)

// Catalog styles
var (
	CatalogCardStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorder).
				Padding(0, 1)

	// CatalogCursorStyle marks the card under the keyboard cursor.
	CatalogCursorStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus).
				Padding(0, 1)

	// CatalogSelectedStyle marks the selected card, which Enter confirms.
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
)

// News styles
var (
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
)

// Chat styles
var (
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
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2).
			Width(ModalWidth)

	// ModalBackdropStyle dims the view behind an open modal
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
				Background(ColorPrimary).
				Foreground(ColorText).
				Bold(true).
				Padding(0, 1)
)

// Status styles
var (
	StatusLoadingStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary).
				Italic(true)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)

	StatusPlaceholderStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted).
				Italic(true)
)

// Markdown rendering styles (updated by regenerateStyles)
var (
	MarkdownH1Style = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].MarkdownH1))

	MarkdownH2Style = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].MarkdownH2))

	MarkdownH3Style = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].MarkdownH3))

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
				Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].MarkdownCode)).
				Background(lipgloss.Color(BuiltinThemes[DefaultTheme].MarkdownCodeBg))

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
				Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].MarkdownLink)).
				Underline(true)
)
