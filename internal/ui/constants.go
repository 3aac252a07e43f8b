// Package ui provides constants for layout calculations and configuration.
package ui

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// NewsWidthRatio is the denominator for the news panel width (1/3 of total width)
	NewsWidthRatio = 3

	// MinNewsWidth keeps article cards readable on narrow terminals
	MinNewsWidth = 28

	// MinTerminalWidth and MinTerminalHeight clamp layout math
	MinTerminalWidth  = 40
	MinTerminalHeight = 12

	// TextareaHeight is the number of lines for the chat input textarea
	TextareaHeight = 3

	// TextareaBorderHeight is the border size around the textarea
	TextareaBorderHeight = 2

	// InputPaddingWidth is the horizontal padding inside the input area (Padding(0, 1) = 1 left + 1 right)
	InputPaddingWidth = 2

	// InputTotalHeight is the total height of the input area (textarea + borders)
	InputTotalHeight = TextareaHeight + TextareaBorderHeight

	// DefaultWrapWidth is the default width for text wrapping when viewport width is unknown
	DefaultWrapWidth = 80
)

// Catalog grid
const (
	// CatalogCardWidth is the outer width of one agency card
	CatalogCardWidth = 36

	// CatalogCardHeight is the outer height of one agency card (3 lines + borders)
	CatalogCardHeight = 5

	// CatalogSearchHeight is the search box plus the status line below it
	CatalogSearchHeight = 4
)

// Modal dimensions
const (
	// ModalWidth is the default width of modals
	ModalWidth = 60

	// ModalWidthWide is used by the attachment preview and settings
	ModalWidthWide = 90

	// ModalInputCharLimit is the character limit for modal text inputs
	ModalInputCharLimit = 256

	// ModalInputWidth is the width of modal text inputs
	ModalInputWidth = 50
)

// Branding
const (
	// AppTitle is shown at the left of the header
	AppTitle = "GovSimplify"

	// AppSubtitle follows the title in the header
	AppSubtitle = "By Botenders, powered by Google Gemini"

	// LogoGlyph stands in for the logo image
	LogoGlyph = "◆"

	// LogoURL opens when the logo glyph is clicked
	LogoURL = "https://botenders.com"

	// Copyright is shown at the right of the footer
	Copyright = "© 2024 Botenders, Inc."
)

// FooterLink is a labelled link shown after the copyright.
type FooterLink struct {
	Label string
	URL   string
}

// FooterLinks follow the copyright, in order.
var FooterLinks = []FooterLink{
	{Label: "Apache License 2.0", URL: "https://www.apache.org/licenses/LICENSE-2.0"},
	{Label: "GitHub", URL: "https://github.com/Botenders/GovSimplify"},
	{Label: "LinkedIn", URL: "https://linkedin.com/company/botenders"},
}
