package modals

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Style variables - these will be set by the parent ui package via SetStyles
var (
	ModalTitleStyle   lipgloss.Style
	ModalHelpStyle    lipgloss.Style
	ListItemStyle     lipgloss.Style
	ListSelectedStyle lipgloss.Style
	StatusErrorStyle  lipgloss.Style

	ColorPrimary     color.Color
	ColorSecondary   color.Color
	ColorText        color.Color
	ColorTextMuted   color.Color
	ColorTextInverse color.Color
	ColorWarning     color.Color

	ModalInputWidth     int
	ModalInputCharLimit int
	ModalWidth          int
	ModalWidthWide      int
)

// HelpModalMaxVisible is how many help rows show before the list scrolls
const HelpModalMaxVisible = 18

// SetStyles sets the style variables from the parent ui package.
// This must be called before rendering any modals.
func SetStyles(
	modalTitle, modalHelp, listItem, listSelected, statusError lipgloss.Style,
	primary, secondary, text, textMuted, textInverse, warning color.Color,
	inputWidth, inputCharLimit, modalWidth, modalWidthWide int,
) {
	ModalTitleStyle = modalTitle
	ModalHelpStyle = modalHelp
	ListItemStyle = listItem
	ListSelectedStyle = listSelected
	StatusErrorStyle = statusError

	ColorPrimary = primary
	ColorSecondary = secondary
	ColorText = text
	ColorTextMuted = textMuted
	ColorTextInverse = textInverse
	ColorWarning = warning

	ModalInputWidth = inputWidth
	ModalInputCharLimit = inputCharLimit
	ModalWidth = modalWidth
	ModalWidthWide = modalWidthWide
}
