package modals

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// RenderSelectableList renders a simple list with selection highlighting.
// Returns the rendered list string. selectedIndex indicates which item is selected.
func RenderSelectableList(items []string, selectedIndex int) string {
	var result strings.Builder
	for i, item := range items {
		style := ListItemStyle
		prefix := "  "
		if i == selectedIndex {
			style = ListSelectedStyle
			prefix = "> "
		}
		result.WriteString(style.Render(prefix+item) + "\n")
	}
	return result.String()
}

// TruncateString truncates a string to maxWidth cells with an ellipsis
func TruncateString(s string, maxWidth int) string {
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	return ansi.Truncate(s, maxWidth, "...")
}
