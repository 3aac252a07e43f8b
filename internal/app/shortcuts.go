package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/botenders/govsimplify/internal/keys"
	"github.com/botenders/govsimplify/internal/ui"
	"github.com/botenders/govsimplify/internal/ui/modals"
)

// Shortcut represents a keyboard shortcut with its metadata and handler.
// This is the single source of truth for all global shortcuts in the application.
type Shortcut struct {
	Key                  string                              // The key binding (e.g., "ctrl+b")
	DisplayKey           string                              // Display name in help; defaults to Key
	Description          string                              // Human-readable description
	Category             string                              // Section for help modal grouping
	RequiresConversation bool                                // Only in the conversation view
	Handler              func(m *Model) (tea.Model, tea.Cmd) // Action to perform
	Condition            func(m *Model) bool                 // Optional extra condition
}

// Categories for organizing shortcuts in the help modal
const (
	CategoryAgencies     = "Agencies"
	CategoryConversation = "Conversation"
	CategoryNews         = "News"
	CategoryGeneral      = "General"
)

// categoryOrder defines the display order of categories in the help modal
var categoryOrder = []string{
	CategoryAgencies,
	CategoryConversation,
	CategoryNews,
	CategoryGeneral,
}

// ShortcutRegistry is the central registry of global keyboard shortcuts.
// Add new shortcuts here and they will automatically appear in the help modal.
var ShortcutRegistry = []Shortcut{
	// Conversation
	{
		Key:                  keys.CtrlB,
		Description:          "Back to agency selection",
		Category:             CategoryConversation,
		RequiresConversation: true,
		Handler:              shortcutBack,
	},
	{
		Key:                  keys.CtrlA,
		Description:          "Attachments in this conversation",
		Category:             CategoryConversation,
		RequiresConversation: true,
		Handler:              shortcutAttachments,
	},
	{
		Key:                  keys.CtrlY,
		Description:          "Copy the latest reply",
		Category:             CategoryConversation,
		RequiresConversation: true,
		Handler:              shortcutCopyReply,
	},

	// News
	{
		Key:                  keys.Tab,
		DisplayKey:           "Tab",
		Description:          "Switch between chat and news",
		Category:             CategoryNews,
		RequiresConversation: true,
		Handler:              shortcutToggleFocus,
		Condition:            func(m *Model) bool { return !ui.GetViewContext().NewsHidden() },
	},
	{
		Key:                  keys.CtrlN,
		Description:          "Show or hide news",
		Category:             CategoryNews,
		RequiresConversation: true,
		Handler:              shortcutToggleNews,
	},

	// General
	{
		Key:         keys.CtrlS,
		Description: "Settings",
		Category:    CategoryGeneral,
		Handler:     shortcutSettings,
	},
	{
		Key:         keys.CtrlC,
		Description: "Quit application",
		Category:    CategoryGeneral,
		Handler:     shortcutQuit,
	},
}

// helpShortcuts are defined separately to avoid an initialization cycle.
// shortcutHelp references ShortcutRegistry, so they can't be in the registry itself.
var helpShortcuts = []Shortcut{
	{Key: keys.CtrlSlash, Description: "Show this help", Category: CategoryGeneral},
	{Key: "?", Description: "Show this help (outside text input)", Category: CategoryGeneral},
}

// DisplayOnlyShortcuts are shown in help but handled by the focused component.
var DisplayOnlyShortcuts = []Shortcut{
	{DisplayKey: "type", Description: "Filter agencies", Category: CategoryAgencies},
	{DisplayKey: "arrows", Description: "Move between agencies", Category: CategoryAgencies},
	{DisplayKey: "Enter", Description: "Select, then Enter again to continue", Category: CategoryAgencies},
	{DisplayKey: "ctrl+o", Description: "Continue with the selected agency", Category: CategoryAgencies},
	{DisplayKey: "Esc", Description: "Clear the search", Category: CategoryAgencies},

	{DisplayKey: "Enter", Description: "Send message", Category: CategoryConversation, RequiresConversation: true},
	{DisplayKey: "alt+Enter", Description: "New line", Category: CategoryConversation, RequiresConversation: true},
	{DisplayKey: "PgUp/PgDn", Description: "Scroll the transcript", Category: CategoryConversation, RequiresConversation: true},
	{DisplayKey: "Click header", Description: "Back to agency selection", Category: CategoryConversation, RequiresConversation: true},

	{DisplayKey: "↑/↓", Description: "Move between articles", Category: CategoryNews, RequiresConversation: true},
	{DisplayKey: "Enter", Description: "Open article in browser", Category: CategoryNews, RequiresConversation: true},
	{DisplayKey: "y", Description: "Copy article link", Category: CategoryNews, RequiresConversation: true},
}

// isShortcutApplicable checks if a shortcut is applicable given the current model state.
func (m *Model) isShortcutApplicable(s Shortcut) bool {
	if s.RequiresConversation && m.view != ViewConversation {
		return false
	}
	if s.Condition != nil && !s.Condition(m) {
		return false
	}
	return true
}

// textInputFocused reports whether typed characters belong to a text field.
func (m *Model) textInputFocused() bool {
	if m.view == ViewAgencySelection {
		return true
	}
	return m.focus == FocusChat
}

// ExecuteShortcut finds and executes a shortcut by key.
// Returns (model, cmd, true) if the shortcut was found and its guards passed.
func (m *Model) ExecuteShortcut(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case keys.CtrlSlash:
		result, cmd := shortcutHelp(m)
		return result, cmd, true
	case "?":
		if m.textInputFocused() {
			return m, nil, false // let "?" reach the input
		}
		result, cmd := shortcutHelp(m)
		return result, cmd, true
	}

	for _, s := range ShortcutRegistry {
		if s.Key != key {
			continue
		}
		if !m.isShortcutApplicable(s) {
			m.log.Debug("shortcut guard failed", "key", key, "view", m.view.String())
			return m, nil, false
		}
		result, cmd := s.Handler(m)
		return result, cmd, true
	}
	return m, nil, false
}

// getApplicableHelpSections generates help modal sections from shortcuts that are
// applicable in the current application state.
func (m *Model) getApplicableHelpSections(registry []Shortcut, displayOnly []Shortcut) []modals.HelpSection {
	categories := make(map[string][]modals.HelpShortcut)

	add := func(s Shortcut) {
		if !m.isShortcutApplicable(s) {
			return
		}
		displayKey := s.DisplayKey
		if displayKey == "" {
			displayKey = s.Key
		}
		categories[s.Category] = append(categories[s.Category], modals.HelpShortcut{
			Key:  displayKey,
			Desc: s.Description,
		})
	}
	for _, s := range registry {
		add(s)
	}
	for _, s := range displayOnly {
		add(s)
	}

	// Build sections in the correct order
	var sections []modals.HelpSection
	for _, cat := range categoryOrder {
		if shortcuts, ok := categories[cat]; ok && len(shortcuts) > 0 {
			sections = append(sections, modals.HelpSection{
				Title:     cat,
				Shortcuts: shortcuts,
			})
		}
	}
	return sections
}

// =============================================================================
// Shortcut Handlers
// =============================================================================

func shortcutBack(m *Model) (tea.Model, tea.Cmd) {
	return m, m.unmountConversation()
}

func shortcutAttachments(m *Model) (tea.Model, tea.Cmd) {
	return m, m.showAttachmentPicker()
}

func shortcutCopyReply(m *Model) (tea.Model, tea.Cmd) {
	return m, m.copyLastReply()
}

func shortcutToggleFocus(m *Model) (tea.Model, tea.Cmd) {
	m.toggleFocus()
	return m, nil
}

func shortcutToggleNews(m *Model) (tea.Model, tea.Cmd) {
	return m, m.toggleNewsPanel()
}

func shortcutSettings(m *Model) (tea.Model, tea.Cmd) {
	names := ui.ThemeNames()
	themes := make([]string, len(names))
	display := make([]string, len(names))
	for i, n := range names {
		themes[i] = string(n)
		display[i] = ui.GetTheme(n).Name
	}
	m.modal.Show(modals.NewSettingsState(
		themes, display, string(ui.CurrentThemeName()),
		m.config.GetAPIBaseURL(),
		m.config.GetNotificationsEnabled(),
		m.config.GetTrustAttachmentHTML(),
	))
	m.modal.SetSize(m.width, m.height)
	return m, nil
}

func shortcutHelp(m *Model) (tea.Model, tea.Cmd) {
	allShortcuts := append(append([]Shortcut{}, ShortcutRegistry...), helpShortcuts...)
	sections := m.getApplicableHelpSections(allShortcuts, DisplayOnlyShortcuts)
	m.modal.Show(modals.NewHelpStateFromSections(sections))
	m.modal.SetSize(m.width, m.height)
	return m, nil
}

func shortcutQuit(m *Model) (tea.Model, tea.Cmd) {
	if m.session != nil {
		m.session.Close()
	}
	return m, tea.Quit
}
