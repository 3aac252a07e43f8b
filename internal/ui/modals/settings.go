package modals

import (
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/botenders/govsimplify/internal/config"
)

// =============================================================================
// SettingsState - State for the Settings modal
// =============================================================================

type SettingsState struct {
	// Bound form values
	apiBaseURL           string
	OriginalAPIBaseURL   string
	selectedTheme        string
	OriginalTheme        string // To detect if theme changed
	NotificationsEnabled bool
	TrustAttachmentHTML  bool

	// MultiSelect bindings
	generalOptions []string

	form *huh.Form

	// Size tracking
	availableWidth int
}

const (
	optionNotifications = "notifications"
	optionTrustHTML     = "trust-html"
)

func (*SettingsState) modalState() {}

func (s *SettingsState) PreferredWidth() int { return ModalWidthWide }

// SetSize updates the available width for rendering content.
func (s *SettingsState) SetSize(width, height int) {
	s.availableWidth = width
	s.form.WithWidth(s.contentWidth())
}

func (s *SettingsState) contentWidth() int {
	if s.availableWidth > 0 {
		return s.availableWidth - 4
	}
	return ModalWidthWide - 10
}

func (s *SettingsState) Title() string { return "Settings" }

func (s *SettingsState) Help() string {
	return "Tab: next field  Enter: save  Esc: cancel"
}

func (s *SettingsState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *SettingsState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	s.syncFromMultiSelect()
	return s, cmd
}

// syncFromMultiSelect updates boolean fields from the MultiSelect bindings.
func (s *SettingsState) syncFromMultiSelect() {
	s.NotificationsEnabled = slices.Contains(s.generalOptions, optionNotifications)
	s.TrustAttachmentHTML = slices.Contains(s.generalOptions, optionTrustHTML)
}

// GetAPIBaseURL returns the backend URL as entered
func (s *SettingsState) GetAPIBaseURL() string {
	return strings.TrimSpace(s.apiBaseURL)
}

// SetAPIBaseURL sets the backend URL value.
// Works because huh binds via pointer, so mutations to the struct field
// reflect in the form.
func (s *SettingsState) SetAPIBaseURL(v string) {
	s.apiBaseURL = v
}

// APIBaseURLChanged reports whether the backend URL was edited
func (s *SettingsState) APIBaseURLChanged() bool {
	return s.GetAPIBaseURL() != s.OriginalAPIBaseURL
}

// GetSelectedTheme returns the selected theme key.
func (s *SettingsState) GetSelectedTheme() string {
	return s.selectedTheme
}

// ThemeChanged returns true if the selected theme differs from the original.
func (s *SettingsState) ThemeChanged() bool {
	return s.selectedTheme != s.OriginalTheme
}

// Validate checks the form values before they are saved.
func (s *SettingsState) Validate() error {
	return config.ValidateBaseURL(s.GetAPIBaseURL())
}

// NewSettingsState creates a new SettingsState with the current settings values.
func NewSettingsState(themes []string, themeDisplayNames []string, currentTheme string,
	apiBaseURL string, notificationsEnabled, trustAttachmentHTML bool) *SettingsState {

	s := &SettingsState{
		apiBaseURL:           apiBaseURL,
		OriginalAPIBaseURL:   apiBaseURL,
		selectedTheme:        currentTheme,
		OriginalTheme:        currentTheme,
		NotificationsEnabled: notificationsEnabled,
		TrustAttachmentHTML:  trustAttachmentHTML,
		availableWidth:       ModalWidthWide,
	}

	// Build theme options
	themeOptions := make([]huh.Option[string], len(themes))
	for i := range themes {
		themeOptions[i] = huh.NewOption(themeDisplayNames[i], themes[i])
	}

	// Build general options MultiSelect
	generalOpts := []huh.Option[string]{
		huh.NewOption("Desktop notification for slow replies", optionNotifications).
			Selected(notificationsEnabled),
		huh.NewOption("Render attachment HTML without sanitizing", optionTrustHTML).
			Selected(trustAttachmentHTML),
	}
	if notificationsEnabled {
		s.generalOptions = append(s.generalOptions, optionNotifications)
	}
	if trustAttachmentHTML {
		s.generalOptions = append(s.generalOptions, optionTrustHTML)
	}

	group := huh.NewGroup(
		huh.NewInput().
			Title("Backend URL").
			Description("Base URL of the GovSimplify API").
			Placeholder(config.DefaultAPIBaseURL).
			CharLimit(ModalInputCharLimit).
			Validate(func(v string) error { return config.ValidateBaseURL(strings.TrimSpace(v)) }).
			Value(&s.apiBaseURL),
		huh.NewSelect[string]().
			Title("Theme").
			Options(themeOptions...).
			Value(&s.selectedTheme),
		huh.NewMultiSelect[string]().
			Title("Options").
			Options(generalOpts...).
			Height(len(generalOpts)).
			Value(&s.generalOptions),
	)

	s.form = huh.NewForm(group).
		WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(s.contentWidth()).
		WithLayout(huh.LayoutStack)

	initHuhForm(s.form)
	return s
}
