package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	gserrors "github.com/botenders/govsimplify/internal/errors"
)

// Defaults applied to fields absent from the config file.
const (
	DefaultAPIBaseURL            = "http://localhost:8080"
	DefaultTheme                 = "govsimplify"
	DefaultSlowResponseSeconds   = 10
	DefaultRequestTimeoutSeconds = 60
)

// Config holds the user's persisted preferences. Transcripts and news are
// never stored here.
type Config struct {
	APIBaseURL            string `json:"api_base_url"`
	Theme                 string `json:"theme,omitempty"`
	NotificationsEnabled  bool   `json:"notifications_enabled,omitempty"`  // Desktop notification when a slow reply lands
	TrustAttachmentHTML   bool   `json:"trust_attachment_html,omitempty"`  // Skip sanitizing attachment HTML
	SlowResponseSeconds   int    `json:"slow_response_seconds,omitempty"`  // When the "taking longer" hint appears
	RequestTimeoutSeconds int    `json:"request_timeout_seconds,omitempty"`
	NewsPanelHidden       bool   `json:"news_panel_hidden,omitempty"`
	LastAgency            string `json:"last_agency,omitempty"`

	mu       sync.RWMutex
	filePath string

	// Command-line overrides. They win over the saved values but are never
	// written back.
	apiBaseURLOverride string
	themeOverride      string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".govsimplify"), nil
}

// DefaultPath returns the path of the config file in the user's home.
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// New returns a config populated with defaults that saves to path.
func New(path string) *Config {
	cfg := &Config{filePath: path}
	cfg.ensureInitialized()
	return cfg
}

// Load reads the config from the default location, or returns defaults if it
// doesn't exist yet.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path, or returns defaults if it doesn't exist.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{filePath: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg.ensureInitialized()
		return cfg, nil
	}
	if err != nil {
		return nil, gserrors.ConfigLoadFailed(path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, gserrors.ConfigLoadFailed(path, err)
	}

	// Defaults must be filled before Validate, which only reads.
	cfg.ensureInitialized()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ensureInitialized fills zero values with defaults. It is not thread-safe and
// must only run before the Config is shared.
func (c *Config) ensureInitialized() {
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultAPIBaseURL
	}
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	if c.SlowResponseSeconds == 0 {
		c.SlowResponseSeconds = DefaultSlowResponseSeconds
	}
	if c.RequestTimeoutSeconds == 0 {
		c.RequestTimeoutSeconds = DefaultRequestTimeoutSeconds
	}
}

// Validate checks that the config values are usable.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := ValidateBaseURL(c.APIBaseURL); err != nil {
		return err
	}
	if c.SlowResponseSeconds < 1 || c.SlowResponseSeconds > 300 {
		return gserrors.ConfigInvalid(fmt.Sprintf("slow_response_seconds must be between 1 and 300, got %d", c.SlowResponseSeconds))
	}
	if c.RequestTimeoutSeconds < 1 || c.RequestTimeoutSeconds > 600 {
		return gserrors.ConfigInvalid(fmt.Sprintf("request_timeout_seconds must be between 1 and 600, got %d", c.RequestTimeoutSeconds))
	}
	return nil
}

// ValidateBaseURL checks that raw is an absolute http or https URL.
func ValidateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return gserrors.ConfigInvalid(fmt.Sprintf("api_base_url must be an absolute http(s) URL, got %q", raw))
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.filePath == "" {
		return gserrors.ConfigSaveFailed("", fmt.Errorf("config has no file path"))
	}
	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return gserrors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return gserrors.ConfigSaveFailed(c.filePath, err)
	}
	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return gserrors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// Path returns the file the config is saved to.
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// GetAPIBaseURL returns the backend base URL
func (c *Config) GetAPIBaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.apiBaseURLOverride != "" {
		return c.apiBaseURLOverride
	}
	return c.APIBaseURL
}

// SetAPIBaseURL sets and persists the backend base URL, replacing any override.
func (c *Config) SetAPIBaseURL(u string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.APIBaseURL = u
	c.apiBaseURLOverride = ""
}

// OverrideAPIBaseURL uses u for this run only.
func (c *Config) OverrideAPIBaseURL(u string) error {
	if err := ValidateBaseURL(u); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiBaseURLOverride = u
	return nil
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.themeOverride != "" {
		return c.themeOverride
	}
	return c.Theme
}

// SetTheme sets and persists the theme name, replacing any override.
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
	c.themeOverride = ""
}

// OverrideTheme uses theme for this run only. Names are checked by the caller,
// which owns the theme registry.
func (c *Config) OverrideTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.themeOverride = theme
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetTrustAttachmentHTML reports whether attachment HTML is rendered unsanitized.
func (c *Config) GetTrustAttachmentHTML() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.TrustAttachmentHTML
}

// SetTrustAttachmentHTML sets whether attachment HTML is rendered unsanitized.
func (c *Config) SetTrustAttachmentHTML(trusted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.TrustAttachmentHTML = trusted
}

// SlowResponseThreshold is how long a reply may take before the slow hint shows.
func (c *Config) SlowResponseThreshold() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.SlowResponseSeconds) * time.Second
}

// RequestTimeout bounds every backend request.
func (c *Config) RequestTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// GetNewsPanelHidden returns whether the news panel starts collapsed
func (c *Config) GetNewsPanelHidden() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NewsPanelHidden
}

// SetNewsPanelHidden records whether the news panel is collapsed
func (c *Config) SetNewsPanelHidden(hidden bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NewsPanelHidden = hidden
}

// GetLastAgency returns the ID of the agency confirmed most recently
func (c *Config) GetLastAgency() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.LastAgency
}

// SetLastAgency records the ID of the agency confirmed most recently
func (c *Config) SetLastAgency(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.LastAgency = id
}
