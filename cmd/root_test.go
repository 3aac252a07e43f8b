package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/botenders/govsimplify/internal/config"
	"github.com/botenders/govsimplify/internal/logger"
)

func TestDebugFlagDefaultFalse(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("debug")
	if flag == nil {
		t.Fatal("--debug flag not found")
	}
	if flag.DefValue != "false" {
		t.Errorf("--debug default = %q, want %q", flag.DefValue, "false")
	}
}

func TestQuietFlagExists(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("quiet")
	if flag == nil {
		t.Fatal("--quiet flag not found")
	}
	if flag.DefValue != "false" {
		t.Errorf("--quiet default = %q, want %q", flag.DefValue, "false")
	}
	if flag.Shorthand != "q" {
		t.Errorf("--quiet shorthand = %q, want %q", flag.Shorthand, "q")
	}
}

func TestRunFlagsExist(t *testing.T) {
	for _, name := range []string{"api-url", "theme"} {
		flag := rootCmd.Flags().Lookup(name)
		if flag == nil {
			t.Errorf("--%s flag not found", name)
			continue
		}
		if flag.DefValue != "" {
			t.Errorf("--%s default = %q, want empty", name, flag.DefValue)
		}
	}
}

func TestInitLogging_Levels(t *testing.T) {
	origDebug, origQuiet := debugMode, quietMode
	defer func() {
		debugMode, quietMode = origDebug, origQuiet
		logger.SetLevel(logger.LevelInfo)
	}()

	tests := []struct {
		name         string
		debug, quiet bool
		want         logger.LogLevel
	}{
		{"default", false, false, logger.LevelInfo},
		{"debug", true, false, logger.LevelDebug},
		{"quiet", false, true, logger.LevelWarn},
		{"quiet overrides debug", true, true, logger.LevelWarn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			debugMode, quietMode = tt.debug, tt.quiet
			initLogging()
			if got := logger.GetLevel(); got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVersionTemplate(t *testing.T) {
	origV, origC, origD := version, commit, date
	defer SetVersionInfo(origV, origC, origD)

	SetVersionInfo("1.2.3", "none", "unknown")
	if got := versionTemplate(); got != "govsimplify 1.2.3\n" {
		t.Errorf("versionTemplate() = %q", got)
	}

	SetVersionInfo("1.2.3", "abc123", "2025-03-14")
	got := versionTemplate()
	if !strings.Contains(got, "commit: abc123") || !strings.Contains(got, "built:  2025-03-14") {
		t.Errorf("versionTemplate() = %q, want commit and date", got)
	}
}

// withRunFlags sets the per-run flags for one test.
func withRunFlags(t *testing.T, url, theme string) {
	t.Helper()
	origURL, origTheme := apiURL, themeName
	apiURL, themeName = url, theme
	t.Cleanup(func() { apiURL, themeName = origURL, origTheme })
}

func tempLoader(t *testing.T) func() (*config.Config, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	return func() (*config.Config, error) { return config.New(path), nil }
}

func TestLoadConfig_AppliesOverrides(t *testing.T) {
	withRunFlags(t, "http://localhost:8080", "nord")

	cfg, err := loadConfig(tempLoader(t))
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if got := cfg.GetAPIBaseURL(); got != "http://localhost:8080" {
		t.Errorf("API URL = %q", got)
	}
	if got := cfg.GetTheme(); got != "nord" {
		t.Errorf("theme = %q", got)
	}
}

func TestLoadConfig_NoFlagsKeepsDefaults(t *testing.T) {
	withRunFlags(t, "", "")

	cfg, err := loadConfig(tempLoader(t))
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if got := cfg.GetAPIBaseURL(); got != config.DefaultAPIBaseURL {
		t.Errorf("API URL = %q, want default", got)
	}
}

func TestLoadConfig_RejectsBadFlags(t *testing.T) {
	tests := []struct {
		name, url, theme, want string
	}{
		{"bad url", "ftp://example.com", "", "--api-url"},
		{"unknown theme", "", "neon-disco", "unknown theme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withRunFlags(t, tt.url, tt.theme)
			_, err := loadConfig(tempLoader(t))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("loadConfig() error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}
