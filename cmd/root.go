package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/botenders/govsimplify/internal/agency"
	"github.com/botenders/govsimplify/internal/app"
	"github.com/botenders/govsimplify/internal/config"
	"github.com/botenders/govsimplify/internal/logger"
	"github.com/botenders/govsimplify/internal/ui"
)

var (
	debugMode             bool
	quietMode             bool
	apiURL                string
	themeName             string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "govsimplify",
	Short: "Ask federal agencies questions from your terminal",
	Long: `GovSimplify is a terminal chat client for federal agency assistants.
Pick an agency, ask questions in plain language, and read the agency's latest
news alongside the conversation.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging (written to "+logger.DefaultLogPath+")")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Only log warnings and errors (overrides --debug)")
	rootCmd.Flags().StringVar(&apiURL, "api-url", "", "Backend base URL for this run (default from config)")
	rootCmd.Flags().StringVar(&themeName, "theme", "", "Color theme for this run")
}

func initLogging() {
	switch {
	case quietMode:
		logger.SetLevel(logger.LevelWarn)
	case debugMode:
		logger.SetDebug(true)
	default:
		logger.SetLevel(logger.LevelInfo)
	}
}

// Execute runs the root command
func Execute() error {
	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("govsimplify %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("govsimplify %s\n", version)
}

// loadConfig reads the saved config and applies this run's flag overrides.
func loadConfig(load func() (*config.Config, error)) (*config.Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if apiURL != "" {
		if err := cfg.OverrideAPIBaseURL(apiURL); err != nil {
			return nil, fmt.Errorf("invalid --api-url: %w", err)
		}
	}
	if themeName != "" {
		if !ui.IsKnownTheme(themeName) {
			return nil, fmt.Errorf("unknown theme %q (available: %v)", themeName, ui.ThemeNames())
		}
		cfg.OverrideTheme(themeName)
	}
	return cfg, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(config.Load)
	if err != nil {
		return err
	}

	cat, err := agency.Default()
	if err != nil {
		return fmt.Errorf("error loading agencies: %w", err)
	}

	// Ensure logger is closed on exit
	defer logger.Close()
	logger.WithComponent("cli").Info("starting", "version", version, "backend", cfg.GetAPIBaseURL())

	m := app.New(cfg, cat, version)
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
