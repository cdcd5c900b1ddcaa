package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

// settingsInput is where interactive settings prompts read from.
var settingsInput io.Reader = os.Stdin

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure guidance mode, default language, the advice
enhancer and other options.

Use subcommands to configure specific settings or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

var settingsModeCmd = &cobra.Command{
	Use:   "mode [mode]",
	Short: "Set guidance mode",
	Long: `Set the guidance mode to control whether an advice enhancer is used.

Available modes:
  offline - Rule-based guidance only (no setup required)
  online  - Rule-based guidance rewritten by the advice enhancer
  auto    - Use the enhancer only when it is reachable at startup`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsMode,
}

var settingsLanguageCmd = &cobra.Command{
	Use:   "language [code]",
	Short: "Set default language",
	Long:  `Set the language used when no hint is given and detection finds only English.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSettingsLanguage,
}

var settingsEnhancerCmd = &cobra.Command{
	Use:   "enhancer",
	Short: "Configure advice enhancer",
	Long:  `Configure the AI provider that rewrites rule-based advice in online mode.`,
	RunE:  runSettingsEnhancer,
}

var settingsDisableEnhancerCmd = &cobra.Command{
	Use:   "disable-enhancer",
	Short: "Remove the advice enhancer configuration",
	RunE:  runSettingsDisableEnhancer,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsModeCmd)
	settingsCmd.AddCommand(settingsLanguageCmd)
	settingsCmd.AddCommand(settingsEnhancerCmd)
	settingsCmd.AddCommand(settingsDisableEnhancerCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[General]")
	cmd.Printf("  Mode: %s\n", settings.General.Mode.Description())
	cmd.Printf("  Default language: %s\n", settings.General.DefaultLanguage.Description())
	region := settings.General.Region
	if region == "" {
		region = "(any)"
	}
	cmd.Printf("  Region: %s\n", region)
	cmd.Printf("  Resource limit: %d\n", settings.ResourceLimit)
	cmd.Println()

	cmd.Println("[Knowledge]")
	if settings.Knowledge.Path != "" {
		cmd.Printf("  Path: %s\n", settings.Knowledge.Path)
		cmd.Printf("  Watch: %t\n", settings.Knowledge.Watch)
	} else {
		cmd.Println("  Path: (built-in)")
	}
	cmd.Println()

	cmd.Println("[Enhancer]")
	if settings.Enhancer.Provider == "" {
		cmd.Println("  Provider: (none)")
	} else {
		cmd.Printf("  Provider: %s\n", settings.Enhancer.Provider.Description())
		cmd.Printf("  Model: %s\n", settings.Enhancer.Model)
		if settings.Enhancer.Provider.IsLocal() {
			cmd.Printf("  Base URL: %s\n", settings.Enhancer.BaseURL)
		}
		if settings.Enhancer.Provider.RequiresAPIKey() {
			if settings.Enhancer.APIKey != "" {
				cmd.Printf("  API Key: %s\n", maskAPIKey(settings.Enhancer.APIKey))
			} else {
				cmd.Printf("  API Key: (not set)\n")
			}
		}
		if settings.Enhancer.RatePerSecond > 0 {
			cmd.Printf("  Rate: %.2f/s\n", settings.Enhancer.RatePerSecond)
		}
	}
	status := "configured"
	if !settings.Enhancer.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Cache]")
	cmd.Printf("  Backend: %s\n", settings.Cache.Backend)
	cmd.Printf("  TTL: %s\n", settings.Cache.TTL)
	if settings.Cache.Backend == domain.CacheRedis {
		cmd.Printf("  Redis: %s\n", settings.Cache.RedisAddr)
	}
	cmd.Println()

	cmd.Println("[Consultation log]")
	cmd.Println("  SQLite: yes")
	cmd.Printf("  Postgres: %s\n", enabledText(settings.Sinks.PostgresDSN != ""))
	if settings.Sinks.NATSURL != "" {
		cmd.Printf("  NATS: %s (%s)\n", settings.Sinks.NATSURL, settings.Sinks.NATSSubject)
	} else {
		cmd.Println("  NATS: no")
	}
	cmd.Println()

	cmd.Println("[Scheduler]")
	cmd.Printf("  Enabled: %s\n", enabledText(settings.Scheduler.Enabled))
	cmd.Printf("  Retention: %d days\n", settings.Scheduler.RetentionDays)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'sahaaya settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Println("Sahaaya Settings Wizard")
	cmd.Println("=======================")
	cmd.Println()

	reader := bufio.NewReader(settingsInput)

	cmd.Println("Step 1: Select Default Language")
	cmd.Println("-------------------------------")
	langs := domain.AllLanguages()
	for i, l := range langs {
		cmd.Printf("  %d. %s\n", i+1, l.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	langIdx := parseChoice(readLine(reader), len(langs), 1)
	if err := settingsService.SetDefaultLanguage(langs[langIdx-1]); err != nil {
		return fmt.Errorf("failed to set language: %w", err)
	}
	cmd.Printf("Set default language to: %s\n\n", langs[langIdx-1].Description())

	cmd.Println("Step 2: Select Guidance Mode")
	cmd.Println("----------------------------")
	modes := domain.AllGuidanceModes()
	for i, mode := range modes {
		cmd.Printf("  %d. %s\n", i+1, mode.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	modeIdx := parseChoice(readLine(reader), len(modes), 1)
	selectedMode := modes[modeIdx-1]
	if err := settingsService.SetMode(selectedMode); err != nil {
		return fmt.Errorf("failed to set guidance mode: %w", err)
	}
	cmd.Printf("Set guidance mode to: %s\n\n", selectedMode.Description())

	if selectedMode != domain.GuidanceModeOffline {
		cmd.Println("Step 3: Configure Advice Enhancer")
		cmd.Println("---------------------------------")
		cmd.Println("Your guidance mode uses an advice enhancer. Please configure a provider.")
		cmd.Println()

		if err := configureEnhancer(cmd, reader); err != nil {
			return err
		}
	} else {
		cmd.Println("Step 3: Advice Enhancer (skipped)")
		cmd.Println("---------------------------------")
		cmd.Println("Not required for offline guidance.")
		cmd.Println()
	}

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("All settings are valid and saved.")
	}

	return nil
}

func runSettingsMode(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var selectedMode domain.GuidanceMode
	if len(args) == 1 {
		selectedMode = domain.GuidanceMode(strings.ToLower(args[0]))
		if !selectedMode.IsValid() {
			return fmt.Errorf("unknown mode %q: use offline, online or auto", args[0])
		}
	} else {
		reader := bufio.NewReader(settingsInput)
		cmd.Println("Select Guidance Mode")
		cmd.Println("--------------------")
		modes := domain.AllGuidanceModes()
		for i, mode := range modes {
			cmd.Printf("  %d. %s\n", i+1, mode.Description())
		}
		cmd.Print("\nEnter choice: ")
		idx := parseChoice(readLine(reader), len(modes), 0)
		if idx == 0 {
			return errors.New("invalid selection")
		}
		selectedMode = modes[idx-1]
	}

	if err := settingsService.SetMode(selectedMode); err != nil {
		return fmt.Errorf("failed to set guidance mode: %w", err)
	}
	cmd.Printf("Guidance mode set to: %s\n", selectedMode.Description())

	if selectedMode == domain.GuidanceModeOnline {
		settings, _ := settingsService.Get() //nolint:errcheck // Best-effort check
		if settings != nil && !settings.Enhancer.IsConfigured() {
			cmd.Println("\nNote: This mode requires an advice enhancer.")
			cmd.Println("Run 'sahaaya settings enhancer' to configure.")
		}
	}

	return nil
}

func runSettingsLanguage(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var lang domain.Language
	if len(args) == 1 {
		parsed, err := domain.ParseLanguage(args[0])
		if err != nil {
			return fmt.Errorf("%q: %w", args[0], err)
		}
		lang = parsed
	} else {
		reader := bufio.NewReader(settingsInput)
		langs := domain.AllLanguages()
		for i, l := range langs {
			cmd.Printf("  %d. %s\n", i+1, l.Description())
		}
		cmd.Print("\nEnter choice: ")
		idx := parseChoice(readLine(reader), len(langs), 0)
		if idx == 0 {
			return errors.New("invalid selection")
		}
		lang = langs[idx-1]
	}

	if err := settingsService.SetDefaultLanguage(lang); err != nil {
		return fmt.Errorf("failed to set language: %w", err)
	}
	cmd.Printf("Default language set to: %s\n", lang.Description())
	return nil
}

func runSettingsEnhancer(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	return configureEnhancer(cmd, bufio.NewReader(settingsInput))
}

func runSettingsDisableEnhancer(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.DisableEnhancer(); err != nil {
		return fmt.Errorf("failed to disable enhancer: %w", err)
	}
	cmd.Println("Advice enhancer disabled. Guidance is rule-based only.")
	return nil
}

func configureEnhancer(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Select Enhancer Provider")
	providers := domain.AllEnhancerProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	selectedProvider := providers[idx-1]

	defaultModel := domain.DefaultEnhancerModels()[selectedProvider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var apiKey string
	if selectedProvider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readPassword(reader)
		cmd.Println()
		if apiKey == "" {
			return errors.New("API key is required for this provider")
		}
	}

	if err := settingsService.SetEnhancer(selectedProvider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure enhancer: %w", err)
	}

	// Validate the configuration by pinging the service
	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateEnhancerConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("enhancer configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("Enhancer configured: %s (%s)\n\n", selectedProvider.Description(), model)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo from a terminal, else a line from reader.
func readPassword(reader *bufio.Reader) string {
	if f, ok := settingsInput.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return string(password)
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func enabledText(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
