package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sahaaya/internal/adapters/driving/tui"
	"github.com/custodia-labs/sahaaya/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Sahaaya.

Describe symptoms in any supported language and read guidance, browse
nearby healthcare resources, or look up emergency hotlines.

Controls:
  ↑/k, ↓/j - Navigate / scroll
  Enter    - Evaluate / Select
  n        - Ask a new question
  e        - Toggle emergency care only (resources)
  Esc      - Back
  ctrl+c   - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// tuiPorts builds the TUI ports from the configured services.
func tuiPorts() *tui.Ports {
	ports := tui.NewPorts(guidanceService, emergencyService)
	ports.Region = regionFlag
	ports.LanguageHint = langFlag
	return ports
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := tui.NewApp(tuiPorts())
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	ctx := commandContext(cmd)

	// Warnings would draw over the alternate screen
	logger.SetQuiet(true)
	defer logger.SetQuiet(false)

	// The TUI is long-running, so it keeps the knowledge base and retention jobs current
	stop := startBackground(ctx)
	defer stop()

	app.WithContext(ctx)
	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
