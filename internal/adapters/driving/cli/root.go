// Package cli provides the sahaaya command line interface.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
	"github.com/custodia-labs/sahaaya/internal/core/ports/driving"
	"github.com/custodia-labs/sahaaya/internal/logger"
)

// version is set at build time with -ldflags "-X .../cli.version=...".
var version = "dev"

// Services configured by SetServices.
var (
	guidanceService  driving.GuidanceService
	emergencyService driving.EmergencyService
	historyService   driving.HistoryService
	knowledgeService driving.KnowledgeService
	settingsService  driving.SettingsService
	scheduler        driving.Scheduler
	schedulerConfig  domain.SchedulerConfig
	knowledgeWatch   func(ctx context.Context) error
	knowledgeSource  string
)

// Persistent flags shared by every command.
var (
	verboseFlag bool
	jsonFlag    bool
	langFlag    string
	regionFlag  string
)

// Services holds the dependencies injected into the commands.
type Services struct {
	Guidance        driving.GuidanceService
	Emergency       driving.EmergencyService
	History         driving.HistoryService
	Knowledge       driving.KnowledgeService
	Settings        driving.SettingsService
	Scheduler       driving.Scheduler
	SchedulerConfig domain.SchedulerConfig

	// WatchKnowledge blocks, reloading the knowledge base on file change.
	// Nil when the built-in knowledge base is in use.
	WatchKnowledge func(ctx context.Context) error

	// KnowledgeSource describes where the knowledge base was loaded from.
	KnowledgeSource string

	// Region is the configured default region, overridable with --region.
	Region string
}

var rootCmd = &cobra.Command{
	Use:   "sahaaya",
	Short: "Multilingual health guidance",
	Long: `Sahaaya gives rule-based health guidance for symptom descriptions in
English, Hindi, Telugu, Tamil and Bengali.

Guidance is general information, not a medical diagnosis. In an emergency
call 108.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "output as JSON")
	rootCmd.PersistentFlags().StringVarP(&langFlag, "lang", "l", "", "language hint: en, hi, te, ta or bn")
	rootCmd.PersistentFlags().StringVarP(&regionFlag, "region", "r", "", "region for local resources, e.g. rural or urban")
}

// SetServices injects the services used by the commands.
func SetServices(s Services) {
	guidanceService = s.Guidance
	emergencyService = s.Emergency
	historyService = s.History
	knowledgeService = s.Knowledge
	settingsService = s.Settings
	scheduler = s.Scheduler
	schedulerConfig = s.SchedulerConfig
	knowledgeWatch = s.WatchKnowledge
	knowledgeSource = s.KnowledgeSource
	if regionFlag == "" {
		regionFlag = s.Region
	}
}

// Execute runs the root command. Command output goes to stdout.
func Execute(ctx context.Context) error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// commandContext returns the command context, or Background outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
