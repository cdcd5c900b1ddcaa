package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sahaaya/internal/adapters/driven/knowledge"
	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

var kbCmd = &cobra.Command{
	Use:   "kb",
	Short: "Knowledge base commands",
	Long: `Inspect, validate and watch the knowledge base.

The built-in knowledge base is used unless knowledge.path is set in the
config file. Run 'sahaaya kb dump' for a starting point.`,
}

var kbValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a knowledge base file",
	Long: `Validates a YAML knowledge base against the document schema and the
semantic rules: known severity and urgency levels, unique condition IDs,
an emergency condition, keywords for every condition and the required
English messages. Without a path, validates the configured knowledge base.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runKBValidate,
}

var kbShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active knowledge base",
	Args:  cobra.NoArgs,
	RunE:  runKBShow,
}

var kbWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload the knowledge base when its file changes",
	Long: `Watches the configured knowledge base file and reloads it on change.
Invalid edits are rejected and the previous knowledge base stays active.
Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runKBWatch,
}

var kbDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the built-in knowledge base document",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Print(string(knowledge.DefaultDocument()))
	},
}

func init() {
	kbCmd.AddCommand(kbValidateCmd)
	kbCmd.AddCommand(kbShowCmd)
	kbCmd.AddCommand(kbWatchCmd)
	kbCmd.AddCommand(kbDumpCmd)
	rootCmd.AddCommand(kbCmd)
}

// kbSummary is the JSON shape of kb validate and kb show.
type kbSummary struct {
	Source     string          `json:"source,omitempty"`
	Version    string          `json:"version"`
	Conditions []conditionLine `json:"conditions"`
}

type conditionLine struct {
	ID        string `json:"id"`
	Category  string `json:"category"`
	Severity  string `json:"severity"`
	Urgency   string `json:"urgency"`
	Emergency bool   `json:"emergency,omitempty"`
	Keywords  int    `json:"keywords"`
}

func runKBValidate(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	var (
		kb     *domain.KnowledgeBase
		source string
		err    error
	)
	switch {
	case len(args) == 1:
		src := knowledge.NewSource(args[0])
		source = src.Describe()
		kb, err = src.Load(ctx)
	case knowledgeService != nil:
		source = knowledgeSource
		kb, err = knowledgeService.Validate(ctx)
	default:
		src := knowledge.NewSource("")
		source = src.Describe()
		kb, err = src.Load(ctx)
	}
	if err != nil {
		return fmt.Errorf("knowledge base is invalid: %w", err)
	}

	summary := summarise(source, kb)
	if jsonFlag {
		return outputJSON(cmd, summary)
	}
	cmd.Printf("%s: valid (version %s, %d conditions)\n", source, summary.Version, len(summary.Conditions))
	return nil
}

func runKBShow(cmd *cobra.Command, _ []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}
	kb := knowledgeService.Current()
	if kb == nil {
		return errors.New("no knowledge base loaded")
	}

	summary := summarise(knowledgeSource, kb)
	if jsonFlag {
		return outputJSON(cmd, summary)
	}

	if summary.Source != "" {
		cmd.Printf("Source:  %s\n", summary.Source)
	}
	cmd.Printf("Version: %s\n", summary.Version)
	cmd.Println()
	cmd.Printf("  %-12s %-12s %-10s %-10s %s\n", "ID", "CATEGORY", "SEVERITY", "URGENCY", "KEYWORDS")
	for _, c := range summary.Conditions {
		id := c.ID
		if c.Emergency {
			id += "*"
		}
		cmd.Printf("  %-12s %-12s %-10s %-10s %d\n", id, c.Category, c.Severity, c.Urgency, c.Keywords)
	}
	if types := kb.EmergencyTypes(); len(types) > 0 {
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = t.Type
		}
		cmd.Println()
		cmd.Printf("Emergency types: %s\n", strings.Join(names, ", "))
	}
	return nil
}

func runKBWatch(cmd *cobra.Command, _ []string) error {
	if knowledgeWatch == nil {
		return errors.New("the built-in knowledge base cannot be watched; set knowledge.path first")
	}
	cmd.Printf("Watching %s for changes (Ctrl+C to stop)\n", knowledgeSource)
	return knowledgeWatch(commandContext(cmd))
}

func summarise(source string, kb *domain.KnowledgeBase) kbSummary {
	conditions := kb.Conditions()
	lines := make([]conditionLine, len(conditions))
	for i := range conditions {
		c := &conditions[i]
		lines[i] = conditionLine{
			ID:        c.ID,
			Category:  c.Category,
			Severity:  c.Severity.String(),
			Urgency:   c.Urgency.String(),
			Emergency: c.Emergency,
			Keywords:  c.KeywordCount(),
		}
	}
	return kbSummary{Source: source, Version: kb.Version(), Conditions: lines}
}
