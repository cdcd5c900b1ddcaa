package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent consultations",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of consultations")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history not configured")
	}

	entries, err := historyService.Recent(commandContext(cmd), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if jsonFlag {
		return outputJSON(cmd, entries)
	}
	if len(entries) == 0 {
		cmd.Println("No consultations recorded.")
		return nil
	}
	for i := range entries {
		e := &entries[i]
		symptoms := "none"
		if len(e.Symptoms) > 0 {
			symptoms = strings.Join(e.Symptoms, ", ")
		}
		flag := ""
		if e.IsEmergency {
			flag = " EMERGENCY"
		}
		cmd.Printf("%s  [%s] %s%s\n", e.CreatedAt.Format("2006-01-02 15:04"), e.Language, e.Severity, flag)
		cmd.Printf("    %q -> %s\n", e.Query, symptoms)
	}
	return nil
}
