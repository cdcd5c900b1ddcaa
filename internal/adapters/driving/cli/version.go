package cli

import (
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("sahaaya version %s\n", version)
		if kb := currentKnowledgeVersion(); kb != "" {
			cmd.Printf("knowledge base %s\n", kb)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func currentKnowledgeVersion() string {
	if knowledgeService == nil || knowledgeService.Current() == nil {
		return ""
	}
	return knowledgeService.Current().Version()
}
