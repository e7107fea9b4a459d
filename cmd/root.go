package cmd

import (
	"github.com/Shivaram1629/smart-research-assistant/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sra [file]",
	Short: "Document-grounded research assistant",
	Long: "Smart Research Assistant — terminal app that answers questions about an uploaded\n" +
		"document with citations, and quizzes you on it with graded challenge questions.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		return runApp(cmd, path)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SRA_DB env var)")

	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(challengeCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then SRA_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
