package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lexiz",
	Short: "Vocabulary drills with punishment copy-outs",
	Long: "Lexiz: a terminal vocabulary trainer. Study a day's terms, take a timed quiz,\n" +
		"and copy out every missed term until you pass its retest.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LEXIZ_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("vocab", "", "Vocabulary file or directory (.yaml, .json, .xlsx)")

	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(versionCmd)
}
