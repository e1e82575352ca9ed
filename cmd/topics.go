package cmd

import (
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/config"
	"github.com/abhisek/lexiz/internal/vocab"
)

var topicsCmd = &cobra.Command{
	Use:   "topics [path]",
	Short: "List vocabulary topics or validate a vocabulary file",
	Long: "Lists the topics of the configured vocabulary with their term and day counts.\n" +
		"With --check, validates the given file or directory and reports the first problem.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}

		path := cfg.Vocab.Path
		if p, _ := cmd.Flags().GetString("vocab"); p != "" {
			path = p
		}
		if len(args) == 1 {
			path = args[0]
		}

		topics, err := vocab.Load(path)
		if err != nil {
			return err
		}
		cat, err := vocab.NewCatalog(topics, cfg.Drill.WordsPerDay)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if check, _ := cmd.Flags().GetBool("check"); check {
			fmt.Fprintf(out, "OK: %d topics\n", len(topics))
			return nil
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("ID", "Name", "Terms", "Days")
		for _, info := range cat.Topics() {
			t.Row(info.ID, info.Name, strconv.Itoa(info.TermCount), strconv.Itoa(cat.DayCount(info.ID)))
		}
		fmt.Fprintln(out, t.String())
		return nil
	},
}

func init() {
	topicsCmd.Flags().Bool("check", false, "Only validate the vocabulary and report the result")
}
