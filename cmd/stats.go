package cmd

import (
	"fmt"
	"strconv"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/progress"
	"github.com/abhisek/lexiz/internal/session"
	"github.com/abhisek/lexiz/internal/store"
	"github.com/abhisek/lexiz/internal/vocab"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progress per topic and recent drill sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		cat, err := e.catalog()
		if err != nil {
			return err
		}
		done := e.progressStore().Load(cmd.Context())

		sessions, err := e.store.DaySessionRepo().RecentDaySessions(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("read session log: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, progressTable(cat, done))
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No drill sessions recorded yet.")
			return nil
		}
		fmt.Fprintln(out, sessionTable(sessions))
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("limit", 10, "Number of recent session events to show (0 for all)")
}

func progressTable(cat *vocab.Catalog, done progress.CompletedSet) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Topic", "Terms", "Days done")
	for _, info := range cat.Topics() {
		days := cat.DayCount(info.ID)
		n := 0
		for day := 1; day <= days; day++ {
			if done.Has(info.ID, day) {
				n++
			}
		}
		t.Row(info.Name, strconv.Itoa(info.TermCount), fmt.Sprintf("%d/%d", n, days))
	}
	return t.String()
}

func sessionTable(sessions []store.DaySessionData) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("When", "Topic", "Day", "Action", "Score", "Missed")
	for _, s := range sessions {
		score := "-"
		if s.Action != session.ActionStart {
			score = fmt.Sprintf("%d/%d", s.Score, s.Total)
		}
		t.Row(
			s.At.Local().Format(time.DateTime),
			s.TopicID,
			strconv.Itoa(s.Day),
			s.Action,
			score,
			strconv.Itoa(s.Missed),
		)
	}
	return t.String()
}
