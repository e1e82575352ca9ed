package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/app"
	"github.com/abhisek/lexiz/internal/session"
)

// runApp opens the store, builds the drill machine, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	cat, err := e.catalog()
	if err != nil {
		return err
	}

	m, err := session.NewMachine(cmd.Context(), e.sessionConfig(), cat, e.progressStore(),
		session.WithLogger(e.logger),
		session.WithRecorder(e.store.DaySessionRepo()),
	)
	if err != nil {
		return err
	}

	e.logger.Info("starting", "topics", len(cat.Topics()), "words_per_day", cat.WordsPerDay())
	return app.Run(app.Options{Machine: m, History: e.store.DaySessionRepo()})
}
