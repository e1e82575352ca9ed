package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/config"
	"github.com/abhisek/lexiz/internal/logging"
	"github.com/abhisek/lexiz/internal/progress"
	"github.com/abhisek/lexiz/internal/session"
	"github.com/abhisek/lexiz/internal/store"
	"github.com/abhisek/lexiz/internal/vocab"
)

// env holds what the commands share: configuration, the file logger and
// the open store.
type env struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *store.Store
	closeLog func()
}

// setup loads configuration, applies flag overrides, starts logging and
// opens the database.
func setup(cmd *cobra.Command) (*env, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Storage.DBPath = p
	}
	if p, _ := cmd.Flags().GetString("vocab"); p != "" {
		cfg.Vocab.Path = p
	}

	logger, closeLog, err := logging.Setup(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Logging to stderr:", err)
	}
	slog.SetDefault(logger)

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("open store: %w", err)
	}

	logger.Debug("store opened", "path", dbPath)
	return &env{cfg: cfg, logger: logger, store: st, closeLog: closeLog}, nil
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.logger.Warn("close store", "error", err)
	}
	e.closeLog()
}

// resolveDBPath returns the configured path (--db flag, LEXIZ_DB or the
// config file), then the default XDG path, creating the parent directory.
func resolveDBPath(cfg *config.Config) (string, error) {
	p := cfg.Storage.DBPath
	if p == "" {
		var err error
		if p, err = store.DefaultDBPath(); err != nil {
			return "", err
		}
	}
	return p, store.EnsureDir(p)
}

// catalog loads the configured vocabulary and partitions it into days.
func (e *env) catalog() (*vocab.Catalog, error) {
	topics, err := vocab.Load(e.cfg.Vocab.Path)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}
	return vocab.NewCatalog(topics, e.cfg.Drill.WordsPerDay)
}

func (e *env) progressStore() *progress.BlobStore {
	return progress.NewBlobStore(e.store.BlobRepo(), e.logger)
}

func (e *env) sessionConfig() session.Config {
	return session.Config{
		ThinkingTime: e.cfg.Drill.ThinkingTime,
		TickInterval: time.Second,
		SettleDelay:  e.cfg.Drill.SettleDelay,
	}
}
