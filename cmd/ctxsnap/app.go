package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rpggio/ctxsnap/internal/config"
	"github.com/rpggio/ctxsnap/internal/domain/activity"
	"github.com/rpggio/ctxsnap/internal/domain/snapshot"
	"github.com/rpggio/ctxsnap/internal/sqlite"
	"github.com/spf13/cobra"
)

// app holds the dependencies shared by every command.
type app struct {
	cfg       config.Config
	logger    *slog.Logger
	db        *sqlite.DB
	snapshots *snapshot.Service
	activity  *activity.Service
	logFile   io.Closer
}

// bootstrap loads config, sets up logging to logOut (or the configured log
// file) and opens the migrated database.
func bootstrap(cmd *cobra.Command, logOut io.Writer) (*app, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	a := &app{cfg: cfg}

	if cfg.Log.Path != "" {
		fileWriter, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			a.logFile = fileWriter
			logOut = fileWriter
		}
	}
	a.logger = slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	a.db = db

	if err := db.RunMigrations(); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	a.activity = activity.NewService(sqlite.NewActivityRepository(db), a.logger)
	a.snapshots = snapshot.NewService(sqlite.NewSnapshotRepository(db), a.activity, a.logger)

	return a, nil
}

// Close releases the database and the log file.
func (a *app) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("failed to close database", "error", err)
		}
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}
