package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/voltquest/internal/app"
	"github.com/abhisek/voltquest/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	// The TUI owns the terminal, so logs go next to the database.
	logPath := filepath.Join(filepath.Dir(dbPath), "voltquest.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	logger := newLogger(cmd, logFile)

	recorder := store.NewRecorder(st.EventRepo(), st.SnapshotRepo(), logger)
	g, bank, err := buildGame(cfg, logger, recorder.QuizScored)
	if err != nil {
		return err
	}
	recorder.Attach(g)
	defer recorder.Detach()

	progress, ok, err := store.LatestProgress(ctx, st.SnapshotRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: could not load saved progress:", err)
	}
	if ok {
		if err := g.Resume(progress); err != nil {
			fmt.Fprintln(os.Stderr, "warning: ignoring saved progress:", err)
		}
	}
	if err := g.Start(); err != nil {
		return fmt.Errorf("start game: %w", err)
	}

	return app.Run(app.Options{
		Game:         g,
		Bank:         bank.Questions,
		EventRepo:    st.EventRepo(),
		QuestionTime: cfg.QuestionTime,
		Logger:       logger,
	})
}
