package cmd

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/voltquest/internal/config"
	"github.com/abhisek/voltquest/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "voltquest",
	Short: "Energy-saving game for the terminal",
	Long:  "VoltQuest: trim the electricity bill of four rooms, then prove what you learned in a quiz.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides VOLTQUEST_DB env var)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Log debug output")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(flowCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then VOLTQUEST_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// newLogger returns a text logger on w; --verbose lowers the level to debug.
func newLogger(cmd *cobra.Command, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func loadConfig() (*config.Config, error) {
	return config.Load()
}
