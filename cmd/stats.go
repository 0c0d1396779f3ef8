package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/voltquest/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show quiz statistics and recent moves",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := context.Background()
		out := cmd.OutOrStdout()

		stats, err := s.EventRepo().QuizStats(ctx)
		if err != nil {
			return fmt.Errorf("quiz stats: %w", err)
		}
		if stats.Attempts == 0 {
			fmt.Fprintln(out, "No quiz attempts yet.")
		} else {
			fmt.Fprintf(out, "Quiz attempts:  %d (%d passed)\n", stats.Attempts, stats.Passed)
			fmt.Fprintf(out, "Best score:     %.0f%%\n", stats.BestPercent)
			fmt.Fprintf(out, "Average score:  %.0f%%\n", stats.AveragePercent)
			fmt.Fprintf(out, "Last attempt:   %s\n", stats.LastAttempt.Local().Format("2006-01-02 15:04:05"))
		}

		progress, ok, err := store.LatestProgress(ctx, s.SnapshotRepo())
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}
		if ok {
			names := make([]string, len(progress.Completed))
			for i, id := range progress.Completed {
				names[i] = string(id)
			}
			fmt.Fprintf(out, "Saved state:    %s\n", progress.State)
			fmt.Fprintf(out, "Completed:      %s\n", strings.Join(names, ", "))
		}

		transitions, err := s.EventRepo().RecentTransitions(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query transitions: %w", err)
		}
		if len(transitions) == 0 {
			return nil
		}

		fmt.Fprintln(out)
		fmt.Fprintf(out, "%-6s  %-19s  %-14s  %s\n", "Seq", "Timestamp", "From", "To")
		fmt.Fprintln(out, strings.Repeat("─", 60))
		for _, tr := range transitions {
			from := tr.From
			if from == "" {
				from = "-"
			}
			fmt.Fprintf(out, "%-6d  %-19s  %-14s  %s\n",
				tr.Sequence, tr.Timestamp.Local().Format("2006-01-02 15:04:05"), from, tr.To)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("limit", 20, "Number of recent transitions to show")
}
