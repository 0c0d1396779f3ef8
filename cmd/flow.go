package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/voltquest/internal/fsm"
)

var flowCmd = &cobra.Command{
	Use:   "flow",
	Short: "Validate the game's state graph",
	Long:  "Print every state with its outgoing transitions and fail if any state cannot be reached from the menu.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		g, _, err := buildGame(cfg, newLogger(cmd, cmd.ErrOrStderr()), nil)
		if err != nil {
			return err
		}
		report, err := g.Validate()
		if err != nil {
			return err
		}
		printFlow(cmd.OutOrStdout(), g.Machine(), report)
		return report.Err()
	},
}

func printFlow(out io.Writer, m *fsm.Machine, report *fsm.ValidationReport) {
	reachable := make(map[fsm.StateID]bool, len(report.Reachable))
	for _, id := range report.Reachable {
		reachable[id] = true
	}

	fmt.Fprintf(out, "%-16s  %-9s  %s\n", "State", "Reachable", "Transitions")
	fmt.Fprintln(out, strings.Repeat("─", 72))
	for _, id := range m.States() {
		ok := "✓"
		if !reachable[id] {
			ok = "✗"
		}
		targets := m.Transitions(id)
		names := make([]string, len(targets))
		for i, t := range targets {
			names[i] = string(t)
		}
		fmt.Fprintf(out, "%-16s  %-9s  %s\n", id, ok, strings.Join(names, ", "))
	}
	fmt.Fprintf(out, "\n%d states, %d reachable from %s\n",
		len(m.States()), len(report.Reachable), report.Initial)
}
