package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/abhisek/voltquest/internal/consumption"
	"github.com/abhisek/voltquest/internal/ui/components"
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Compute the monthly bill for a set of appliances",
	Long: `Read a JSON array of appliances and print the consumption report and
saving suggestions. Each appliance has name, power_watts, hours_per_day,
is_on and essential fields. Use --file - to read from stdin.`,
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().String("file", "", "Appliance JSON file, or - for stdin (required)")
	calcCmd.Flags().String("target", "0", "Target monthly bill in rupiah")
	_ = calcCmd.MarkFlagRequired("file")
}

func runCalc(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")
	targetVal, _ := cmd.Flags().GetString("target")

	target, err := decimal.NewFromString(targetVal)
	if err != nil {
		return fmt.Errorf("invalid target %q: %w", targetVal, err)
	}

	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open appliances: %w", err)
		}
		defer f.Close()
		r = f
	}
	var appliances []consumption.Appliance
	if err := json.NewDecoder(r).Decode(&appliances); err != nil {
		return fmt.Errorf("decode appliances: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	calc, err := consumption.NewCalculator(cfg.Consumption())
	if err != nil {
		return err
	}
	report, err := calc.Report(appliances, target)
	if err != nil {
		return err
	}
	suggestions, err := calc.Suggestions(appliances)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-20s  %-3s  %9s  %10s  %14s  %6s\n",
		"Appliance", "On", "kWh/day", "kWh/month", "Cost/month", "Share")
	fmt.Fprintln(out, strings.Repeat("─", 72))
	for _, u := range report.Breakdown {
		on := "✓"
		if !u.IsOn {
			on = "-"
		}
		fmt.Fprintf(out, "%-20s  %-3s  %9.2f  %10.2f  %14s  %5.1f%%\n",
			truncate(u.Name, 20), on, u.DailyKwh, u.MonthlyKwh, components.Rupiah(u.MonthlyCost), u.Share*100)
	}
	fmt.Fprintln(out, strings.Repeat("─", 72))
	fmt.Fprintf(out, "Total:   %.2f kWh/day, %.2f kWh/month\n", report.TotalDailyKwh, report.TotalMonthlyKwh)
	fmt.Fprintf(out, "Bill:    %s (%s)\n", components.Rupiah(report.TotalMonthlyBill), report.Rating)
	if target.IsPositive() {
		verdict := "over target"
		if report.WithinTarget {
			verdict = "within target"
		}
		fmt.Fprintf(out, "Target:  %s, %s\n", components.Rupiah(target), verdict)
	}

	if len(suggestions) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Suggestions:")
		for _, s := range suggestions {
			fmt.Fprintf(out, "  %s: %g h → %g h/day saves %.2f kWh, %s per month\n",
				s.Appliance, s.CurrentHours, s.SuggestedHours, s.SavedMonthlyKwh, components.Rupiah(s.PotentialSaving))
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
