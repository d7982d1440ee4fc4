package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"finboard/internal/client"
	"finboard/internal/insights"
)

var reportMonth string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the dashboard for a month",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := client.New(serverURL()).Dashboard(cmd.Context(), reportMonth)
		if err != nil {
			return err
		}
		printReport(cmd.OutOrStdout(), d)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportMonth, "month", "", "Reference month as YYYY-MM (default: current month)")
	rootCmd.AddCommand(reportCmd)
}

const reportWidth = 56

func printReport(w io.Writer, d *insights.Dashboard) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, center("FINANCE REPORT "+d.Month, reportWidth))
	fmt.Fprintln(w, strings.Repeat("=", reportWidth))

	s := d.Summary
	fmt.Fprintf(w, "%-*s%16s\n", reportWidth-16, "Income", s.TotalIncome.StringFixed(2))
	fmt.Fprintf(w, "%-*s%16s\n", reportWidth-16, "Expenses", s.TotalExpenses.StringFixed(2))
	fmt.Fprintf(w, "%-*s%16s\n", reportWidth-16, "Budget", s.TotalBudget.StringFixed(2))
	fmt.Fprintf(w, "%-*s%16s\n", reportWidth-16, "Budget remaining", s.BudgetRemaining.StringFixed(2))
	fmt.Fprintf(w, "%-*s%16s\n", reportWidth-16, "Top category", s.TopCategory)
	fmt.Fprintf(w, "%-*s%15.1f%%\n", reportWidth-16, "Change vs previous month", d.Trend.Percent)

	if len(d.BudgetStatus) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "BUDGETS")
		fmt.Fprintln(w, strings.Repeat("-", reportWidth))
		for _, b := range d.BudgetStatus {
			fmt.Fprintf(w, "%-20s %10s / %-10s %6.1f%% %s\n",
				truncate(b.Category, 20), b.Spent.StringFixed(2), b.Budget.StringFixed(2), b.Percentage, statusMark(b.Status))
		}
	}

	if len(d.TopCategories) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "TOP SPENDING")
		fmt.Fprintln(w, strings.Repeat("-", reportWidth))
		for i, c := range d.TopCategories {
			fmt.Fprintf(w, "%d. %-*s%16s\n", i+1, reportWidth-19, truncate(c.Category, reportWidth-19), c.Amount.StringFixed(2))
		}
	}
	fmt.Fprintln(w)
}

func statusMark(s insights.BudgetStatus) string {
	switch s {
	case insights.StatusOver:
		return "OVER"
	case insights.StatusWarning:
		return "warn"
	}
	return "ok"
}

func center(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return strings.Repeat(" ", (w-len(s))/2) + s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
