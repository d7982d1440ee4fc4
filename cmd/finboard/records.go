package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"finboard/internal/client"
	"finboard/internal/core"
)

var (
	txAmount      string
	txDescription string
	txCategory    string
	txType        string
	txDate        string
)

var txCmd = &cobra.Command{
	Use:   "tx",
	Short: "Manage transactions on a running server",
}

var txAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a transaction",
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := core.ParseMoney(txAmount)
		if err != nil {
			return fmt.Errorf("amount: %w", err)
		}
		t, err := client.New(serverURL()).CreateTransaction(cmd.Context(), core.TransactionInput{
			Amount:      amount,
			Description: txDescription,
			Category:    txCategory,
			Type:        core.TransactionType(txType),
			Date:        txDate,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", t.ID)
		return nil
	},
}

var txListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		txs, err := client.New(serverURL()).ListTransactions(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, t := range txs {
			fmt.Fprintf(out, "%-10s %-7s %12s  %-18s %s\n", t.Date, t.Type, t.Amount.StringFixed(2), truncate(t.Category, 18), t.Description)
		}
		return nil
	},
}

var txDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return client.New(serverURL()).DeleteTransaction(cmd.Context(), args[0])
	},
}

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Manage current-month budgets on a running server",
}

var budgetSetCmd = &cobra.Command{
	Use:   "set CATEGORY AMOUNT",
	Short: "Set this month's budget for a category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := core.ParseMoney(args[1])
		if err != nil {
			return fmt.Errorf("amount: %w", err)
		}
		b, err := client.New(serverURL()).UpsertBudget(cmd.Context(), core.BudgetInput{Category: args[0], Amount: amount})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", b.Month, b.Category, b.Amount.StringFixed(2))
		return nil
	},
}

var budgetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List this month's budgets",
	RunE: func(cmd *cobra.Command, args []string) error {
		budgets, err := client.New(serverURL()).ListBudgets(cmd.Context())
		if err != nil {
			return err
		}
		for _, b := range budgets {
			fmt.Fprintf(cmd.OutOrStdout(), "%-20s %12s\n", truncate(b.Category, 20), b.Amount.StringFixed(2))
		}
		return nil
	},
}

func init() {
	txAddCmd.Flags().StringVar(&txAmount, "amount", "", "Amount, e.g. 12.50")
	txAddCmd.Flags().StringVar(&txDescription, "description", "", "Description")
	txAddCmd.Flags().StringVar(&txCategory, "category", "", "Category")
	txAddCmd.Flags().StringVar(&txType, "type", string(core.TypeExpense), "income or expense")
	txAddCmd.Flags().StringVar(&txDate, "date", time.Now().Format("2006-01-02"), "Date as YYYY-MM-DD")
	_ = txAddCmd.MarkFlagRequired("amount")

	txCmd.AddCommand(txAddCmd, txListCmd, txDeleteCmd)
	budgetCmd.AddCommand(budgetSetCmd, budgetListCmd)
	rootCmd.AddCommand(txCmd, budgetCmd)
}
