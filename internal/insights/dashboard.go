package insights

import "finboard/internal/core"

// RecentLimit is how many transactions the dashboard lists.
const RecentLimit = 10

// Dashboard bundles every derived view for one reference month.
type Dashboard struct {
	Month             string             `json:"month"`
	Summary           Summary            `json:"summary"`
	MonthlyExpenses   []MonthTotal       `json:"monthlyExpenses"`
	CategoryBreakdown []CategoryTotal    `json:"categoryBreakdown"`
	BudgetComparison  []BudgetComparison `json:"budgetComparison"`
	Trend             Trend              `json:"trend"`
	BudgetStatus      []BudgetInsight    `json:"budgetStatus"`
	TopCategories     []CategoryTotal    `json:"topCategories"`
	Recent            []core.Transaction `json:"recentTransactions"`
}

// Build derives the full dashboard. txs must already be in list order
// (newest first) for Recent to hold the latest entries.
func Build(txs []core.Transaction, budgets []core.Budget, ref core.Month) Dashboard {
	recent := txs
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}
	return Dashboard{
		Month:             ref.String(),
		Summary:           Summarize(txs, budgets, ref),
		MonthlyExpenses:   MonthlyExpenses(txs, ref),
		CategoryBreakdown: CategoryBreakdown(txs),
		BudgetComparison:  CompareBudgets(txs, budgets, ref),
		Trend:             SpendingTrend(txs, ref),
		BudgetStatus:      BudgetInsights(txs, budgets, ref),
		TopCategories:     TopCategories(txs, ref, TopCategoryLimit),
		Recent:            append([]core.Transaction{}, recent...),
	}
}
