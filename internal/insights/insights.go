// Package insights derives the dashboard views from transactions and budgets.
//
// Every function is pure: it takes the already-fetched records plus an
// explicit reference month and recomputes its result from scratch.
package insights

import (
	"sort"

	"finboard/internal/core"
)

const (
	// SeriesMonths is the length of the monthly expense window.
	SeriesMonths = 6
	// TopCategoryLimit caps the top spending categories list.
	TopCategoryLimit = 5
	// NoCategory labels the top category when there are no expenses.
	NoCategory = "None"

	warningThreshold = 80
	overThreshold    = 100
)

type BudgetStatus string

const (
	StatusGood    BudgetStatus = "good"
	StatusWarning BudgetStatus = "warning"
	StatusOver    BudgetStatus = "over"
)

type (
	MonthTotal struct {
		Month  string     `json:"month"`
		Label  string     `json:"label"`
		Amount core.Money `json:"amount"`
	}

	CategoryTotal struct {
		Category string     `json:"category"`
		Amount   core.Money `json:"amount"`
	}

	BudgetComparison struct {
		Category  string     `json:"category"`
		Budget    core.Money `json:"budget"`
		Actual    core.Money `json:"actual"`
		Remaining core.Money `json:"remaining"`
	}

	Trend struct {
		CurrentMonth  core.Money `json:"currentMonth"`
		PreviousMonth core.Money `json:"previousMonth"`
		Percent       float64    `json:"percent"`
	}

	BudgetInsight struct {
		Category   string       `json:"category"`
		Budget     core.Money   `json:"budget"`
		Spent      core.Money   `json:"spent"`
		Percentage float64      `json:"percentage"`
		Status     BudgetStatus `json:"status"`
	}

	Summary struct {
		TotalIncome     core.Money `json:"totalIncome"`
		TotalExpenses   core.Money `json:"totalExpenses"`
		TotalBudget     core.Money `json:"totalBudget"`
		BudgetRemaining core.Money `json:"budgetRemaining"`
		TopCategory     string     `json:"topCategory"`
	}
)

// totals accumulates amounts per key and remembers first-seen order.
type totals struct {
	keys []string
	sums map[string]core.Money
}

func newTotals() *totals {
	return &totals{sums: make(map[string]core.Money)}
}

func (t *totals) add(key string, amount core.Money) {
	sum, ok := t.sums[key]
	if !ok {
		t.keys = append(t.keys, key)
	}
	t.sums[key] = sum.Add(amount)
}

func (t *totals) get(key string) core.Money { return t.sums[key] }

// sorted returns the totals by descending amount; ties keep first-seen order.
func (t *totals) sorted() []CategoryTotal {
	out := make([]CategoryTotal, 0, len(t.keys))
	for _, k := range t.keys {
		out = append(out, CategoryTotal{Category: k, Amount: t.sums[k]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.GreaterThan(out[j].Amount.Decimal)
	})
	return out
}

func expensesByCategory(txs []core.Transaction, month string) *totals {
	acc := newTotals()
	for _, tx := range txs {
		if !tx.IsExpense() {
			continue
		}
		if month != "" && tx.MonthKey() != month {
			continue
		}
		acc.add(tx.Category, tx.Amount)
	}
	return acc
}

func sumMonth(txs []core.Transaction, month string, typ core.TransactionType) core.Money {
	var sum core.Money
	for _, tx := range txs {
		if tx.Type == typ && tx.MonthKey() == month {
			sum = sum.Add(tx.Amount)
		}
	}
	return sum
}

// MonthlyExpenses returns the expense total for each of the SeriesMonths
// months ending at ref, oldest first. Empty months are zero.
func MonthlyExpenses(txs []core.Transaction, ref core.Month) []MonthTotal {
	window := ref.Window(SeriesMonths)
	index := make(map[string]int, len(window))
	series := make([]MonthTotal, len(window))
	for i, m := range window {
		index[m.String()] = i
		series[i] = MonthTotal{Month: m.String(), Label: m.Label()}
	}
	for _, tx := range txs {
		if !tx.IsExpense() {
			continue
		}
		if i, ok := index[tx.MonthKey()]; ok {
			series[i].Amount = series[i].Amount.Add(tx.Amount)
		}
	}
	for i := range series {
		series[i].Amount = series[i].Amount.Round2()
	}
	return series
}

// CategoryBreakdown sums all expenses per category across every month,
// rounds each sum to cents and sorts descending.
func CategoryBreakdown(txs []core.Transaction) []CategoryTotal {
	out := expensesByCategory(txs, "").sorted()
	for i := range out {
		out[i].Amount = out[i].Amount.Round2()
	}
	return out
}

// CompareBudgets reports, per budget of ref, the month's actual spending and
// the remaining headroom. Remaining never goes below zero.
func CompareBudgets(txs []core.Transaction, budgets []core.Budget, ref core.Month) []BudgetComparison {
	month := ref.String()
	spent := expensesByCategory(txs, month)
	out := make([]BudgetComparison, 0, len(budgets))
	for _, b := range budgets {
		if b.Month != month {
			continue
		}
		actual := spent.get(b.Category)
		out = append(out, BudgetComparison{
			Category:  b.Category,
			Budget:    b.Amount,
			Actual:    actual,
			Remaining: b.Amount.Sub(actual).Max(core.Money{}),
		})
	}
	return out
}

// SpendingTrend compares ref's expenses against the previous month. The
// percentage is 0 when the previous month had no expenses.
func SpendingTrend(txs []core.Transaction, ref core.Month) Trend {
	cur := sumMonth(txs, ref.String(), core.TypeExpense)
	prev := sumMonth(txs, ref.Prev().String(), core.TypeExpense)
	return Trend{
		CurrentMonth:  cur,
		PreviousMonth: prev,
		Percent:       cur.Sub(prev).Percent(prev),
	}
}

// Classify maps a spent percentage onto a budget status.
func Classify(pct float64) BudgetStatus {
	switch {
	case pct > overThreshold:
		return StatusOver
	case pct > warningThreshold:
		return StatusWarning
	default:
		return StatusGood
	}
}

// BudgetInsights classifies every budget of ref, most at risk first.
func BudgetInsights(txs []core.Transaction, budgets []core.Budget, ref core.Month) []BudgetInsight {
	month := ref.String()
	spent := expensesByCategory(txs, month)
	out := make([]BudgetInsight, 0, len(budgets))
	for _, b := range budgets {
		if b.Month != month {
			continue
		}
		s := spent.get(b.Category)
		pct := s.Percent(b.Amount)
		out = append(out, BudgetInsight{
			Category:   b.Category,
			Budget:     b.Amount,
			Spent:      s,
			Percentage: pct,
			Status:     Classify(pct),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Percentage > out[j].Percentage
	})
	return out
}

// TopCategories returns up to limit categories with the highest spending in ref.
func TopCategories(txs []core.Transaction, ref core.Month, limit int) []CategoryTotal {
	out := expensesByCategory(txs, ref.String()).sorted()
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Summarize computes the headline figures for ref. BudgetRemaining is not
// floored and goes negative once total spending exceeds total budget.
func Summarize(txs []core.Transaction, budgets []core.Budget, ref core.Month) Summary {
	month := ref.String()
	s := Summary{
		TotalIncome:   sumMonth(txs, month, core.TypeIncome),
		TotalExpenses: sumMonth(txs, month, core.TypeExpense),
		TopCategory:   NoCategory,
	}
	for _, b := range budgets {
		if b.Month == month {
			s.TotalBudget = s.TotalBudget.Add(b.Amount)
		}
	}
	s.BudgetRemaining = s.TotalBudget.Sub(s.TotalExpenses)

	spent := expensesByCategory(txs, month)
	var best core.Money
	for i, k := range spent.keys {
		if v := spent.sums[k]; i == 0 || v.GreaterThan(best.Decimal) {
			best = v
			s.TopCategory = k
		}
	}
	return s
}
