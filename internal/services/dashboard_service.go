package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"finboard/internal/core"
	"finboard/internal/insights"
	"finboard/internal/store"
)

// DashboardService loads the records a reference month needs and derives
// every view from them.
type DashboardService struct {
	transactions store.TransactionStore
	budgets      store.BudgetStore
	clock        core.Clock
}

func NewDashboardService(txs store.TransactionStore, budgets store.BudgetStore, clock core.Clock) *DashboardService {
	return &DashboardService{transactions: txs, budgets: budgets, clock: clock}
}

// CurrentMonth is the default reference month.
func (s *DashboardService) CurrentMonth() core.Month { return s.clock.CurrentMonth() }

// Load fetches all transactions and the budgets of ref concurrently.
func (s *DashboardService) Load(ctx context.Context, ref core.Month) ([]core.Transaction, []core.Budget, error) {
	var (
		txs     []core.Transaction
		budgets []core.Budget
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if txs, err = s.transactions.ListTransactions(gctx); err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if budgets, err = s.budgets.ListBudgets(gctx, ref.String()); err != nil {
			return fmt.Errorf("list budgets: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return txs, budgets, nil
}

// Build returns the dashboard for ref.
func (s *DashboardService) Build(ctx context.Context, ref core.Month) (insights.Dashboard, error) {
	txs, budgets, err := s.Load(ctx, ref)
	if err != nil {
		return insights.Dashboard{}, err
	}
	return insights.Build(txs, budgets, ref), nil
}
