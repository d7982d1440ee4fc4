package services

import (
	"context"
	"fmt"

	"finboard/internal/amqp"
	"finboard/internal/core"
	"finboard/internal/store"
)

// BudgetService manages budgets of the current month.
type BudgetService struct {
	store     store.BudgetStore
	publisher Publisher
	clock     core.Clock
}

func NewBudgetService(st store.BudgetStore, pub Publisher, clock core.Clock) *BudgetService {
	return &BudgetService{store: st, publisher: pub, clock: clock}
}

// ListCurrent returns the budgets of the month the clock is in right now.
func (s *BudgetService) ListCurrent(ctx context.Context) ([]core.Budget, error) {
	month := s.clock.CurrentMonth().String()
	budgets, err := s.store.ListBudgets(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("list budgets for %s: %w", month, err)
	}
	return budgets, nil
}

// Upsert sets the current month's budget for in.Category and returns the
// stored record.
func (s *BudgetService) Upsert(ctx context.Context, in core.BudgetInput) (core.Budget, error) {
	if err := in.Validate(); err != nil {
		return core.Budget{}, err
	}
	now := core.Timestamp(s.clock.Time())
	b := core.Budget{
		Category:  in.Category,
		Amount:    in.Amount,
		Month:     s.clock.CurrentMonth().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	saved, err := s.store.UpsertBudget(ctx, b)
	if err != nil {
		return core.Budget{}, fmt.Errorf("upsert budget: %w", err)
	}

	publish(ctx, s.publisher, amqp.NewChangeEvent(amqp.EventBudgetUpserted, saved.ID, saved.Category, saved.Month))
	return saved, nil
}
