// Package worker reacts to change events published by the API.
package worker

import (
	"context"
	"fmt"

	"finboard/internal/amqp"
	"finboard/internal/core"
	"finboard/internal/insights"
	applog "finboard/internal/log"
	"finboard/internal/services"
)

// Consumer delivers change events to a handler until ctx is done.
// *amqp.Client satisfies it.
type Consumer interface {
	Consume(ctx context.Context, handler func(context.Context, *amqp.ChangeEvent) error) error
}

// BudgetAlertWorker recomputes budget status whenever spending or a budget
// changes and logs categories that are close to or over their limit.
type BudgetAlertWorker struct {
	dashboard *services.DashboardService
	logger    *applog.Logger
}

func NewBudgetAlertWorker(dashboard *services.DashboardService, logger *applog.Logger) *BudgetAlertWorker {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &BudgetAlertWorker{
		dashboard: dashboard,
		logger:    logger.WithComponent(applog.ComponentWorker),
	}
}

// Run consumes events until ctx is cancelled.
func (w *BudgetAlertWorker) Run(ctx context.Context, consumer Consumer) error {
	w.logger.Info("Budget alert worker started", applog.FieldOperation, applog.OpStartup)
	err := consumer.Consume(ctx, func(ctx context.Context, e *amqp.ChangeEvent) error {
		_, err := w.HandleChangeEvent(ctx, e)
		return err
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// HandleChangeEvent returns the warning and over-budget insights for the
// event's month, restricted to the event's category when it has one.
// Deletions carry no month and are evaluated against the current month.
func (w *BudgetAlertWorker) HandleChangeEvent(ctx context.Context, e *amqp.ChangeEvent) ([]insights.BudgetInsight, error) {
	ref := w.dashboard.CurrentMonth()
	if e.Month != "" {
		m, err := core.ParseMonth(e.Month)
		if err != nil {
			w.logger.WarnContext(ctx, "Ignoring change event with bad month",
				applog.FieldEventType, e.Type, applog.FieldMonth, e.Month)
			return nil, nil
		}
		ref = m
	}

	txs, budgets, err := w.dashboard.Load(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", ref, err)
	}

	var alerts []insights.BudgetInsight
	for _, in := range insights.BudgetInsights(txs, budgets, ref) {
		if e.Category != "" && in.Category != e.Category {
			continue
		}
		if in.Status == insights.StatusGood {
			continue
		}
		alerts = append(alerts, in)
		w.logger.WarnContext(ctx, "Budget threshold crossed",
			applog.FieldOperation, applog.OpBudgetAlert,
			applog.FieldEventType, e.Type,
			applog.FieldMonth, ref.String(),
			applog.FieldCategory, in.Category,
			"status", string(in.Status),
			"percentage", in.Percentage,
			"spent", in.Spent.String(),
			"budget", in.Budget.String())
	}
	return alerts, nil
}
