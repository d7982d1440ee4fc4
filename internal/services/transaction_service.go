package services

import (
	"context"
	"fmt"

	"finboard/internal/amqp"
	"finboard/internal/core"
	"finboard/internal/store"
)

// TransactionService validates transaction input, persists it and announces
// the change.
type TransactionService struct {
	store     store.TransactionStore
	publisher Publisher
	clock     core.Clock
}

func NewTransactionService(st store.TransactionStore, pub Publisher, clock core.Clock) *TransactionService {
	return &TransactionService{store: st, publisher: pub, clock: clock}
}

// List returns every transaction, newest date first.
func (s *TransactionService) List(ctx context.Context) ([]core.Transaction, error) {
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// Create validates in and stores a new transaction. Validation failures are
// returned as *core.ValidationError without touching the store.
func (s *TransactionService) Create(ctx context.Context, in core.TransactionInput) (core.Transaction, error) {
	if err := in.Validate(); err != nil {
		return core.Transaction{}, err
	}
	now := core.Timestamp(s.clock.Time())
	t := in.Apply(core.Transaction{CreatedAt: now}, now)

	created, err := s.store.InsertTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	publish(ctx, s.publisher, amqp.NewChangeEvent(amqp.EventTransactionCreated, created.ID, created.Category, created.MonthKey()))
	return created, nil
}

// Update replaces every mutable field of transaction id.
func (s *TransactionService) Update(ctx context.Context, id string, in core.TransactionInput) (core.Transaction, error) {
	if err := in.Validate(); err != nil {
		return core.Transaction{}, err
	}
	t := in.Apply(core.Transaction{ID: id}, core.Timestamp(s.clock.Time()))

	updated, err := s.store.ReplaceTransaction(ctx, id, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction %s: %w", id, err)
	}

	publish(ctx, s.publisher, amqp.NewChangeEvent(amqp.EventTransactionUpdated, updated.ID, updated.Category, updated.MonthKey()))
	return updated, nil
}

func (s *TransactionService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction %s: %w", id, err)
	}
	publish(ctx, s.publisher, amqp.NewChangeEvent(amqp.EventTransactionDeleted, id, "", ""))
	return nil
}
