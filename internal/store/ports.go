// Package store defines the persistence ports shared by every backend.
package store

import (
	"context"
	"errors"

	"finboard/internal/core"
)

// ErrNotFound is returned when no record matches the given identity.
var ErrNotFound = errors.New("record not found")

// Ports for persistence adapters.
type (
	TransactionStore interface {
		// ListTransactions returns every transaction, date descending then
		// createdAt descending.
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
		// InsertTransaction persists t and returns it with its new ID.
		InsertTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
		// ReplaceTransaction overwrites the mutable fields and UpdatedAt of
		// the record with the given id and returns the stored result.
		ReplaceTransaction(ctx context.Context, id string, t core.Transaction) (core.Transaction, error)
		DeleteTransaction(ctx context.Context, id string) error
	}

	BudgetStore interface {
		ListBudgets(ctx context.Context, month string) ([]core.Budget, error)
		// UpsertBudget writes b keyed on (Category, Month). An existing record
		// keeps its CreatedAt. The returned value is the record after the write.
		UpsertBudget(ctx context.Context, b core.Budget) (core.Budget, error)
	}

	CategoryReader interface {
		Categories(ctx context.Context) ([]string, error)
	}

	// Store is what a backend provides to the application.
	Store interface {
		TransactionStore
		BudgetStore
		Ping(ctx context.Context) error
	}
)

// StaticCategories serves a fixed label list.
type StaticCategories []string

func (s StaticCategories) Categories(context.Context) ([]string, error) {
	return append([]string(nil), s...), nil
}
