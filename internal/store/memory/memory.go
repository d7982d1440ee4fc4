// Package memory is an in-process backend used for development and tests.
package memory

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"finboard/internal/core"
	"finboard/internal/store"
)

type Store struct {
	mu           sync.Mutex
	cats         []string
	transactions map[string]core.Transaction
	budgets      map[budgetKey]core.Budget
}

type budgetKey struct {
	category string
	month    string
}

func New(cats []string) *Store {
	return &Store{
		cats:         dedupe(cats),
		transactions: make(map[string]core.Transaction),
		budgets:      make(map[budgetKey]core.Budget),
	}
}

// NewFromFiles seeds the category list from base/seed_categories.txt and
// falls back to core.DefaultCategories.
func NewFromFiles(base string) *Store {
	cats := readLines(filepath.Join(base, "seed_categories.txt"))
	if len(cats) == 0 {
		cats = core.DefaultCategories
	}
	return New(cats)
}

func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	out := make([]core.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		out = append(out, t)
	}
	s.mu.Unlock()
	store.SortTransactions(out)
	return out, nil
}

func (s *Store) InsertTransaction(_ context.Context, t core.Transaction) (core.Transaction, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("generate id: %w", err)
	}
	t.ID = id.String()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions[t.ID] = t
	return t, nil
}

func (s *Store) ReplaceTransaction(_ context.Context, id string, t core.Transaction) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.transactions[id]
	if !ok {
		return core.Transaction{}, store.ErrNotFound
	}
	cur.Amount = t.Amount
	cur.Description = t.Description
	cur.Category = t.Category
	cur.Type = t.Type
	cur.Date = t.Date
	cur.UpdatedAt = t.UpdatedAt
	s.transactions[id] = cur
	return cur, nil
}

func (s *Store) DeleteTransaction(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.transactions[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.transactions, id)
	return nil
}

func (s *Store) ListBudgets(_ context.Context, month string) ([]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Budget
	for k, b := range s.budgets {
		if k.month == month {
			out = append(out, b)
		}
	}
	sortBudgets(out)
	return out, nil
}

// UpsertBudget replaces amount and UpdatedAt under the store lock, which
// gives the same single-record atomicity as the database backends.
func (s *Store) UpsertBudget(_ context.Context, b core.Budget) (core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := budgetKey{category: b.Category, month: b.Month}
	if cur, ok := s.budgets[key]; ok {
		cur.Amount = b.Amount
		cur.UpdatedAt = b.UpdatedAt
		s.budgets[key] = cur
		return cur, nil
	}
	id, err := uuid.NewV7()
	if err != nil {
		return core.Budget{}, fmt.Errorf("generate id: %w", err)
	}
	b.ID = id.String()
	s.budgets[key] = b
	return b, nil
}

// Categories returns the seeded category labels.
func (s *Store) Categories(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.cats...), nil
}

func (s *Store) Ping(context.Context) error { return nil }

// sortBudgets orders by creation, matching the database backends.
func sortBudgets(bs []core.Budget) {
	sort.Slice(bs, func(i, j int) bool {
		if !bs[i].CreatedAt.Equal(bs[j].CreatedAt) {
			return bs[i].CreatedAt.Before(bs[j].CreatedAt)
		}
		return bs[i].ID < bs[j].ID
	})
}

func readLines(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return dedupe(out)
}

func dedupe(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
