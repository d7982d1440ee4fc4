package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"finboard/internal/amqp"
	"finboard/internal/core"
	"finboard/internal/store"
	"finboard/internal/store/memory"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []*amqp.ChangeEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e *amqp.ChangeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

// failingStore fails every call.
type failingStore struct{ err error }

func (f failingStore) ListTransactions(context.Context) ([]core.Transaction, error) { return nil, f.err }
func (f failingStore) InsertTransaction(context.Context, core.Transaction) (core.Transaction, error) {
	return core.Transaction{}, f.err
}
func (f failingStore) ReplaceTransaction(context.Context, string, core.Transaction) (core.Transaction, error) {
	return core.Transaction{}, f.err
}
func (f failingStore) DeleteTransaction(context.Context, string) error { return f.err }
func (f failingStore) ListBudgets(context.Context, string) ([]core.Budget, error) {
	return nil, f.err
}
func (f failingStore) UpsertBudget(context.Context, core.Budget) (core.Budget, error) {
	return core.Budget{}, f.err
}

var now = time.Date(2024, 3, 15, 12, 30, 0, 987654321, time.UTC)

func clock() core.Clock { return core.FixedClock(now, time.UTC) }

func input() core.TransactionInput {
	return core.TransactionInput{
		Amount:      core.MustMoney("42.50"),
		Description: "  Dinner  ",
		Category:    "Food",
		Type:        core.TypeExpense,
		Date:        "2024-03-14",
	}
}

func TestTransactionService_Create(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	svc := NewTransactionService(memory.New(nil), pub, clock())

	got, err := svc.Create(ctx, input())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.ID == "" {
		t.Fatal("expected id")
	}
	if got.Description != "Dinner" || got.Amount.String() != "42.5" || got.Category != "Food" || got.Date != "2024-03-14" {
		t.Fatalf("unexpected record: %+v", got)
	}
	want := core.Timestamp(now)
	if !got.CreatedAt.Equal(want) || !got.UpdatedAt.Equal(want) {
		t.Fatalf("timestamps = %v / %v, want %v", got.CreatedAt, got.UpdatedAt, want)
	}
	if len(pub.events) != 1 || pub.events[0].Type != amqp.EventTransactionCreated || pub.events[0].Month != "2024-03" {
		t.Fatalf("unexpected events: %+v", pub.events)
	}
}

func TestTransactionService_CreateValidation(t *testing.T) {
	st := memory.New(nil)
	pub := &recordingPublisher{}
	svc := NewTransactionService(st, pub, clock())

	in := input()
	in.Amount = core.MustMoney("-5")
	_, err := svc.Create(context.Background(), in)
	if !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("got %v, want ErrInvalidAmount", err)
	}
	list, _ := st.ListTransactions(context.Background())
	if len(list) != 0 || len(pub.events) != 0 {
		t.Fatal("validation failure must not touch the store or publish")
	}
}

func TestTransactionService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewTransactionService(memory.New(nil), nil, clock())

	created, err := svc.Create(ctx, input())
	if err != nil {
		t.Fatal(err)
	}

	in := input()
	in.Type = core.TypeIncome
	in.Description = "Refund"
	updated, err := svc.Update(ctx, created.ID, in)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Type != core.TypeIncome || updated.Description != "Refund" || !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("unexpected update: %+v", updated)
	}

	if _, err := svc.Update(ctx, "missing", in); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("update missing = %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("second delete = %v", err)
	}
}

func TestTransactionService_PublishFailureIsNotFatal(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := NewTransactionService(memory.New(nil), pub, clock())
	if _, err := svc.Create(context.Background(), input()); err != nil {
		t.Fatalf("Create should succeed when publishing fails: %v", err)
	}
}

func TestTransactionService_StoreErrorsAreWrapped(t *testing.T) {
	boom := errors.New("boom")
	svc := NewTransactionService(failingStore{err: boom}, nil, clock())
	if _, err := svc.List(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("List = %v", err)
	}
	if _, err := svc.Create(context.Background(), input()); !errors.Is(err, boom) {
		t.Fatalf("Create = %v", err)
	}
}

func TestBudgetService_UpsertIsIdempotent(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	svc := NewBudgetService(memory.New(nil), pub, clock())

	for _, amount := range []string{"500", "500"} {
		if _, err := svc.Upsert(ctx, core.BudgetInput{Category: "Food", Amount: core.MustMoney(amount)}); err != nil {
			t.Fatal(err)
		}
	}
	got, err := svc.ListCurrent(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Month != "2024-03" || got[0].Amount.String() != "500" {
		t.Fatalf("budgets = %+v", got)
	}
	if len(pub.events) != 2 || pub.events[1].Type != amqp.EventBudgetUpserted {
		t.Fatalf("events = %+v", pub.events)
	}
}

func TestBudgetService_UsesReferenceZone(t *testing.T) {
	// 23:30 UTC on Jan 31 is already February two hours east.
	late := time.Date(2024, 1, 31, 23, 30, 0, 0, time.UTC)
	svc := NewBudgetService(memory.New(nil), nil, core.FixedClock(late, time.FixedZone("EET", 2*3600)))

	b, err := svc.Upsert(context.Background(), core.BudgetInput{Category: "Rent", Amount: core.MustMoney("800")})
	if err != nil {
		t.Fatal(err)
	}
	if b.Month != "2024-02" {
		t.Fatalf("Month = %s, want 2024-02", b.Month)
	}
}

func TestBudgetService_Validation(t *testing.T) {
	svc := NewBudgetService(memory.New(nil), nil, clock())
	_, err := svc.Upsert(context.Background(), core.BudgetInput{Amount: core.MustMoney("0")})
	if !errors.Is(err, core.ErrCategoryRequired) {
		t.Fatalf("got %v, want ErrCategoryRequired", err)
	}
}

func TestDashboardService_Build(t *testing.T) {
	ctx := context.Background()
	st := memory.New(nil)
	txSvc := NewTransactionService(st, nil, clock())
	budSvc := NewBudgetService(st, nil, clock())

	for _, in := range []core.TransactionInput{
		{Amount: core.MustMoney("90"), Description: "a", Category: "Food", Type: core.TypeExpense, Date: "2024-03-01"},
		{Amount: core.MustMoney("60"), Description: "b", Category: "Food", Type: core.TypeExpense, Date: "2024-02-01"},
		{Amount: core.MustMoney("1000"), Description: "c", Category: "Salary", Type: core.TypeIncome, Date: "2024-03-01"},
	} {
		if _, err := txSvc.Create(ctx, in); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := budSvc.Upsert(ctx, core.BudgetInput{Category: "Food", Amount: core.MustMoney("100")}); err != nil {
		t.Fatal(err)
	}

	svc := NewDashboardService(st, st, clock())
	d, err := svc.Build(ctx, svc.CurrentMonth())
	if err != nil {
		t.Fatal(err)
	}
	if d.Summary.TotalIncome.String() != "1000" || d.Summary.TotalExpenses.String() != "90" || d.Summary.TopCategory != "Food" {
		t.Fatalf("summary = %+v", d.Summary)
	}
	if d.Trend.Percent != 50 {
		t.Fatalf("trend = %v, want 50", d.Trend.Percent)
	}
	if len(d.BudgetStatus) != 1 || d.BudgetStatus[0].Status != "warning" {
		t.Fatalf("status = %+v", d.BudgetStatus)
	}
}

func TestDashboardService_LoadError(t *testing.T) {
	boom := errors.New("boom")
	svc := NewDashboardService(failingStore{err: boom}, memory.New(nil), clock())
	if _, err := svc.Build(context.Background(), svc.CurrentMonth()); !errors.Is(err, boom) {
		t.Fatalf("got %v", err)
	}
}
