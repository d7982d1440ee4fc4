// Package sqlite is the embedded single-file backend.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"

	"finboard/internal/core"
	"finboard/internal/store"

	_ "modernc.org/sqlite"
)

// timeLayout has fixed width so TEXT ordering matches chronological order.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

const (
	transactionColumns = "id, amount, description, category, type, date, created_at, updated_at"
	budgetColumns      = "id, category, month, amount, created_at, updated_at"
)

type Repository struct {
	writer *sql.DB
	reader *sql.DB
}

// Open creates the database directory if needed, applies migrations and
// returns a repository with a single-connection writer pool and a shared
// reader pool.
func Open(dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	if err := RunMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)", dbPath)

	writer, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open writer: %w", err)
	}
	writer.SetMaxOpenConns(1)

	reader, err := sql.Open("sqlite", dsn)
	if err != nil {
		writer.Close()
		return nil, fmt.Errorf("open reader: %w", err)
	}
	reader.SetMaxOpenConns(runtime.NumCPU())

	r := &Repository{writer: writer, reader: reader}
	if err := r.Ping(context.Background()); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

func (r *Repository) Close() error {
	err1 := r.writer.Close()
	err2 := r.reader.Close()
	if err1 != nil {
		return err1
	}
	return err2
}

func (r *Repository) Ping(ctx context.Context) error {
	if err := r.reader.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(s scanner) (core.Transaction, error) {
	var (
		t                core.Transaction
		typ              string
		created, updated string
	)
	if err := s.Scan(&t.ID, &t.Amount, &t.Description, &t.Category, &typ, &t.Date, &created, &updated); err != nil {
		return core.Transaction{}, err
	}
	t.Type = core.TransactionType(typ)
	var err error
	if t.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return core.Transaction{}, fmt.Errorf("parse created_at: %w", err)
	}
	if t.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
		return core.Transaction{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return t, nil
}

func scanBudget(s scanner) (core.Budget, error) {
	var (
		b                core.Budget
		created, updated string
	)
	if err := s.Scan(&b.ID, &b.Category, &b.Month, &b.Amount, &created, &updated); err != nil {
		return core.Budget{}, err
	}
	var err error
	if b.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return core.Budget{}, fmt.Errorf("parse created_at: %w", err)
	}
	if b.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
		return core.Budget{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return b, nil
}

func formatTime(t time.Time) string { return t.UTC().Format(timeLayout) }

func (r *Repository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.reader.QueryContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions ORDER BY date DESC, created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	out := []core.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

func (r *Repository) InsertTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	t.ID = uuid.Must(uuid.NewV7()).String()
	_, err := r.writer.ExecContext(ctx,
		"INSERT INTO transactions ("+transactionColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		t.ID, t.Amount.String(), t.Description, t.Category, string(t.Type), t.Date,
		formatTime(t.CreatedAt), formatTime(t.UpdatedAt))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	slog.DebugContext(ctx, "Transaction saved to SQLite", "id", t.ID, "category", t.Category)
	return t, nil
}

func (r *Repository) ReplaceTransaction(ctx context.Context, id string, t core.Transaction) (core.Transaction, error) {
	row := r.writer.QueryRowContext(ctx,
		`UPDATE transactions
		 SET amount = ?, description = ?, category = ?, type = ?, date = ?, updated_at = ?
		 WHERE id = ?
		 RETURNING `+transactionColumns,
		t.Amount.String(), t.Description, t.Category, string(t.Type), t.Date, formatTime(t.UpdatedAt), id)
	got, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, store.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction %s: %w", id, err)
	}
	return got, nil
}

func (r *Repository) DeleteTransaction(ctx context.Context, id string) error {
	res, err := r.writer.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete transaction %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *Repository) ListBudgets(ctx context.Context, month string) ([]core.Budget, error) {
	rows, err := r.reader.QueryContext(ctx,
		"SELECT "+budgetColumns+" FROM budgets WHERE month = ? ORDER BY created_at, id", month)
	if err != nil {
		return nil, fmt.Errorf("query budgets: %w", err)
	}
	defer rows.Close()

	out := []core.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budgets: %w", err)
	}
	return out, nil
}

// UpsertBudget relies on the (category, month) unique key so concurrent
// writers cannot create duplicates.
func (r *Repository) UpsertBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	row := r.writer.QueryRowContext(ctx,
		`INSERT INTO budgets (`+budgetColumns+`) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (category, month) DO UPDATE SET amount = excluded.amount, updated_at = excluded.updated_at
		 RETURNING `+budgetColumns,
		uuid.Must(uuid.NewV7()).String(), b.Category, b.Month, b.Amount.String(),
		formatTime(b.CreatedAt), formatTime(b.UpdatedAt))
	got, err := scanBudget(row)
	if err != nil {
		return core.Budget{}, fmt.Errorf("upsert budget %s/%s: %w", b.Category, b.Month, err)
	}
	return got, nil
}
