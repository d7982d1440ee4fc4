package core

import (
	"strings"
	"time"
)

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

type (
	TransactionType string

	// Transaction is a single recorded income or expense event.
	Transaction struct {
		ID          string          `json:"_id"`
		Amount      Money           `json:"amount"`
		Description string          `json:"description"`
		Category    string          `json:"category"`
		Type        TransactionType `json:"type"`
		Date        string          `json:"date"` // YYYY-MM-DD or full ISO 8601
		CreatedAt   time.Time       `json:"createdAt"`
		UpdatedAt   time.Time       `json:"updatedAt"`
	}

	// TransactionInput carries the user-editable fields of a Transaction.
	TransactionInput struct {
		Amount      Money           `json:"amount"`
		Description string          `json:"description"`
		Category    string          `json:"category"`
		Type        TransactionType `json:"type"`
		Date        string          `json:"date"`
	}

	// Budget is a spending ceiling for one category in one calendar month.
	// (Category, Month) is its natural key.
	Budget struct {
		ID        string    `json:"_id,omitempty"`
		Category  string    `json:"category"`
		Amount    Money     `json:"amount"`
		Month     string    `json:"month"` // YYYY-MM
		CreatedAt time.Time `json:"createdAt"`
		UpdatedAt time.Time `json:"updatedAt"`
	}

	BudgetInput struct {
		Category string `json:"category"`
		Amount   Money  `json:"amount"`
	}
)

// ValidationError is a user-correctable problem with one input field.
// Message is safe to show to the caller as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	ErrInvalidAmount       = &ValidationError{Field: "amount", Message: "Amount must be greater than 0"}
	ErrDescriptionRequired = &ValidationError{Field: "description", Message: "Description is required"}
	ErrCategoryRequired    = &ValidationError{Field: "category", Message: "Category is required"}
	ErrInvalidType         = &ValidationError{Field: "type", Message: "Type must be income or expense"}
	ErrDateRequired        = &ValidationError{Field: "date", Message: "Date is required"}
)

func (t TransactionType) IsValid() bool {
	return t == TypeIncome || t == TypeExpense
}

// MonthKey returns the YYYY-MM prefix of the transaction date.
func (t Transaction) MonthKey() string { return MonthKey(t.Date) }

func (t Transaction) IsExpense() bool { return t.Type == TypeExpense }

func (t Transaction) IsIncome() bool { return t.Type == TypeIncome }

// Normalize trims the description. Other fields are stored as given.
func (in TransactionInput) Normalize() TransactionInput {
	in.Description = strings.TrimSpace(in.Description)
	return in
}

// Validate checks the fields in a fixed order and reports the first failure.
func (in TransactionInput) Validate() error {
	if !in.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(in.Description) == "" {
		return ErrDescriptionRequired
	}
	if strings.TrimSpace(in.Category) == "" {
		return ErrCategoryRequired
	}
	if !in.Type.IsValid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(in.Date) == "" {
		return ErrDateRequired
	}
	return nil
}

// Apply copies the input fields onto t and stamps UpdatedAt.
func (in TransactionInput) Apply(t Transaction, now time.Time) Transaction {
	in = in.Normalize()
	t.Amount = in.Amount
	t.Description = in.Description
	t.Category = in.Category
	t.Type = in.Type
	t.Date = in.Date
	t.UpdatedAt = now
	return t
}

func (in BudgetInput) Validate() error {
	if strings.TrimSpace(in.Category) == "" {
		return ErrCategoryRequired
	}
	if !in.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

// DefaultCategories is the label set offered to clients. Stores accept any
// non-blank category.
var DefaultCategories = []string{
	"Food & Dining",
	"Transportation",
	"Shopping",
	"Entertainment",
	"Bills & Utilities",
	"Healthcare",
	"Education",
	"Travel",
	"Rent",
	"Food",
	"Salary",
	"Freelance",
	"Investments",
	"Other",
}

// Timestamp returns now truncated to milliseconds in UTC, the precision
// every backend can round-trip.
func Timestamp(now time.Time) time.Time {
	return now.UTC().Truncate(time.Millisecond)
}
