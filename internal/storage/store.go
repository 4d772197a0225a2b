// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/divvyup/divvyup/internal/ledger"
	"github.com/divvyup/divvyup/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer. All time windows are half-open:
// [from, to).
type Store interface {
	// CreateUser persists a new user.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email. Returns (nil, nil) when no
	// such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID. Returns ErrNotFound when the ID
	// does not resolve; callers treat that as an internal-consistency
	// failure for IDs referenced by splits.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// SeedCategories inserts the default category set if missing.
	SeedCategories(ctx context.Context) error

	// ListCategories returns all expense categories.
	ListCategories(ctx context.Context) ([]models.Category, error)

	// CreateExpense persists an expense and its splits atomically.
	// IDs and CreatedAt are populated by the store when unset.
	CreateExpense(ctx context.Context, expense *models.Expense, splits []models.ExpenseSplit) error

	// ListExpenses returns the expenses the user participates in, newest
	// first, joined with category, payer and all splits. limit <= 0 means
	// no limit.
	ListExpenses(ctx context.Context, userID string, limit int) ([]models.ExpenseDetail, error)

	// SplitsForUser returns every split owned by the user joined to the
	// payer of its parent expense, over the full history.
	SplitsForUser(ctx context.Context, userID string) ([]ledger.SplitRow, error)

	// SplitsForPayer returns every split of every expense the user paid.
	SplitsForPayer(ctx context.Context, userID string) ([]ledger.SplitRow, error)

	// ExpenseRowsInWindow implements ledger.Reader.
	ExpenseRowsInWindow(ctx context.Context, userID string, from, to time.Time) ([]ledger.ExpenseRow, error)

	// SiblingSplits implements ledger.Reader.
	SiblingSplits(ctx context.Context, expenseID, excludeUserID string) ([]models.ExpenseSplit, error)

	// SumSplitsInWindow implements ledger.Reader.
	SumSplitsInWindow(ctx context.Context, userID string, from, to time.Time) (decimal.Decimal, error)

	// CreateSettlement persists a settlement.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// ListSettlementsForUser returns settlements the user sent or
	// received, newest first.
	ListSettlementsForUser(ctx context.Context, userID string) ([]models.Settlement, error)

	// MarkSplitsSettled flags the user's unsettled splits on expenses paid
	// by payerID as settled.
	MarkSplitsSettled(ctx context.Context, userID, payerID string) error

	// GetExchangeRate returns a cached exchange rate and its storage time.
	// Returns ErrNotFound when the pair has never been cached.
	GetExchangeRate(ctx context.Context, from, to string) (decimal.Decimal, time.Time, error)

	// PutExchangeRate stores or refreshes a cached exchange rate.
	PutExchangeRate(ctx context.Context, from, to string, rate decimal.Decimal) error

	// Close releases any resources held by the store.
	Close() error
}
