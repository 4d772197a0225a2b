// Package service wires the storage layer, the ledger engine, and the
// currency converter into the operations the API exposes.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/divvyup/divvyup/internal/ledger"
	"github.com/divvyup/divvyup/internal/models"
	"github.com/divvyup/divvyup/internal/storage"
)

// SplitInput is one participant entry of an expense-creation request.
type SplitInput struct {
	UserID     string          `json:"userId"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
	Shares     int             `json:"shares"`
}

// CreateExpenseInput is the validated body of an expense-creation request.
type CreateExpenseInput struct {
	Description string           `json:"description"`
	Amount      decimal.Decimal  `json:"amount"`
	Currency    string           `json:"currency"`
	CategoryID  string           `json:"categoryId"`
	GroupID     string           `json:"groupId"`
	SplitType   models.SplitType `json:"splitType"`
	Splits      []SplitInput     `json:"splits"`
}

// ExpenseService creates and lists expenses. Split amounts are finalized by
// the ledger engine before anything is persisted, so the stored splits
// always satisfy the sum invariant.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates an ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// Create computes the splits for a new expense and persists the expense and
// its splits atomically. The payer is the authenticated user.
func (s *ExpenseService) Create(ctx context.Context, userID string, in CreateExpenseInput) (*models.Expense, []models.ExpenseSplit, error) {
	participants := make([]ledger.Participant, len(in.Splits))
	for i, sp := range in.Splits {
		participants[i] = ledger.Participant{
			UserID:     sp.UserID,
			Amount:     sp.Amount,
			Percentage: sp.Percentage,
			Shares:     sp.Shares,
		}
	}

	splitType := in.SplitType
	if splitType == "" {
		splitType = models.SplitEqual
	}

	shares, err := ledger.ComputeSplits(in.Amount, splitType, participants)
	if err != nil {
		return nil, nil, err
	}

	expense := &models.Expense{
		Description: in.Description,
		Amount:      in.Amount.Round(2),
		Currency:    in.Currency,
		CategoryID:  in.CategoryID,
		GroupID:     in.GroupID,
		PaidBy:      userID,
		SplitType:   splitType,
	}

	splits := make([]models.ExpenseSplit, len(shares))
	for i, sh := range shares {
		splits[i] = models.ExpenseSplit{
			UserID:     sh.UserID,
			Amount:     sh.Amount,
			Percentage: sh.Percentage,
			Shares:     sh.Shares,
		}
	}

	if err := s.store.CreateExpense(ctx, expense, splits); err != nil {
		return nil, nil, fmt.Errorf("failed to persist expense: %w", err)
	}

	slog.Info("Expense created",
		"expense_id", expense.ID,
		"paid_by", userID,
		"amount", expense.Amount.StringFixed(2),
		"currency", expense.Currency,
		"split_type", splitType,
		"participants", len(splits),
	)
	return expense, splits, nil
}

// List returns the expenses the user participates in, newest first.
func (s *ExpenseService) List(ctx context.Context, userID string, limit int) ([]models.ExpenseDetail, error) {
	return s.store.ListExpenses(ctx, userID, limit)
}
