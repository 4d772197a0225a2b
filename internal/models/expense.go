package models

import "github.com/shopspring/decimal"

// SplitType is the policy used to divide an expense among participants.
type SplitType string

const (
	// SplitEqual divides the total evenly among all participants.
	SplitEqual SplitType = "equal"
	// SplitCustom uses caller-provided absolute amounts per participant.
	SplitCustom SplitType = "custom"
	// SplitPercentage uses caller-provided percentages of the total.
	SplitPercentage SplitType = "percentage"
	// SplitShares divides the total proportionally to integer share counts.
	SplitShares SplitType = "shares"
)

// Valid reports whether t is one of the four recognized split policies.
func (t SplitType) Valid() bool {
	switch t {
	case SplitEqual, SplitCustom, SplitPercentage, SplitShares:
		return true
	}
	return false
}

// Expense represents a shared expense paid by one user.
// Expenses are immutable once created; there is no update path.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Description is the human-readable label (e.g., "Dinner at Luigi's").
	Description string

	// Amount is the total expense amount, two decimal places.
	// Invariant: Amount > 0.
	Amount decimal.Decimal

	// Currency is the ISO 4217 code the expense was paid in.
	Currency string

	// CategoryID references a Category; empty means uncategorized.
	CategoryID string

	// GroupID optionally scopes the expense to a group.
	GroupID string

	// PaidBy is the ID of the user who paid the full amount.
	PaidBy string

	// SplitType is the policy the splits were computed with.
	SplitType SplitType

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// ExpenseSplit is one participant's share of a single expense.
// The amounts of all splits of an expense sum to the expense amount.
type ExpenseSplit struct {
	// ID is the unique identifier for the split (UUID format).
	ID string

	// ExpenseID is the parent expense.
	ExpenseID string

	// UserID is the participant this share belongs to.
	UserID string

	// Amount is this participant's share, two decimal places.
	Amount decimal.Decimal

	// Percentage is this participant's share of the total, two decimal
	// places (e.g., 33.33 for a three-way equal split).
	Percentage decimal.Decimal

	// Shares is the share count for the "shares" policy; 1 otherwise.
	Shares int

	// Settled marks the share as paid back to the payer.
	Settled bool

	// SettledAt is the Unix timestamp the share was settled; 0 if unsettled.
	SettledAt int64
}

// ExpenseDetail is an expense joined with its display context for list views.
type ExpenseDetail struct {
	Expense       Expense
	CategoryName  string
	CategoryColor string
	Payer         User
	Splits        []ExpenseSplit
}
