package models

import "github.com/shopspring/decimal"

// Settlement represents a payment between two users to clear debt.
// Settlements offset the balance computed from expense splits.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// FromUserID is the user who paid (debtor settling up).
	FromUserID string

	// ToUserID is the user who received payment (creditor being paid).
	ToUserID string

	// Amount is the payment amount, two decimal places.
	Amount decimal.Decimal

	// Currency is the ISO 4217 code of the payment.
	Currency string

	// GroupID optionally scopes the settlement to a group.
	GroupID string

	// Method is an optional payment method label (e.g., "cash", "venmo").
	Method string

	// Note is an optional description for the settlement.
	Note string

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64
}
