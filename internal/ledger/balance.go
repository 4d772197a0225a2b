package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/divvyup/divvyup/internal/models"
)

// SplitRow is one expense split joined with the payer of its parent expense.
// It is the raw unit both balance aggregation passes consume.
type SplitRow struct {
	ExpenseID string
	UserID    string // who owes this share
	PayerID   string // who paid the expense
	Amount    decimal.Decimal
}

// FriendBalance is the derived net position against one counterparty.
// Positive means the counterparty owes the user; negative means the user
// owes the counterparty.
type FriendBalance struct {
	FriendID string
	Balance  decimal.Decimal
}

// Balances is a user's aggregate position over the full expense history.
//
// Naming convention, applied uniformly across the codebase:
// TotalOwed is what others owe the user; TotalOwing is what the user owes
// others. Both are non-negative.
type Balances struct {
	TotalOwed      decimal.Decimal
	TotalOwing     decimal.Decimal
	FriendBalances []FriendBalance
}

// ComputeBalances nets a user's position against every counterparty.
//
//   - userSplits: all splits owned by the user, joined to the payer. Each
//     split whose payer is someone else decreases the balance with that
//     payer (the user owes them).
//   - paidSplits: all splits of expenses the user paid. Each split owned by
//     someone else increases the balance with that owner (they owe the user).
//   - settlements: payments between the user and counterparties; a payment
//     from the user raises the pair balance, a payment to the user lowers it.
//
// Counterparties appear in FriendBalances in first-touched order.
func ComputeBalances(userID string, userSplits, paidSplits []SplitRow, settlements []models.Settlement) Balances {
	balances := make(map[string]decimal.Decimal)
	var order []string

	touch := func(id string) {
		if _, ok := balances[id]; !ok {
			balances[id] = decimal.Zero
			order = append(order, id)
		}
	}

	// Shares of other people's expenses: the user owes each payer.
	for _, row := range userSplits {
		if row.PayerID == userID {
			continue
		}
		touch(row.PayerID)
		balances[row.PayerID] = balances[row.PayerID].Sub(row.Amount)
	}

	// Shares of the user's own expenses: each owner owes the user.
	for _, row := range paidSplits {
		if row.UserID == userID {
			continue
		}
		touch(row.UserID)
		balances[row.UserID] = balances[row.UserID].Add(row.Amount)
	}

	// Settlements offset the pair balance in the direction of the payment.
	for _, s := range settlements {
		switch userID {
		case s.FromUserID:
			touch(s.ToUserID)
			balances[s.ToUserID] = balances[s.ToUserID].Add(s.Amount)
		case s.ToUserID:
			touch(s.FromUserID)
			balances[s.FromUserID] = balances[s.FromUserID].Sub(s.Amount)
		}
	}

	out := Balances{
		TotalOwed:      decimal.Zero,
		TotalOwing:     decimal.Zero,
		FriendBalances: make([]FriendBalance, 0, len(order)),
	}
	for _, id := range order {
		b := balances[id].Round(2)
		out.FriendBalances = append(out.FriendBalances, FriendBalance{FriendID: id, Balance: b})
		if b.IsPositive() {
			out.TotalOwed = out.TotalOwed.Add(b)
		} else if b.IsNegative() {
			out.TotalOwing = out.TotalOwing.Add(b.Abs())
		}
	}
	return out
}
