// Package ledger implements the balance and split computation engine:
// split calculation at expense-creation time, full-history balance netting
// per counterparty, and windowed analytics aggregation with rule-based
// insights. All computations are request-scoped and side-effect free.
package ledger

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/divvyup/divvyup/internal/models"
)

var (
	ErrNoParticipants    = errors.New("at least one participant is required")
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
	ErrUnknownSplitType  = errors.New("unknown split type")
)

var (
	hundred = decimal.NewFromInt(100)
	cent    = decimal.New(1, -2) // 0.01
)

// Participant is the caller-supplied input for one person in a split.
// Which field is read depends on the split policy: Amount for "custom",
// Percentage for "percentage", Shares for "shares".
type Participant struct {
	UserID     string
	Amount     decimal.Decimal
	Percentage decimal.Decimal
	Shares     int
}

// Share is one participant's finalized portion of an expense.
type Share struct {
	UserID     string
	Amount     decimal.Decimal // two decimal places
	Percentage decimal.Decimal // two decimal places
	Shares     int
}

// ComputeSplits converts a total amount and a split policy into a finalized
// per-participant breakdown. Output order matches input order.
//
// Equal and shares splits use largest-remainder allocation so the share
// amounts always sum to the total exactly. Custom amounts and percentages
// are taken as given: the caller owns validating that they add up.
func ComputeSplits(total decimal.Decimal, splitType models.SplitType, participants []Participant) ([]Share, error) {
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}
	if !total.IsPositive() {
		return nil, ErrNonPositiveAmount
	}

	total = total.Round(2)

	switch splitType {
	case models.SplitEqual:
		return equalSplits(total, participants), nil
	case models.SplitCustom:
		return customSplits(total, participants), nil
	case models.SplitPercentage:
		return percentageSplits(total, participants), nil
	case models.SplitShares:
		return shareSplits(total, participants), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSplitType, splitType)
	}
}

// equalSplits divides the total evenly. Leftover cents from the division go
// to the earliest participants, one cent each.
func equalSplits(total decimal.Decimal, participants []Participant) []Share {
	n := int64(len(participants))
	count := decimal.NewFromInt(n)

	totalCents := total.Shift(2)
	baseCents := totalCents.Div(count).Floor()
	leftover := totalCents.Sub(baseCents.Mul(count)).IntPart()

	pct := hundred.DivRound(count, 2)

	splits := make([]Share, len(participants))
	for i, p := range participants {
		amount := baseCents.Shift(-2)
		if int64(i) < leftover {
			amount = amount.Add(cent)
		}
		splits[i] = Share{
			UserID:     p.UserID,
			Amount:     amount,
			Percentage: pct,
			Shares:     1,
		}
	}
	return splits
}

// customSplits takes the caller-provided amounts as-is.
func customSplits(total decimal.Decimal, participants []Participant) []Share {
	splits := make([]Share, len(participants))
	for i, p := range participants {
		amount := p.Amount.Round(2)
		splits[i] = Share{
			UserID:     p.UserID,
			Amount:     amount,
			Percentage: amount.Mul(hundred).DivRound(total, 2),
			Shares:     1,
		}
	}
	return splits
}

// percentageSplits computes each amount from a caller-provided percentage.
func percentageSplits(total decimal.Decimal, participants []Participant) []Share {
	splits := make([]Share, len(participants))
	for i, p := range participants {
		splits[i] = Share{
			UserID:     p.UserID,
			Amount:     total.Mul(p.Percentage).DivRound(hundred, 2),
			Percentage: p.Percentage.Round(2),
			Shares:     1,
		}
	}
	return splits
}

// shareSplits divides the total proportionally to integer share counts.
// A missing or non-positive share count defaults to 1. Amounts are floored
// to the cent, then remaining cents are handed out by largest fractional
// remainder (earliest participant wins ties) so the sum is exact.
func shareSplits(total decimal.Decimal, participants []Participant) []Share {
	shares := make([]int64, len(participants))
	var totalShares int64
	for i, p := range participants {
		s := int64(p.Shares)
		if s <= 0 {
			s = 1
		}
		shares[i] = s
		totalShares += s
	}
	totalSharesDec := decimal.NewFromInt(totalShares)

	totalCents := total.Shift(2)
	splits := make([]Share, len(participants))
	remainders := make([]decimal.Decimal, len(participants))
	var allocated decimal.Decimal

	for i, p := range participants {
		exact := totalCents.Mul(decimal.NewFromInt(shares[i])).Div(totalSharesDec)
		floor := exact.Floor()
		remainders[i] = exact.Sub(floor)
		allocated = allocated.Add(floor)

		splits[i] = Share{
			UserID:     p.UserID,
			Amount:     floor.Shift(-2),
			Percentage: decimal.NewFromInt(shares[i]).Mul(hundred).DivRound(totalSharesDec, 2),
			Shares:     int(shares[i]),
		}
	}

	leftover := int(totalCents.Sub(allocated).IntPart())
	order := make([]int, len(participants))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]].GreaterThan(remainders[order[b]])
	})
	for k := 0; k < leftover && k < len(order); k++ {
		i := order[k]
		splits[i].Amount = splits[i].Amount.Add(cent)
	}
	return splits
}
