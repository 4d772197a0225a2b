package service

import (
	"context"
	"fmt"

	"github.com/divvyup/divvyup/internal/ledger"
	"github.com/divvyup/divvyup/internal/models"
	"github.com/divvyup/divvyup/internal/storage"
)

// FriendBalance pairs a resolved friend with the net balance against them.
// Positive balance means the friend owes the user.
type FriendBalance struct {
	Friend  models.User
	Balance float64
}

// BalanceSheet is a user's lifetime position, ready for presentation.
// TotalOwed is what others owe the user; TotalOwing is what the user owes.
type BalanceSheet struct {
	TotalOwed      float64
	TotalOwing     float64
	FriendBalances []FriendBalance
}

// BalanceService computes lifetime balances by re-aggregating the full
// split and settlement history on every call.
type BalanceService struct {
	store storage.Store
}

// NewBalanceService creates a BalanceService with the given storage backend.
func NewBalanceService(store storage.Store) *BalanceService {
	return &BalanceService{store: store}
}

// Compute nets the user against every counterparty across all expenses and
// settlements. A counterparty ID that does not resolve to a user is an
// internal-consistency failure and propagates as an error; referential
// integrity is the storage layer's contract.
func (s *BalanceService) Compute(ctx context.Context, userID string) (*BalanceSheet, error) {
	userSplits, err := s.store.SplitsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user splits: %w", err)
	}
	paidSplits, err := s.store.SplitsForPayer(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load paid splits: %w", err)
	}
	settlements, err := s.store.ListSettlementsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settlements: %w", err)
	}

	balances := ledger.ComputeBalances(userID, userSplits, paidSplits, settlements)

	sheet := &BalanceSheet{
		TotalOwed:      balances.TotalOwed.InexactFloat64(),
		TotalOwing:     balances.TotalOwing.InexactFloat64(),
		FriendBalances: make([]FriendBalance, 0, len(balances.FriendBalances)),
	}
	for _, fb := range balances.FriendBalances {
		friend, err := s.store.GetUserByID(ctx, fb.FriendID)
		if err != nil {
			// Deliberately not wrapped: a dangling counterparty ID is an
			// internal failure, not a lookup miss the API should map to 404.
			return nil, fmt.Errorf("counterparty %s unresolvable: %v", fb.FriendID, err)
		}
		sheet.FriendBalances = append(sheet.FriendBalances, FriendBalance{
			Friend:  *friend,
			Balance: fb.Balance.InexactFloat64(),
		})
	}
	return sheet, nil
}
