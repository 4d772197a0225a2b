package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/divvyup/divvyup/internal/models"
	"github.com/divvyup/divvyup/internal/storage"
)

var (
	ErrSettleSelf        = errors.New("cannot settle with yourself")
	ErrSettleNonPositive = errors.New("settlement amount must be greater than zero")
)

// CreateSettlementInput is the body of a settlement-creation request.
type CreateSettlementInput struct {
	ToUserID string          `json:"toUserId"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	GroupID  string          `json:"groupId"`
	Method   string          `json:"method"`
	Note     string          `json:"note"`
}

// SettlementService records payments between users and marks the covered
// splits settled.
type SettlementService struct {
	store storage.Store
}

// NewSettlementService creates a SettlementService with the given storage
// backend.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

// Create records a settlement from the authenticated user and flags their
// outstanding splits toward the recipient as settled.
func (s *SettlementService) Create(ctx context.Context, fromUserID string, in CreateSettlementInput) (*models.Settlement, error) {
	if in.ToUserID == fromUserID {
		return nil, ErrSettleSelf
	}
	if !in.Amount.IsPositive() {
		return nil, ErrSettleNonPositive
	}
	if _, err := s.store.GetUserByID(ctx, in.ToUserID); err != nil {
		return nil, fmt.Errorf("recipient lookup failed: %w", err)
	}

	settlement := &models.Settlement{
		FromUserID: fromUserID,
		ToUserID:   in.ToUserID,
		Amount:     in.Amount.Round(2),
		Currency:   in.Currency,
		GroupID:    in.GroupID,
		Method:     in.Method,
		Note:       in.Note,
	}
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		return nil, fmt.Errorf("failed to persist settlement: %w", err)
	}

	// Settling up covers the payer's outstanding shares of the
	// recipient's expenses.
	if err := s.store.MarkSplitsSettled(ctx, fromUserID, in.ToUserID); err != nil {
		slog.Error("failed to mark splits settled",
			"from", fromUserID, "to", in.ToUserID, "error", err)
	}

	slog.Info("Settlement recorded",
		"settlement_id", settlement.ID,
		"from", fromUserID,
		"to", in.ToUserID,
		"amount", settlement.Amount.StringFixed(2),
	)
	return settlement, nil
}

// List returns settlements the user sent or received, newest first.
func (s *SettlementService) List(ctx context.Context, userID string) ([]models.Settlement, error) {
	return s.store.ListSettlementsForUser(ctx, userID)
}
