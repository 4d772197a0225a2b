package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/divvyup/divvyup/internal/models"
)

// CreateSettlement persists a new settlement to the database.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}
	if settlement.Currency == "" {
		settlement.Currency = "USD"
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settlements (id, from_user_id, to_user_id, amount, currency, group_id, method, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		settlement.ID, settlement.FromUserID, settlement.ToUserID,
		settlement.Amount.StringFixed(2), settlement.Currency,
		nullable(settlement.GroupID), nullable(settlement.Method), nullable(settlement.Note),
		settlement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}
	return nil
}

// ListSettlementsForUser retrieves settlements the user sent or received,
// newest first.
func (s *SQLiteStore) ListSettlementsForUser(ctx context.Context, userID string) ([]models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, from_user_id, to_user_id, amount, currency,
		        COALESCE(group_id, ''), COALESCE(method, ''), COALESCE(note, ''), created_at
		 FROM settlements
		 WHERE from_user_id = ? OR to_user_id = ?
		 ORDER BY created_at DESC`,
		userID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []models.Settlement
	for rows.Next() {
		var st models.Settlement
		var amount string
		if err := rows.Scan(&st.ID, &st.FromUserID, &st.ToUserID, &amount, &st.Currency,
			&st.GroupID, &st.Method, &st.Note, &st.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		if st.Amount, err = scanAmount(amount); err != nil {
			return nil, err
		}
		settlements = append(settlements, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}
	return settlements, nil
}

// MarkSplitsSettled flags the user's unsettled splits on expenses paid by
// payerID as settled.
func (s *SQLiteStore) MarkSplitsSettled(ctx context.Context, userID, payerID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE expense_splits
		 SET settled = 1, settled_at = ?
		 WHERE user_id = ? AND settled = 0
		   AND expense_id IN (SELECT id FROM expenses WHERE paid_by = ?)`,
		time.Now().Unix(), userID, payerID)
	if err != nil {
		return fmt.Errorf("failed to mark splits settled: %w", err)
	}
	return nil
}
