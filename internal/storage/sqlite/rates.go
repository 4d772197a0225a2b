package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/divvyup/divvyup/internal/storage"
)

// GetExchangeRate returns a cached exchange rate and when it was stored.
func (s *SQLiteStore) GetExchangeRate(ctx context.Context, from, to string) (decimal.Decimal, time.Time, error) {
	var rate string
	var updatedAt int64
	err := s.db.QueryRowContext(ctx,
		"SELECT rate, updated_at FROM exchange_rates WHERE from_currency = ? AND to_currency = ?",
		from, to,
	).Scan(&rate, &updatedAt)

	if err == sql.ErrNoRows {
		return decimal.Zero, time.Time{}, fmt.Errorf("rate %s/%s: %w", from, to, storage.ErrNotFound)
	}
	if err != nil {
		return decimal.Zero, time.Time{}, fmt.Errorf("failed to get exchange rate: %w", err)
	}

	d, err := scanAmount(rate)
	if err != nil {
		return decimal.Zero, time.Time{}, err
	}
	return d, time.Unix(updatedAt, 0), nil
}

// PutExchangeRate stores or refreshes a cached exchange rate.
func (s *SQLiteStore) PutExchangeRate(ctx context.Context, from, to string, rate decimal.Decimal) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exchange_rates (from_currency, to_currency, rate, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(from_currency, to_currency) DO UPDATE SET rate = excluded.rate, updated_at = excluded.updated_at`,
		from, to, rate.String(), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to put exchange rate: %w", err)
	}
	return nil
}
