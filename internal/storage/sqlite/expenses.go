package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/divvyup/divvyup/internal/ledger"
	"github.com/divvyup/divvyup/internal/models"
)

// CreateExpense persists an expense and its splits in one transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense, splits []models.ExpenseSplit) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	if expense.Currency == "" {
		expense.Currency = "USD"
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, description, amount, currency, category_id, group_id, paid_by, split_type, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.Description, expense.Amount.StringFixed(2), expense.Currency,
		nullable(expense.CategoryID), nullable(expense.GroupID),
		expense.PaidBy, string(expense.SplitType), expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i := range splits {
		split := &splits[i]
		if split.ID == "" {
			split.ID = uuid.New().String()
		}
		split.ExpenseID = expense.ID
		if split.Shares <= 0 {
			split.Shares = 1
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO expense_splits (id, expense_id, user_id, amount, percentage, shares, settled, settled_at)
			 VALUES (?, ?, ?, ?, ?, ?, 0, NULL)`,
			split.ID, split.ExpenseID, split.UserID,
			split.Amount.StringFixed(2), split.Percentage.StringFixed(2), split.Shares,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListExpenses returns the expenses the user participates in, newest first,
// with category, payer and all splits attached.
func (s *SQLiteStore) ListExpenses(ctx context.Context, userID string, limit int) ([]models.ExpenseDetail, error) {
	query := `
		SELECT e.id, e.description, e.amount, e.currency,
		       COALESCE(e.category_id, ''), COALESCE(e.group_id, ''),
		       e.paid_by, e.split_type, e.created_at,
		       COALESCE(c.name, ''), COALESCE(c.color, ''),
		       u.id, u.email, u.first_name, u.last_name
		FROM expenses e
		JOIN expense_splits my ON my.expense_id = e.id AND my.user_id = ?
		LEFT JOIN categories c ON c.id = e.category_id
		JOIN users u ON u.id = e.paid_by
		ORDER BY e.created_at DESC`
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var details []models.ExpenseDetail
	for rows.Next() {
		var d models.ExpenseDetail
		var amount, splitType string
		if err := rows.Scan(
			&d.Expense.ID, &d.Expense.Description, &amount, &d.Expense.Currency,
			&d.Expense.CategoryID, &d.Expense.GroupID,
			&d.Expense.PaidBy, &splitType, &d.Expense.CreatedAt,
			&d.CategoryName, &d.CategoryColor,
			&d.Payer.ID, &d.Payer.Email, &d.Payer.FirstName, &d.Payer.LastName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		if d.Expense.Amount, err = scanAmount(amount); err != nil {
			return nil, err
		}
		d.Expense.SplitType = models.SplitType(splitType)
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for i := range details {
		splits, err := s.splitsForExpense(ctx, details[i].Expense.ID)
		if err != nil {
			return nil, err
		}
		details[i].Splits = splits
	}
	return details, nil
}

// splitsForExpense loads all splits of one expense.
func (s *SQLiteStore) splitsForExpense(ctx context.Context, expenseID string) ([]models.ExpenseSplit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, expense_id, user_id, amount, COALESCE(percentage, '0'), shares, settled, COALESCE(settled_at, 0)
		 FROM expense_splits WHERE expense_id = ?`, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	return scanSplits(rows)
}

// SplitsForUser returns every split owned by the user joined to the payer
// of its parent expense.
func (s *SQLiteStore) SplitsForUser(ctx context.Context, userID string) ([]ledger.SplitRow, error) {
	return s.querySplitRows(ctx,
		`SELECT s.expense_id, s.user_id, e.paid_by, s.amount
		 FROM expense_splits s
		 JOIN expenses e ON e.id = s.expense_id
		 WHERE s.user_id = ?
		 ORDER BY e.created_at, s.id`, userID)
}

// SplitsForPayer returns every split of every expense the user paid.
func (s *SQLiteStore) SplitsForPayer(ctx context.Context, userID string) ([]ledger.SplitRow, error) {
	return s.querySplitRows(ctx,
		`SELECT s.expense_id, s.user_id, e.paid_by, s.amount
		 FROM expenses e
		 JOIN expense_splits s ON s.expense_id = e.id
		 WHERE e.paid_by = ?
		 ORDER BY e.created_at, s.id`, userID)
}

func (s *SQLiteStore) querySplitRows(ctx context.Context, query string, args ...any) ([]ledger.SplitRow, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query split rows: %w", err)
	}
	defer rows.Close()

	var out []ledger.SplitRow
	for rows.Next() {
		var row ledger.SplitRow
		var amount string
		if err := rows.Scan(&row.ExpenseID, &row.UserID, &row.PayerID, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan split row: %w", err)
		}
		if row.Amount, err = scanAmount(amount); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate split rows: %w", err)
	}
	return out, nil
}

// ExpenseRowsInWindow returns the user's splits whose parent expense falls
// in [from, to), joined with category and payer, newest first.
func (s *SQLiteStore) ExpenseRowsInWindow(ctx context.Context, userID string, from, to time.Time) ([]ledger.ExpenseRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT e.id, s.amount, e.currency,
		        COALESCE(c.name, ''), COALESCE(c.color, ''),
		        e.paid_by, u.first_name, u.last_name, e.created_at
		 FROM expense_splits s
		 JOIN expenses e ON e.id = s.expense_id
		 LEFT JOIN categories c ON c.id = e.category_id
		 JOIN users u ON u.id = e.paid_by
		 WHERE s.user_id = ? AND e.created_at >= ? AND e.created_at < ?
		 ORDER BY e.created_at DESC`,
		userID, from.Unix(), to.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to query expense rows: %w", err)
	}
	defer rows.Close()

	var out []ledger.ExpenseRow
	for rows.Next() {
		var row ledger.ExpenseRow
		var amount string
		var createdAt int64
		if err := rows.Scan(&row.ExpenseID, &amount, &row.Currency,
			&row.CategoryName, &row.CategoryColor,
			&row.PayerID, &row.PayerFirstName, &row.PayerLastName, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		if row.Amount, err = scanAmount(amount); err != nil {
			return nil, err
		}
		row.CreatedAt = time.Unix(createdAt, 0)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense rows: %w", err)
	}
	return out, nil
}

// SiblingSplits returns the other participants' splits of one expense.
func (s *SQLiteStore) SiblingSplits(ctx context.Context, expenseID, excludeUserID string) ([]models.ExpenseSplit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, expense_id, user_id, amount, COALESCE(percentage, '0'), shares, settled, COALESCE(settled_at, 0)
		 FROM expense_splits WHERE expense_id = ? AND user_id != ?`,
		expenseID, excludeUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sibling splits: %w", err)
	}
	defer rows.Close()

	return scanSplits(rows)
}

// SumSplitsInWindow sums the user's split amounts over [from, to) in the
// expenses' native currencies. Summation happens in Go with decimals to
// avoid binary floating point on money.
func (s *SQLiteStore) SumSplitsInWindow(ctx context.Context, userID string, from, to time.Time) (decimal.Decimal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.amount
		 FROM expense_splits s
		 JOIN expenses e ON e.id = s.expense_id
		 WHERE s.user_id = ? AND e.created_at >= ? AND e.created_at < ?`,
		userID, from.Unix(), to.Unix())
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum splits: %w", err)
	}
	defer rows.Close()

	sum := decimal.Zero
	for rows.Next() {
		var amount string
		if err := rows.Scan(&amount); err != nil {
			return decimal.Zero, fmt.Errorf("failed to scan amount: %w", err)
		}
		d, err := scanAmount(amount)
		if err != nil {
			return decimal.Zero, err
		}
		sum = sum.Add(d)
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("failed to iterate amounts: %w", err)
	}
	return sum, nil
}

func scanSplits(rows *sql.Rows) ([]models.ExpenseSplit, error) {
	var splits []models.ExpenseSplit
	for rows.Next() {
		var split models.ExpenseSplit
		var amount, percentage string
		if err := rows.Scan(&split.ID, &split.ExpenseID, &split.UserID,
			&amount, &percentage, &split.Shares, &split.Settled, &split.SettledAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		var err error
		if split.Amount, err = scanAmount(amount); err != nil {
			return nil, err
		}
		if split.Percentage, err = scanAmount(percentage); err != nil {
			return nil, err
		}
		splits = append(splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}
	return splits, nil
}

// nullable maps empty strings to NULL for optional foreign keys.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
