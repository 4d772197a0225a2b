package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/divvyup/divvyup/internal/models"
)

// defaultCategories is the seed set inserted on first startup.
var defaultCategories = []models.Category{
	{Name: "Food & Dining", Icon: "fas fa-utensils", Color: "orange"},
	{Name: "Transportation", Icon: "fas fa-car", Color: "blue"},
	{Name: "Entertainment", Icon: "fas fa-film", Color: "purple"},
	{Name: "Shopping", Icon: "fas fa-shopping-bag", Color: "pink"},
	{Name: "Utilities", Icon: "fas fa-home", Color: "green"},
	{Name: "Travel", Icon: "fas fa-plane", Color: "cyan"},
	{Name: "Other", Icon: "fas fa-question", Color: "gray"},
}

// SeedCategories inserts the default category set, skipping names that
// already exist.
func (s *SQLiteStore) SeedCategories(ctx context.Context) error {
	for _, cat := range defaultCategories {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO categories (id, name, icon, color) VALUES (?, ?, ?, ?)
			 ON CONFLICT(name) DO NOTHING`,
			uuid.New().String(), cat.Name, cat.Icon, cat.Color,
		)
		if err != nil {
			return fmt.Errorf("failed to seed category %q: %w", cat.Name, err)
		}
	}
	return nil
}

// ListCategories returns all expense categories ordered by name.
func (s *SQLiteStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, icon, color FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Icon, &cat.Color); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return categories, nil
}
