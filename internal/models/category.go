package models

// Category is an expense category with display metadata.
type Category struct {
	// ID is the unique identifier for the category (UUID format).
	ID string

	// Name is the display name (e.g., "Food & Dining").
	Name string

	// Icon is a CSS icon class used by the frontend.
	Icon string

	// Color is the chart color associated with the category.
	Color string
}

// DefaultCategoryColor is used for expenses without a category.
const DefaultCategoryColor = "#8B5CF6"

// UncategorizedName labels expenses that have no category assigned.
const UncategorizedName = "Uncategorized"
