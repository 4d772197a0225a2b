package ledger

import (
	"strings"
	"testing"
)

func TestGenerateInsights(t *testing.T) {
	tests := []struct {
		name         string
		input        InsightInput
		validateFunc func(t *testing.T, insights []string)
	}{
		{
			name:  "no activity returns the default messages",
			input: InsightInput{},
			validateFunc: func(t *testing.T, insights []string) {
				if len(insights) != 2 {
					t.Fatalf("got %d insights, want 2 defaults", len(insights))
				}
				if !strings.Contains(insights[0], "Keep tracking your expenses") {
					t.Errorf("unexpected first default: %q", insights[0])
				}
			},
		},
		{
			name: "low daily spending with activity is praised",
			input: InsightInput{
				TotalSpent: dec("40"),
				AvgPerDay:  dec("4"),
			},
			validateFunc: func(t *testing.T, insights []string) {
				if !containsSubstring(insights, "under control") {
					t.Errorf("missing low-spend praise in %v", insights)
				}
			},
		},
		{
			name: "high daily spending warns",
			input: InsightInput{
				AvgPerDay: dec("75"),
			},
			validateFunc: func(t *testing.T, insights []string) {
				if !containsSubstring(insights, "more than $50 per day") {
					t.Errorf("missing daily budget warning in %v", insights)
				}
			},
		},
		{
			name: "dominant category is called out",
			input: InsightInput{
				TotalSpent: dec("100"),
				AvgPerDay:  dec("20"),
				Categories: []CategoryStat{
					{Name: "Travel", Amount: dec("55"), Percentage: dec("55.0")},
					{Name: "Shopping", Amount: dec("45"), Percentage: dec("45.0")},
				},
			},
			validateFunc: func(t *testing.T, insights []string) {
				if !containsSubstring(insights, "Travel accounts for 55.0% of your spending") {
					t.Errorf("missing category concentration insight in %v", insights)
				}
			},
		},
		{
			name: "food categories are summed across names",
			input: InsightInput{
				TotalSpent: dec("100"),
				AvgPerDay:  dec("20"),
				Categories: []CategoryStat{
					{Name: "Food & Dining", Amount: dec("25"), Percentage: dec("25.0")},
					{Name: "Restaurants", Amount: dec("15"), Percentage: dec("15.0")},
					{Name: "Travel", Amount: dec("60"), Percentage: dec("60.0")},
				},
			},
			validateFunc: func(t *testing.T, insights []string) {
				if !containsSubstring(insights, "Food and dining represents 40.0%") {
					t.Errorf("missing food spend insight in %v", insights)
				}
			},
		},
		{
			name: "spending increase over threshold warns",
			input: InsightInput{
				AvgPerDay:   dec("20"),
				SpentChange: dec("35.5"),
			},
			validateFunc: func(t *testing.T, insights []string) {
				if !containsSubstring(insights, "increased by 35.5%") {
					t.Errorf("missing increase insight in %v", insights)
				}
			},
		},
		{
			name: "spending decrease is praised with absolute value",
			input: InsightInput{
				AvgPerDay:   dec("20"),
				SpentChange: dec("-25"),
			},
			validateFunc: func(t *testing.T, insights []string) {
				if !containsSubstring(insights, "reduced your spending by 25.0%") {
					t.Errorf("missing decrease insight in %v", insights)
				}
			},
		},
		{
			name: "net debt suggests settling",
			input: InsightInput{
				AvgPerDay:  dec("20"),
				TotalOwing: dec("80"),
				TotalOwed:  dec("30"),
			},
			validateFunc: func(t *testing.T, insights []string) {
				if !containsSubstring(insights, "You owe $50.00 more than you're owed") {
					t.Errorf("missing debt insight in %v", insights)
				}
			},
		},
		{
			name: "net credit suggests collecting",
			input: InsightInput{
				AvgPerDay: dec("20"),
				TotalOwed: dec("45.25"),
			},
			validateFunc: func(t *testing.T, insights []string) {
				if !containsSubstring(insights, "Others owe you $45.25 more than you owe") {
					t.Errorf("missing credit insight in %v", insights)
				}
			},
		},
		{
			name: "balanced metrics fall back to generic messages",
			input: InsightInput{
				AvgPerDay:   dec("25"),
				SpentChange: dec("5"),
			},
			validateFunc: func(t *testing.T, insights []string) {
				if len(insights) != 2 {
					t.Fatalf("got %d insights, want 2 fallbacks", len(insights))
				}
				if !strings.Contains(insights[0], "Keep tracking your expenses") {
					t.Errorf("unexpected first fallback: %q", insights[0])
				}
			},
		},
		{
			name: "never returns more than six insights",
			input: InsightInput{
				TotalSpent:  dec("1000"),
				TotalOwing:  dec("500"),
				AvgPerDay:   dec("100"),
				SpentChange: dec("50"),
				Categories: []CategoryStat{
					{Name: "Food & Dining", Amount: dec("600"), Percentage: dec("60.0")},
					{Name: "Travel", Amount: dec("400"), Percentage: dec("40.0")},
				},
			},
			validateFunc: func(t *testing.T, insights []string) {
				if len(insights) > 6 {
					t.Errorf("got %d insights, want at most 6", len(insights))
				}
				if len(insights) < 4 {
					t.Errorf("got %d insights, expected several rules to fire", len(insights))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insights := GenerateInsights(tt.input)
			if len(insights) == 0 {
				t.Fatal("insights must never be empty")
			}
			tt.validateFunc(t, insights)
		})
	}
}

func TestIsFoodCategory(t *testing.T) {
	food := []string{"Food & Dining", "food", "Fine Dining", "Thai Restaurant"}
	for _, name := range food {
		if !isFoodCategory(name) {
			t.Errorf("isFoodCategory(%q) = false, want true", name)
		}
	}
	notFood := []string{"Travel", "Shopping", "Utilities", ""}
	for _, name := range notFood {
		if isFoodCategory(name) {
			t.Errorf("isFoodCategory(%q) = true, want false", name)
		}
	}
}

func containsSubstring(list []string, sub string) bool {
	for _, s := range list {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
