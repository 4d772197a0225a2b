package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CategoryStat is one category's aggregated spend within the report window.
type CategoryStat struct {
	Name       string
	Amount     decimal.Decimal
	Percentage decimal.Decimal // share of total spend, one decimal place
}

// InsightInput carries the aggregated metrics the insight rules evaluate.
type InsightInput struct {
	TotalSpent  decimal.Decimal
	TotalOwed   decimal.Decimal // others owe the user
	TotalOwing  decimal.Decimal // the user owes others
	AvgPerDay   decimal.Decimal
	SpentChange decimal.Decimal // percent vs previous period
	Categories  []CategoryStat  // sorted descending by amount
}

const maxInsights = 6

var (
	dailyCeiling  = decimal.NewFromInt(50)
	dailyFloor    = decimal.NewFromInt(10)
	topCatLimit   = decimal.NewFromInt(40)
	foodLimit     = decimal.NewFromInt(30)
	changeLimit   = decimal.NewFromInt(20)
	changeLimitLo = decimal.NewFromInt(-20)
)

// foodKeywords match category names counted toward the food-spend rule.
var foodKeywords = []string{"food", "dining", "restaurant"}

// GenerateInsights evaluates a fixed, ordered rule set over aggregated
// spending metrics and returns up to six human-readable observations.
// When no rule fires it returns two generic encouragement messages.
// The evaluation is deterministic and stateless.
func GenerateInsights(in InsightInput) []string {
	var insights []string

	// Daily spending level. The praise branch requires actual spending so
	// an empty ledger falls through to the default messages.
	if in.AvgPerDay.GreaterThan(dailyCeiling) {
		insights = append(insights, "You're spending more than $50 per day on average. Consider setting a daily budget.")
	} else if in.TotalSpent.IsPositive() && in.AvgPerDay.LessThan(dailyFloor) {
		insights = append(insights, "Great job keeping your daily spending under control!")
	}

	if len(in.Categories) > 0 {
		// Concentration in the top category.
		top := in.Categories[0]
		if top.Percentage.GreaterThan(topCatLimit) {
			insights = append(insights, fmt.Sprintf(
				"%s accounts for %s%% of your spending. Consider if this aligns with your priorities.",
				top.Name, top.Percentage.StringFixed(1)))
		}

		// Combined food-related spend.
		if in.TotalSpent.IsPositive() {
			var foodSpend decimal.Decimal
			for _, cat := range in.Categories {
				if isFoodCategory(cat.Name) {
					foodSpend = foodSpend.Add(cat.Amount)
				}
			}
			if foodSpend.IsPositive() {
				foodPct := foodSpend.Mul(hundred).Div(in.TotalSpent)
				if foodPct.GreaterThan(foodLimit) {
					insights = append(insights, fmt.Sprintf(
						"Food and dining represents %s%% of your spending. Meal planning could help reduce costs.",
						foodPct.StringFixed(1)))
				}
			}
		}
	}

	// Period-over-period trend.
	if in.SpentChange.GreaterThan(changeLimit) {
		insights = append(insights, fmt.Sprintf(
			"Your spending increased by %s%% compared to the previous period. Review recent expenses for optimization opportunities.",
			in.SpentChange.StringFixed(1)))
	} else if in.SpentChange.LessThan(changeLimitLo) {
		insights = append(insights, fmt.Sprintf(
			"Excellent! You reduced your spending by %s%% compared to the previous period.",
			in.SpentChange.Abs().StringFixed(1)))
	}

	// Net debt or credit position.
	if in.TotalOwing.GreaterThan(in.TotalOwed) {
		insights = append(insights, fmt.Sprintf(
			"You owe $%s more than you're owed. Consider settling some balances.",
			in.TotalOwing.Sub(in.TotalOwed).StringFixed(2)))
	} else if in.TotalOwed.GreaterThan(in.TotalOwing) {
		insights = append(insights, fmt.Sprintf(
			"Others owe you $%s more than you owe. Time to collect!",
			in.TotalOwed.Sub(in.TotalOwing).StringFixed(2)))
	}

	if len(insights) == 0 {
		insights = append(insights,
			"Keep tracking your expenses to identify spending patterns and opportunities for savings.",
			"Regular expense reviews help maintain financial awareness and control.")
	}

	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	return insights
}

func isFoodCategory(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range foodKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
