package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/divvyup/divvyup/internal/models"
)

// trendDays is the fixed length of the spending-trend series, independent
// of the requested period.
const trendDays = 7

// comparisonMonths is the fixed length of the month-over-month series.
const comparisonMonths = 6

const defaultCurrency = "USD"

// ExpenseRow is one of the user's splits joined with its parent expense,
// category, and payer. It is the raw unit the analytics aggregation scans.
type ExpenseRow struct {
	ExpenseID      string
	Amount         decimal.Decimal // the user's split amount, native currency
	Currency       string
	CategoryName   string // empty when uncategorized
	CategoryColor  string
	PayerID        string
	PayerFirstName string
	PayerLastName  string
	CreatedAt      time.Time
}

// Reader is the slice of the persistence layer the analyzer reads from.
// All windows are half-open: [from, to).
type Reader interface {
	// ExpenseRowsInWindow returns the user's splits whose parent expense
	// was created inside the window, newest first.
	ExpenseRowsInWindow(ctx context.Context, userID string, from, to time.Time) ([]ExpenseRow, error)

	// SiblingSplits returns the other participants' splits of one expense.
	SiblingSplits(ctx context.Context, expenseID, excludeUserID string) ([]models.ExpenseSplit, error)

	// SumSplitsInWindow sums the user's split amounts (native currency,
	// no conversion) over the window.
	SumSplitsInWindow(ctx context.Context, userID string, from, to time.Time) (decimal.Decimal, error)
}

// Converter converts amounts between currencies. Implementations treat
// from == to as rate 1 without any network call and degrade to a cached or
// identity rate rather than failing when the rate source is unavailable.
type Converter interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error)
}

// TrendPoint is one day of the spending-trend series.
type TrendPoint struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// CategorySlice is one entry of the category breakdown.
type CategorySlice struct {
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
	Count      int     `json:"count"`
	Color      string  `json:"color"`
}

// MonthPoint is one month of the month-over-month comparison.
type MonthPoint struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// FriendSummary is a windowed per-counterparty position for display.
type FriendSummary struct {
	ID           string  `json:"id"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Balance      float64 `json:"balance"`
	ExpenseCount int     `json:"expenseCount"`
}

// Overview is the headline metrics block of a report.
type Overview struct {
	TotalSpent    float64  `json:"totalSpent"`
	TotalOwing    float64  `json:"totalOwing"`
	TotalOwed     float64  `json:"totalOwed"`
	AvgPerDay     float64  `json:"avgPerDay"`
	SpentChange   float64  `json:"spentChange"`
	ActiveDebts   int      `json:"activeDebts"`
	ActiveCredits int      `json:"activeCredits"`
	Insights      []string `json:"insights"`
}

// Report is the full time-windowed financial summary for one user.
type Report struct {
	Overview          Overview        `json:"overview"`
	SpendingTrend     []TrendPoint    `json:"spendingTrend"`
	CategoryBreakdown []CategorySlice `json:"categoryBreakdown"`
	MonthlyComparison []MonthPoint    `json:"monthlyComparison"`
	FriendBalances    []FriendSummary `json:"friendBalances"`
	Currency          string          `json:"currency"`
	Period            int             `json:"period"`
}

// Analyzer aggregates a user's ledger rows over a time window into a Report.
// It holds no mutable state; every call builds its accumulators fresh.
type Analyzer struct {
	store Reader
	fx    Converter
	now   func() time.Time
}

// NewAnalyzer creates an Analyzer over the given reader and converter.
func NewAnalyzer(store Reader, fx Converter) *Analyzer {
	return &Analyzer{store: store, fx: fx, now: time.Now}
}

type categoryAccum struct {
	amount decimal.Decimal
	count  int
	color  string
}

type friendAccum struct {
	balance   decimal.Decimal
	count     int
	firstName string
	lastName  string
}

// Generate produces the windowed report for a user.
//
// periodDays is clamped to at least one day so the per-day average is
// always defined. All displayed amounts are in targetCurrency, rounded to
// two decimal places; percentages to one.
func (a *Analyzer) Generate(ctx context.Context, userID string, periodDays int, targetCurrency string) (*Report, error) {
	if periodDays < 1 {
		periodDays = 1
	}
	if targetCurrency == "" {
		targetCurrency = defaultCurrency
	}

	now := a.now()
	windowStart := now.AddDate(0, 0, -periodDays)

	rows, err := a.store.ExpenseRowsInWindow(ctx, userID, windowStart, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load expense rows: %w", err)
	}

	totalSpent := decimal.Zero
	totalOwing := decimal.Zero // the user owes others
	totalOwed := decimal.Zero  // others owe the user
	categories := make(map[string]*categoryAccum)
	daily := make(map[string]decimal.Decimal)
	friends := make(map[string]*friendAccum)

	for _, row := range rows {
		from := row.Currency
		if from == "" {
			from = defaultCurrency
		}
		converted, err := a.fx.Convert(ctx, row.Amount, from, targetCurrency)
		if err != nil {
			return nil, fmt.Errorf("failed to convert amount: %w", err)
		}

		totalSpent = totalSpent.Add(converted)

		if row.PayerID != userID {
			totalOwing = totalOwing.Add(converted)
		} else {
			siblings, err := a.store.SiblingSplits(ctx, row.ExpenseID, userID)
			if err != nil {
				return nil, fmt.Errorf("failed to load sibling splits: %w", err)
			}
			for _, sib := range siblings {
				conv, err := a.fx.Convert(ctx, sib.Amount, from, targetCurrency)
				if err != nil {
					return nil, fmt.Errorf("failed to convert sibling amount: %w", err)
				}
				totalOwed = totalOwed.Add(conv)
			}
		}

		name := row.CategoryName
		if name == "" {
			name = models.UncategorizedName
		}
		cat, ok := categories[name]
		if !ok {
			color := row.CategoryColor
			if color == "" {
				color = models.DefaultCategoryColor
			}
			cat = &categoryAccum{color: color}
			categories[name] = cat
		}
		cat.amount = cat.amount.Add(converted)
		cat.count++

		dayKey := row.CreatedAt.Format("2006-01-02")
		daily[dayKey] = daily[dayKey].Add(converted)

		if row.PayerID != userID {
			fr, ok := friends[row.PayerID]
			if !ok {
				fr = &friendAccum{firstName: row.PayerFirstName, lastName: row.PayerLastName}
				friends[row.PayerID] = fr
			}
			fr.balance = fr.balance.Add(converted)
			fr.count++
		}
	}

	trend := a.spendingTrend(now, daily)
	breakdown, catStats := a.categoryBreakdown(categories, totalSpent)

	monthly, err := a.monthlyComparison(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	previousSpent, err := a.store.SumSplitsInWindow(ctx, userID, windowStart.AddDate(0, 0, -periodDays), windowStart)
	if err != nil {
		return nil, fmt.Errorf("failed to sum previous period: %w", err)
	}
	spentChange := decimal.Zero
	if previousSpent.IsPositive() {
		spentChange = totalSpent.Sub(previousSpent).Mul(hundred).Div(previousSpent)
	}

	avgPerDay := totalSpent.Div(decimal.NewFromInt(int64(periodDays)))

	friendList := sortedFriendSummaries(friends)
	activeCredits := 0
	for _, f := range friendList {
		if f.Balance > 0 {
			activeCredits++
		}
	}

	insights := GenerateInsights(InsightInput{
		TotalSpent:  totalSpent,
		TotalOwed:   totalOwed,
		TotalOwing:  totalOwing,
		AvgPerDay:   avgPerDay,
		SpentChange: spentChange,
		Categories:  catStats,
	})

	return &Report{
		Overview: Overview{
			TotalSpent:    round2f(totalSpent),
			TotalOwing:    round2f(totalOwing),
			TotalOwed:     round2f(totalOwed),
			AvgPerDay:     round2f(avgPerDay),
			SpentChange:   round1f(spentChange),
			ActiveDebts:   len(friends),
			ActiveCredits: activeCredits,
			Insights:      insights,
		},
		SpendingTrend:     trend,
		CategoryBreakdown: breakdown,
		MonthlyComparison: monthly,
		FriendBalances:    friendList,
		Currency:          targetCurrency,
		Period:            periodDays,
	}, nil
}

// spendingTrend builds the fixed seven-day series ending today. Days with
// no spending appear with a zero amount.
func (a *Analyzer) spendingTrend(now time.Time, daily map[string]decimal.Decimal) []TrendPoint {
	trend := make([]TrendPoint, 0, trendDays)
	for i := trendDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		amount := daily[day.Format("2006-01-02")]
		trend = append(trend, TrendPoint{
			Date:   day.Format("Jan 2"),
			Amount: round2f(amount),
		})
	}
	return trend
}

// categoryBreakdown sorts accumulated categories by amount descending and
// annotates each with its share of the total spend.
func (a *Analyzer) categoryBreakdown(categories map[string]*categoryAccum, totalSpent decimal.Decimal) ([]CategorySlice, []CategoryStat) {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := categories[names[i]], categories[names[j]]
		if !a.amount.Equal(b.amount) {
			return a.amount.GreaterThan(b.amount)
		}
		return names[i] < names[j]
	})

	breakdown := make([]CategorySlice, 0, len(names))
	stats := make([]CategoryStat, 0, len(names))
	for _, name := range names {
		cat := categories[name]
		pct := decimal.Zero
		if totalSpent.IsPositive() {
			pct = cat.amount.Mul(hundred).DivRound(totalSpent, 1)
		}
		breakdown = append(breakdown, CategorySlice{
			Name:       name,
			Value:      round2f(cat.amount),
			Percentage: pct.InexactFloat64(),
			Count:      cat.count,
			Color:      cat.color,
		})
		stats = append(stats, CategoryStat{Name: name, Amount: cat.amount, Percentage: pct})
	}
	return breakdown, stats
}

// monthlyComparison sums the user's raw split amounts for each of the last
// six calendar months. Each month is a separate windowed query, unbounded
// by the report period.
func (a *Analyzer) monthlyComparison(ctx context.Context, userID string, now time.Time) ([]MonthPoint, error) {
	year, month, _ := now.Date()
	anchor := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())

	monthly := make([]MonthPoint, 0, comparisonMonths)
	for i := comparisonMonths - 1; i >= 0; i-- {
		start := anchor.AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)
		sum, err := a.store.SumSplitsInWindow(ctx, userID, start, end)
		if err != nil {
			return nil, fmt.Errorf("failed to sum month %s: %w", start.Format("2006-01"), err)
		}
		monthly = append(monthly, MonthPoint{
			Month:  start.Format("Jan"),
			Amount: round2f(sum),
		})
	}
	return monthly, nil
}

// sortedFriendSummaries orders windowed counterparty positions by absolute
// balance, largest first.
func sortedFriendSummaries(friends map[string]*friendAccum) []FriendSummary {
	ids := make([]string, 0, len(friends))
	for id := range friends {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := friends[ids[i]].balance.Abs(), friends[ids[j]].balance.Abs()
		if !a.Equal(b) {
			return a.GreaterThan(b)
		}
		return ids[i] < ids[j]
	})

	out := make([]FriendSummary, 0, len(ids))
	for _, id := range ids {
		fr := friends[id]
		out = append(out, FriendSummary{
			ID:           id,
			FirstName:    fr.firstName,
			LastName:     fr.lastName,
			Balance:      round2f(fr.balance),
			ExpenseCount: fr.count,
		})
	}
	return out
}

func round2f(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func round1f(d decimal.Decimal) float64 {
	return d.Round(1).InexactFloat64()
}
