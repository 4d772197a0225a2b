package service

import (
	"context"

	"github.com/divvyup/divvyup/internal/ledger"
	"github.com/divvyup/divvyup/internal/storage"
)

// AnalyticsService produces windowed spending reports.
type AnalyticsService struct {
	analyzer *ledger.Analyzer
}

// NewAnalyticsService creates an AnalyticsService over the given store and
// currency converter.
func NewAnalyticsService(store storage.Store, fx ledger.Converter) *AnalyticsService {
	return &AnalyticsService{analyzer: ledger.NewAnalyzer(store, fx)}
}

// Generate builds the report for one user. periodDays below one is clamped
// by the analyzer.
func (s *AnalyticsService) Generate(ctx context.Context, userID string, periodDays int, currency string) (*ledger.Report, error) {
	return s.analyzer.Generate(ctx, userID, periodDays, currency)
}
