// Package currency supplies exchange rates and currency conversion for the
// ledger engine. Rates come from an external HTTP API and are cached in the
// store; a cached rate is reused while it is under an hour old. When the
// API is unreachable the converter degrades to the last cached rate, or to
// an identity rate when nothing is cached, instead of failing the request.
package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// cacheTTL is how long a cached exchange rate stays fresh.
const cacheTTL = time.Hour

// DefaultAPIURL is the free exchange-rate endpoint used when no other URL
// is configured. The base currency is appended to the path.
const DefaultAPIURL = "https://api.exchangerate-api.com/v4/latest/"

// RateCache persists fetched exchange rates between requests.
type RateCache interface {
	// GetExchangeRate returns the cached rate and when it was stored.
	// Implementations return an error satisfying errors.Is(err,
	// storage.ErrNotFound) semantics when no rate is cached; the service
	// only distinguishes "found" from "not found".
	GetExchangeRate(ctx context.Context, from, to string) (decimal.Decimal, time.Time, error)

	// PutExchangeRate stores or refreshes a rate.
	PutExchangeRate(ctx context.Context, from, to string, rate decimal.Decimal) error
}

// Service resolves exchange rates with a store-backed cache.
type Service struct {
	cache   RateCache
	client  *http.Client
	baseURL string
	now     func() time.Time
}

// New creates a currency Service. baseURL may be empty to use DefaultAPIURL.
func New(cache RateCache, baseURL string) *Service {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	return &Service{
		cache:   cache,
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		now:     time.Now,
	}
}

// Rate returns the exchange rate between two ISO 4217 currencies.
// Identical currencies short-circuit to 1 without touching the cache or the
// network. The returned error is always nil today; the signature leaves
// room for fakes that need to fail in tests.
func (s *Service) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	one := decimal.NewFromInt(1)
	if from == to {
		return one, nil
	}

	cached, updatedAt, cacheErr := s.cache.GetExchangeRate(ctx, from, to)
	if cacheErr == nil && s.now().Sub(updatedAt) < cacheTTL {
		return cached, nil
	}

	rate, err := s.fetchRate(ctx, from, to)
	if err != nil {
		slog.Warn("exchange rate fetch failed", "from", from, "to", to, "error", err)
		if cacheErr == nil {
			// Stale cache beats no rate at all.
			return cached, nil
		}
		return one, nil
	}

	if err := s.cache.PutExchangeRate(ctx, from, to, rate); err != nil {
		slog.Warn("failed to cache exchange rate", "from", from, "to", to, "error", err)
	}
	return rate, nil
}

// Convert converts an amount between currencies at the current rate.
func (s *Service) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	rate, err := s.Rate(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate), nil
}

// fetchRate queries the exchange-rate API for the from-currency's rate table
// and extracts the target rate.
func (s *Service) fetchRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+from, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build rate request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("rate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("rate API returned status %d", resp.StatusCode)
	}

	var payload struct {
		Rates map[string]decimal.Decimal `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode rate response: %w", err)
	}

	rate, ok := payload.Rates[to]
	if !ok || !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("no rate for %s in %s response", to, from)
	}
	return rate, nil
}
