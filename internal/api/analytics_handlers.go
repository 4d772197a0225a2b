package api

import (
	"net/http"
	"strconv"

	"github.com/divvyup/divvyup/internal/currency"
	"github.com/divvyup/divvyup/internal/middleware"
)

const defaultPeriodDays = 30

// analyticsParams reads the shared period/currency query parameters.
// Returns false after writing a 400 when a parameter is malformed.
func analyticsParams(w http.ResponseWriter, r *http.Request) (int, string, bool) {
	periodDays := defaultPeriodDays
	if raw := r.URL.Query().Get("period"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeMessage(w, http.StatusBadRequest, "period must be a positive number of days")
			return 0, "", false
		}
		periodDays = n
	}

	code := r.URL.Query().Get("currency")
	if code == "" {
		code = "USD"
	}
	if !currency.IsSupported(code) {
		writeMessage(w, http.StatusBadRequest, "unsupported currency: "+code)
		return 0, "", false
	}
	return periodDays, code, true
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	periodDays, code, ok := analyticsParams(w, r)
	if !ok {
		return
	}

	userID := middleware.GetUserID(r.Context())
	report, err := s.analytics.Generate(r.Context(), userID, periodDays, code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	periodDays, code, ok := analyticsParams(w, r)
	if !ok {
		return
	}

	userID := middleware.GetUserID(r.Context())
	ctx := r.Context()

	sheet, err := s.balances.Compute(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	report, err := s.analytics.Generate(ctx, userID, periodDays, code)
	if err != nil {
		writeError(w, err)
		return
	}
	recent, err := s.expenses.List(ctx, userID, 10)
	if err != nil {
		writeError(w, err)
		return
	}

	recentViews := make([]expenseView, len(recent))
	for i, d := range recent {
		recentViews[i] = toExpenseDetailView(d)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"balances":       toBalanceView(sheet),
		"overview":       report.Overview,
		"insights":       report.Overview.Insights,
		"recentExpenses": recentViews,
	})
}
