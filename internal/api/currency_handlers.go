package api

import (
	"net/http"

	"github.com/divvyup/divvyup/internal/currency"
)

func (s *Server) handleCurrencies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"currencies": currency.Supported})
}

func (s *Server) handleExchangeRate(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		writeMessage(w, http.StatusBadRequest, "from and to currencies are required")
		return
	}
	if !currency.IsSupported(from) || !currency.IsSupported(to) {
		writeMessage(w, http.StatusBadRequest, "unsupported currency pair")
		return
	}

	rate, err := s.fx.Rate(r.Context(), from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"from": from,
		"to":   to,
		"rate": rate.InexactFloat64(),
	})
}
