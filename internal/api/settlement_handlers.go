package api

import (
	"net/http"

	"github.com/divvyup/divvyup/internal/middleware"
	"github.com/divvyup/divvyup/internal/service"
)

func (s *Server) handleCreateSettlement(w http.ResponseWriter, r *http.Request) {
	var in service.CreateSettlementInput
	if !decodeBody(w, r, &in) {
		return
	}

	userID := middleware.GetUserID(r.Context())
	settlement, err := s.settlements.Create(r.Context(), userID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSettlementView(settlement))
}

func (s *Server) handleListSettlements(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	settlements, err := s.settlements.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]settlementView, len(settlements))
	for i := range settlements {
		views[i] = toSettlementView(&settlements[i])
	}
	writeJSON(w, http.StatusOK, map[string]any{"settlements": views})
}
