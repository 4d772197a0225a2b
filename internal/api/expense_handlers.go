package api

import (
	"net/http"
	"strconv"

	"github.com/divvyup/divvyup/internal/middleware"
	"github.com/divvyup/divvyup/internal/service"
)

const defaultExpenseLimit = 50

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var in service.CreateExpenseInput
	if !decodeBody(w, r, &in) {
		return
	}
	if in.Description == "" {
		writeMessage(w, http.StatusBadRequest, "description is required")
		return
	}

	userID := middleware.GetUserID(r.Context())
	expense, splits, err := s.expenses.Create(r.Context(), userID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseView(expense, splits))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	limit := defaultExpenseLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeMessage(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	userID := middleware.GetUserID(r.Context())
	details, err := s.expenses.List(r.Context(), userID, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]expenseView, len(details))
	for i, d := range details {
		views[i] = toExpenseDetailView(d)
	}
	writeJSON(w, http.StatusOK, map[string]any{"expenses": views})
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.store.ListCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]categoryView, len(categories))
	for i, c := range categories {
		views[i] = categoryView{ID: c.ID, Name: c.Name, Icon: c.Icon, Color: c.Color}
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": views})
}
