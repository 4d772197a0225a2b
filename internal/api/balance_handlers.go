package api

import (
	"net/http"

	"github.com/divvyup/divvyup/internal/middleware"
	"github.com/divvyup/divvyup/internal/service"
)

func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	sheet, err := s.balances.Compute(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBalanceView(sheet))
}

func toBalanceView(sheet *service.BalanceSheet) balanceView {
	friends := make([]friendBalanceView, len(sheet.FriendBalances))
	for i, fb := range sheet.FriendBalances {
		friends[i] = friendBalanceView{
			Friend:  toUserView(&fb.Friend),
			Balance: fb.Balance,
		}
	}
	return balanceView{
		TotalOwed:      sheet.TotalOwed,
		TotalOwing:     sheet.TotalOwing,
		NetBalance:     sheet.TotalOwed - sheet.TotalOwing,
		FriendBalances: friends,
	}
}
