package api

import (
	"github.com/divvyup/divvyup/internal/models"
)

// userView is the public shape of a user. The password hash never leaves
// the auth package boundary.
type userView struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	CreatedAt int64  `json:"createdAt"`
}

func toUserView(u *models.User) userView {
	return userView{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
	}
}

type splitView struct {
	ID         string  `json:"id"`
	UserID     string  `json:"userId"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
	Shares     int     `json:"shares"`
	Settled    bool    `json:"settled"`
}

func toSplitViews(splits []models.ExpenseSplit) []splitView {
	out := make([]splitView, len(splits))
	for i, sp := range splits {
		out[i] = splitView{
			ID:         sp.ID,
			UserID:     sp.UserID,
			Amount:     sp.Amount.InexactFloat64(),
			Percentage: sp.Percentage.InexactFloat64(),
			Shares:     sp.Shares,
			Settled:    sp.Settled,
		}
	}
	return out
}

type expenseView struct {
	ID            string      `json:"id"`
	Description   string      `json:"description"`
	Amount        float64     `json:"amount"`
	Currency      string      `json:"currency"`
	CategoryID    string      `json:"categoryId,omitempty"`
	CategoryName  string      `json:"categoryName,omitempty"`
	CategoryColor string      `json:"categoryColor,omitempty"`
	GroupID       string      `json:"groupId,omitempty"`
	PaidBy        string      `json:"paidBy"`
	PayerName     string      `json:"payerName,omitempty"`
	SplitType     string      `json:"splitType"`
	CreatedAt     int64       `json:"createdAt"`
	Splits        []splitView `json:"splits"`
}

func toExpenseView(e *models.Expense, splits []models.ExpenseSplit) expenseView {
	return expenseView{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount.InexactFloat64(),
		Currency:    e.Currency,
		CategoryID:  e.CategoryID,
		GroupID:     e.GroupID,
		PaidBy:      e.PaidBy,
		SplitType:   string(e.SplitType),
		CreatedAt:   e.CreatedAt,
		Splits:      toSplitViews(splits),
	}
}

func toExpenseDetailView(d models.ExpenseDetail) expenseView {
	v := toExpenseView(&d.Expense, d.Splits)
	v.CategoryName = d.CategoryName
	v.CategoryColor = d.CategoryColor
	v.PayerName = d.Payer.DisplayName()
	return v
}

type settlementView struct {
	ID         string  `json:"id"`
	FromUserID string  `json:"fromUserId"`
	ToUserID   string  `json:"toUserId"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	GroupID    string  `json:"groupId,omitempty"`
	Method     string  `json:"method,omitempty"`
	Note       string  `json:"note,omitempty"`
	CreatedAt  int64   `json:"createdAt"`
}

func toSettlementView(s *models.Settlement) settlementView {
	return settlementView{
		ID:         s.ID,
		FromUserID: s.FromUserID,
		ToUserID:   s.ToUserID,
		Amount:     s.Amount.InexactFloat64(),
		Currency:   s.Currency,
		GroupID:    s.GroupID,
		Method:     s.Method,
		Note:       s.Note,
		CreatedAt:  s.CreatedAt,
	}
}

type categoryView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color"`
}

type friendBalanceView struct {
	Friend  userView `json:"friend"`
	Balance float64  `json:"balance"`
}

type balanceView struct {
	TotalOwed      float64             `json:"totalOwed"`
	TotalOwing     float64             `json:"totalOwing"`
	NetBalance     float64             `json:"netBalance"`
	FriendBalances []friendBalanceView `json:"friendBalances"`
}
