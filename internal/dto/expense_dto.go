package dto

import "github.com/shopspring/decimal"

type CreateExpenseRequest struct {
	Name     string          `json:"name"     validate:"required"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"   validate:"required,gt=0"`
	// SpentAt (YYYY-MM-DD); empty = today.
	SpentAt string `json:"spent_at" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateExpenseRequest struct {
	Name     string           `json:"name"`
	Category string           `json:"category"`
	Amount   *decimal.Decimal `json:"amount" validate:"omitempty,gt=0"`
}

type ExpenseResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Source   string          `json:"source"`
	SpentAt  string          `json:"spent_at"`
}

// ExpenseFilter is bound from the query string of GET /v1/expenses.
type ExpenseFilter struct {
	From     string `form:"from"   validate:"omitempty,datetime=2006-01-02"`
	To       string `form:"to"     validate:"omitempty,datetime=2006-01-02"`
	Source   string `form:"source" validate:"omitempty,oneof=manual system all"`
	Category string `form:"category"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ExpenseListResponse struct {
	Data  []ExpenseResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
