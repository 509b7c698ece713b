package dto

import "github.com/shopspring/decimal"

type PayDebtRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

type DebtPaymentResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt string          `json:"created_at"`
}

type DebtResponse struct {
	ID         string                `json:"id"`
	SaleCode   string                `json:"sale_code"`
	Customer   string                `json:"customer"`
	AmountDue  decimal.Decimal       `json:"amount_due"`
	AmountPaid decimal.Decimal       `json:"amount_paid"`
	Remaining  decimal.Decimal       `json:"remaining"`
	Status     string                `json:"status"`
	DueDate    string                `json:"due_date,omitempty"`
	Payments   []DebtPaymentResponse `json:"payments,omitempty"`
	CreatedAt  string                `json:"created_at"`
}

// DebtFilter is bound from the query string of GET /v1/debts.
type DebtFilter struct {
	CustomerID string `form:"customer_id" validate:"omitempty,uuid"`
	Status     string `form:"status"      validate:"omitempty,oneof=unpaid partially_paid paid all"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type DebtListResponse struct {
	Data  []DebtResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
