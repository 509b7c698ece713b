package dto

import "github.com/shopspring/decimal"

type CreateCustomerRequest struct {
	Name    string  `json:"name"    validate:"required"`
	Phone   string  `json:"phone"   validate:"required,min=6,max=20"`
	Address *string `json:"address"`
}

type UpdateCustomerRequest struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone" validate:"omitempty,min=6,max=20"`
	Address *string `json:"address"`
}

type CustomerResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Phone           string          `json:"phone"`
	Address         string          `json:"address,omitempty"`
	Active          bool            `json:"active"`
	OutstandingDebt decimal.Decimal `json:"outstanding_debt"`
}

type CustomerListResponse struct {
	Data  []CustomerResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// CustomerFilter is bound from the query string of GET /v1/customers.
type CustomerFilter struct {
	Name  string `form:"name"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}
