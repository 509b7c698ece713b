package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

// SaleItemRequest references a product, or a (product, variant) pair when the
// product is a variant parent. Prices are never taken from the client.
type SaleItemRequest struct {
	ProductID string  `json:"product_id" validate:"required,uuid"`
	VariantID *string `json:"variant_id" validate:"omitempty,uuid"`
	Quantity  int     `json:"quantity"   validate:"required,min=1"`
}

type CreateSaleRequest struct {
	Items         []SaleItemRequest `json:"items"           validate:"required,min=1,dive"`
	PaymentMethod string            `json:"payment_method"  validate:"required,oneof=cash transfer credit"`
	// AmountTendered is only meaningful for cash; transfer is forced to the
	// total and credit to zero.
	AmountTendered decimal.Decimal `json:"amount_tendered" validate:"min=0"`
	// CustomerID is required when PaymentMethod is credit.
	CustomerID *string `json:"customer_id" validate:"omitempty,uuid"`
	// DueDate (YYYY-MM-DD) is optional for credit sales.
	DueDate *string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

// SaleFilter is bound from the query string of GET /v1/sales.
type SaleFilter struct {
	Date  string `form:"date"` // YYYY-MM-DD; empty = today
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type SaleItemResponse struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type SaleResponse struct {
	ID             string             `json:"id"`
	Code           string             `json:"code"`
	Items          []SaleItemResponse `json:"items"`
	Total          decimal.Decimal    `json:"total"`
	PaymentMethod  string             `json:"payment_method"`
	AmountTendered decimal.Decimal    `json:"amount_tendered"`
	Change         decimal.Decimal    `json:"change"`
	DebtID         *string            `json:"debt_id,omitempty"`
	CreatedAt      string             `json:"created_at"`
}

type SaleListItem struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Cashier       string          `json:"cashier"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	ItemCount     int             `json:"item_count"`
	CreatedAt     string          `json:"created_at"`
}

type SaleListResponse struct {
	Data  []SaleListItem `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
