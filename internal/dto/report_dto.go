package dto

import "github.com/shopspring/decimal"

// ReportPeriod is bound from the query string of the report endpoints.
type ReportPeriod struct {
	From string `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `form:"to"   validate:"omitempty,datetime=2006-01-02"`
}

type SalesSummaryResponse struct {
	From          string          `json:"from"`
	To            string          `json:"to"`
	GrossSales    decimal.Decimal `json:"gross_sales"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetProfit     decimal.Decimal `json:"net_profit"`
	SalesCount    int64           `json:"sales_count"`
}

type DailySalesRow struct {
	Date       string          `json:"date"`
	GrossSales decimal.Decimal `json:"gross_sales"`
	SalesCount int64           `json:"sales_count"`
}

type BestSellerRow struct {
	Name         string          `json:"name"`
	QuantitySold int64           `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

type CloseBooksRequest struct {
	// PeriodStart/PeriodEnd (YYYY-MM-DD) bound the period being closed.
	PeriodStart string `json:"period_start" validate:"required,datetime=2006-01-02"`
	PeriodEnd   string `json:"period_end"   validate:"required,datetime=2006-01-02"`
}

type BookClosingResponse struct {
	ID            string          `json:"id"`
	PeriodStart   string          `json:"period_start"`
	PeriodEnd     string          `json:"period_end"`
	GrossSales    decimal.Decimal `json:"gross_sales"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetProfit     decimal.Decimal `json:"net_profit"`
	SalesCount    int64           `json:"sales_count"`
	CreatedAt     string          `json:"created_at"`
}
