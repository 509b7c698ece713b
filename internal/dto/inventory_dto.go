package dto

// AdjustStockRequest mutates stock outside of a sale. Type semantics:
// "in" adds, "out" subtracts, "adjustment" sets the absolute quantity.
type AdjustStockRequest struct {
	ProductID string  `json:"product_id" validate:"required,uuid"`
	VariantID *string `json:"variant_id" validate:"omitempty,uuid"`
	Type      string  `json:"type"       validate:"required,oneof=in out adjustment"`
	Quantity  int     `json:"quantity"   validate:"required,min=0"`
	Note      string  `json:"note"`
}

type AdjustStockResponse struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id,omitempty"`
	NewStock  int    `json:"new_stock"`
}

// MovementFilter is bound from the query string of GET /v1/inventory/movements.
type MovementFilter struct {
	ProductID string `form:"product_id" validate:"omitempty,uuid"`
	Reason    string `form:"reason"     validate:"omitempty,oneof=initial manual adjustment transaction"`
	Page      int    `form:"page,default=1"    validate:"min=1"`
	Limit     int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type MovementResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	VariantID   string `json:"variant_id,omitempty"`
	Direction   string `json:"direction"`
	Quantity    int    `json:"quantity"`
	StockBefore int    `json:"stock_before"`
	StockAfter  int    `json:"stock_after"`
	Reason      string `json:"reason"`
	SaleID      string `json:"sale_id,omitempty"`
	Note        string `json:"note,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type MovementListResponse struct {
	Data  []MovementResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
