package dto

import "github.com/shopspring/decimal"

// ProductFilter is bound from the query string of GET /v1/products.
type ProductFilter struct {
	Name     string `form:"name"`
	Type     string `form:"type"   validate:"omitempty,oneof=physical service"`
	Active   string `form:"active"` // "false" = inactive, "all" = everything, default active only
	LowStock bool   `form:"low_stock"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CreateProductRequest struct {
	Name         string          `json:"name"          validate:"required"`
	Type         string          `json:"type"          validate:"required,oneof=physical service"`
	SellingPrice decimal.Decimal `json:"selling_price" validate:"required,gt=0"`
	PurchaseCost decimal.Decimal `json:"purchase_cost" validate:"min=0"`
	InitialStock int             `json:"initial_stock" validate:"min=0"`
	MinStock     int             `json:"min_stock"     validate:"min=0"`
	HasVariants  bool            `json:"has_variants"`
}

type UpdateProductRequest struct {
	Name         string           `json:"name"`
	SellingPrice *decimal.Decimal `json:"selling_price" validate:"omitempty,gt=0"`
	PurchaseCost *decimal.Decimal `json:"purchase_cost" validate:"omitempty,min=0"`
	MinStock     *int             `json:"min_stock"     validate:"omitempty,min=0"`
}

type CreateVariantRequest struct {
	Name         string          `json:"name"          validate:"required"`
	SellingPrice decimal.Decimal `json:"selling_price" validate:"required,gt=0"`
	PurchaseCost decimal.Decimal `json:"purchase_cost" validate:"min=0"`
	InitialStock int             `json:"initial_stock" validate:"min=0"`
}

type VariantResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	PurchaseCost decimal.Decimal `json:"purchase_cost"`
	Stock        int             `json:"stock"`
	Active       bool            `json:"active"`
}

type ProductResponse struct {
	ID           string            `json:"id"`
	Code         string            `json:"code"`
	Name         string            `json:"name"`
	Type         string            `json:"type"`
	SellingPrice decimal.Decimal   `json:"selling_price"`
	PurchaseCost decimal.Decimal   `json:"purchase_cost"`
	Stock        int               `json:"stock"`
	MinStock     int               `json:"min_stock"`
	HasVariants  bool              `json:"has_variants"`
	Active       bool              `json:"active"`
	Variants     []VariantResponse `json:"variants,omitempty"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
