package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductType distinguishes stocked goods from services. Services carry no
// stock and never produce stock movements.
type ProductType string

const (
	ProductPhysical ProductType = "physical"
	ProductService  ProductType = "service"
)

// Product is a sellable unit, or — when HasVariants is true — a variant parent
// that must never appear on a sale line directly (only its variants are sold).
type Product struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code         string          `gorm:"uniqueIndex;not null"` // P### for goods, J### for services
	Name         string          `gorm:"index;not null"`
	Type         ProductType     `gorm:"not null;default:'physical'"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PurchaseCost decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Stock        int             `gorm:"not null;default:0"` // never negative; unused for services
	MinStock     int             `gorm:"not null;default:5"`
	HasVariants  bool            `gorm:"not null;default:false"`
	Active       bool            `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Variants []ProductVariant `gorm:"foreignKey:ProductID"`
}
