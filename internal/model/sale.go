package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment methods accepted at the register.
const (
	PaymentCash     = "cash"
	PaymentTransfer = "transfer"
	PaymentCredit   = "credit"
)

// Sale is an immutable order record. Total is server-computed and must equal
// the sum of its item subtotals; the sale is created atomically with its items
// and stock effects.
type Sale struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code           string          `gorm:"uniqueIndex;not null"` // TRX-YYYYMMDD-###
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerID     *uuid.UUID      `gorm:"type:uuid;index"` // required for credit sales
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMethod  string          `gorm:"not null"` // cash | transfer | credit
	AmountTendered decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Change         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt      time.Time

	Items    []SaleItem `gorm:"foreignKey:SaleID"`
	User     *User      `gorm:"foreignKey:UserID"`
	Customer *Customer  `gorm:"foreignKey:CustomerID"`
}

// SaleItem captures price and cost at time of sale; catalog changes after the
// fact never rewrite history.
type SaleItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	VariantID *uuid.UUID      `gorm:"type:uuid"`
	Name      string          `gorm:"not null"` // display name snapshot, e.g. "T-Shirt (Red)"
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	UnitCost  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Product *Product        `gorm:"foreignKey:ProductID"`
	Variant *ProductVariant `gorm:"foreignKey:VariantID"`
}
