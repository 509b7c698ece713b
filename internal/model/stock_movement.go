package model

import (
	"time"

	"github.com/google/uuid"
)

// Movement directions and reasons.
const (
	MovementIn  = "in"
	MovementOut = "out"

	ReasonInitial     = "initial"
	ReasonManual      = "manual"
	ReasonAdjustment  = "adjustment"
	ReasonTransaction = "transaction"
)

// StockMovement is the append-only audit record explaining one quantity
// change. Rows are never updated or deleted; the before/after snapshot lets
// the ledger be reconciled against current stock.
type StockMovement struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	VariantID   *uuid.UUID `gorm:"type:uuid;index"`
	Direction   string     `gorm:"not null"` // in | out
	Quantity    int        `gorm:"not null"` // always positive; Direction carries the sign
	StockBefore int        `gorm:"not null"`
	StockAfter  int        `gorm:"not null"`
	Reason      string     `gorm:"not null"`  // initial | manual | adjustment | transaction
	SaleID      *uuid.UUID `gorm:"type:uuid"` // set when Reason=transaction
	UserID      uuid.UUID  `gorm:"type:uuid;not null"`
	Note        string
	CreatedAt   time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

// TableName overrides GORM's default pluralization.
func (StockMovement) TableName() string { return "stock_movements" }
