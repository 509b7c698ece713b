package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookClosing snapshots a trading period's financials before the
// transactional tables are reset. Rows are write-once.
type BookClosing struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PeriodStart   time.Time       `gorm:"not null"`
	PeriodEnd     time.Time       `gorm:"not null"`
	GrossSales    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	TotalCost     decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	TotalExpenses decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	NetProfit     decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	SalesCount    int64           `gorm:"not null"`
	ClosedByID    uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt     time.Time
}

func (BookClosing) TableName() string { return "book_closings" }
