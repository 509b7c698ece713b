package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense sources. System expenses are posted by the stock ledger when goods
// enter at a known cost; they cannot be deleted through the expense API.
const (
	ExpenseManual = "manual"
	ExpenseSystem = "system"
)

type Expense struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string          `gorm:"not null"`
	Category  string          `gorm:"not null;default:'general'"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Source    string          `gorm:"not null;default:'manual'"` // manual | system
	UserID    uuid.UUID       `gorm:"type:uuid;not null"`
	SpentAt   time.Time       `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
