package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Debt statuses. Status is a pure function of (AmountDue, AmountPaid) —
// see DebtStatus.
const (
	DebtUnpaid        = "unpaid"
	DebtPartiallyPaid = "partially_paid"
	DebtPaid          = "paid"
)

// Debt tracks the outstanding balance of a credit sale. AmountPaid only ever
// grows; payments are appended as DebtPayment rows.
type Debt struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID     uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	AmountDue  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	AmountPaid decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Status     string          `gorm:"not null;default:'unpaid'"`
	DueDate    *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Payments []DebtPayment `gorm:"foreignKey:DebtID"`
	Customer *Customer     `gorm:"foreignKey:CustomerID"`
	Sale     *Sale         `gorm:"foreignKey:SaleID"`
}

type DebtPayment struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DebtID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt time.Time
}

// DebtStatus derives the status from the paid/due comparison:
// paid when amount_paid >= amount_due, partially_paid when anything has been
// paid, unpaid otherwise.
func DebtStatus(due, paid decimal.Decimal) string {
	switch {
	case paid.GreaterThanOrEqual(due):
		return DebtPaid
	case paid.IsPositive():
		return DebtPartiallyPaid
	default:
		return DebtUnpaid
	}
}
