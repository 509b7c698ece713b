package repository

import (
	"context"

	"github.com/fdestra28/kasirtta-sub000/internal/dto"
	"github.com/fdestra28/kasirtta-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DebtRepository interface {
	CreateTx(tx *gorm.DB, d *model.Debt) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Debt, error)
	// FindForUpdateTx row-locks the debt so concurrent payments serialize.
	FindForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Debt, error)
	UpdateAmountsTx(tx *gorm.DB, id uuid.UUID, paid decimal.Decimal, status string) error
	CreatePaymentTx(tx *gorm.DB, p *model.DebtPayment) error
	List(ctx context.Context, filter dto.DebtFilter) ([]model.Debt, int64, error)
	OutstandingByCustomer(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)
	DB() *gorm.DB
}

type debtRepo struct{ db *gorm.DB }

func NewDebtRepository(db *gorm.DB) DebtRepository { return &debtRepo{db: db} }

func (r *debtRepo) DB() *gorm.DB { return r.db }

func (r *debtRepo) CreateTx(tx *gorm.DB, d *model.Debt) error {
	return tx.Create(d).Error
}

func (r *debtRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Debt, error) {
	var d model.Debt
	err := r.db.WithContext(ctx).Preload("Payments").Preload("Customer").Preload("Sale").
		First(&d, "id = ?", id).Error
	return &d, err
}

func (r *debtRepo) FindForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Debt, error) {
	var d model.Debt
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&d, "id = ?", id).Error
	return &d, err
}

func (r *debtRepo) UpdateAmountsTx(tx *gorm.DB, id uuid.UUID, paid decimal.Decimal, status string) error {
	return tx.Model(&model.Debt{}).Where("id = ?", id).Updates(map[string]interface{}{
		"amount_paid": paid,
		"status":      status,
	}).Error
}

func (r *debtRepo) CreatePaymentTx(tx *gorm.DB, p *model.DebtPayment) error {
	return tx.Create(p).Error
}

func (r *debtRepo) List(ctx context.Context, filter dto.DebtFilter) ([]model.Debt, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Debt{})

	if filter.CustomerID != "" {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}
	switch filter.Status {
	case "", "all":
		// no filter
	default:
		q = q.Where("status = ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var debts []model.Debt
	err := q.Preload("Customer").Preload("Sale").Preload("Payments").
		Order("created_at DESC").Offset(offset).Limit(filter.Limit).Find(&debts).Error
	return debts, total, err
}

func (r *debtRepo) OutstandingByCustomer(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	var out decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Debt{}).
		Where("customer_id = ? AND status != ?", customerID, model.DebtPaid).
		Select("COALESCE(SUM(amount_due - amount_paid), 0)").Scan(&out).Error
	return out, err
}
