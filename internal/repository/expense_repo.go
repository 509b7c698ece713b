package repository

import (
	"context"
	"time"

	"github.com/fdestra28/kasirtta-sub000/internal/dto"
	"github.com/fdestra28/kasirtta-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ExpenseRepository interface {
	Create(ctx context.Context, e *model.Expense) error
	// CreateTx posts an expense inside a caller-owned transaction; the stock
	// ledger uses it to attribute the cost of incoming goods atomically.
	CreateTx(tx *gorm.DB, e *model.Expense) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Expense, error)
	List(ctx context.Context, filter dto.ExpenseFilter) ([]model.Expense, int64, error)
	Update(ctx context.Context, e *model.Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
	TotalBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	TotalBetweenTx(tx *gorm.DB, from, to time.Time) (decimal.Decimal, error)
}

type expenseRepo struct{ db *gorm.DB }

func NewExpenseRepository(db *gorm.DB) ExpenseRepository { return &expenseRepo{db: db} }

func (r *expenseRepo) Create(ctx context.Context, e *model.Expense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *expenseRepo) CreateTx(tx *gorm.DB, e *model.Expense) error {
	return tx.Create(e).Error
}

func (r *expenseRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Expense, error) {
	var e model.Expense
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *expenseRepo) List(ctx context.Context, filter dto.ExpenseFilter) ([]model.Expense, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Expense{})

	if filter.From != "" {
		q = q.Where("spent_at >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("spent_at <= ?", filter.To)
	}
	switch filter.Source {
	case "", "all":
		// no filter
	default:
		q = q.Where("source = ?", filter.Source)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var expenses []model.Expense
	err := q.Order("spent_at DESC").Offset(offset).Limit(filter.Limit).Find(&expenses).Error
	return expenses, total, err
}

func (r *expenseRepo) Update(ctx context.Context, e *model.Expense) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *expenseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Expense{}, "id = ?", id).Error
}

func (r *expenseRepo) TotalBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	return r.totalBetween(r.db.WithContext(ctx), from, to)
}

func (r *expenseRepo) TotalBetweenTx(tx *gorm.DB, from, to time.Time) (decimal.Decimal, error) {
	return r.totalBetween(tx, from, to)
}

func (r *expenseRepo) totalBetween(db *gorm.DB, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := db.Model(&model.Expense{}).
		Where("spent_at >= ? AND spent_at < ?", from, to).
		Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	return total, err
}
