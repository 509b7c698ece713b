package repository

import (
	"context"
	"time"

	"github.com/fdestra28/kasirtta-sub000/internal/model"

	"gorm.io/gorm"
)

type ClosingRepository interface {
	CreateTx(tx *gorm.DB, c *model.BookClosing) error
	// ResetPeriodTx wipes the transactional tables for the closed period:
	// debt payments, debts, sale items, sales, non-initial stock movements and
	// expenses. Runs on the caller's tx so snapshot and reset commit together.
	ResetPeriodTx(tx *gorm.DB, from, to time.Time) error
	List(ctx context.Context) ([]model.BookClosing, error)
	DB() *gorm.DB
}

type closingRepo struct{ db *gorm.DB }

func NewClosingRepository(db *gorm.DB) ClosingRepository { return &closingRepo{db: db} }

func (r *closingRepo) DB() *gorm.DB { return r.db }

func (r *closingRepo) CreateTx(tx *gorm.DB, c *model.BookClosing) error {
	return tx.Create(c).Error
}

func (r *closingRepo) ResetPeriodTx(tx *gorm.DB, from, to time.Time) error {
	// Delete order respects FK dependencies: payments before debts, items
	// before sales, movements referencing sales before the sales themselves.
	steps := []string{
		`DELETE FROM debt_payments WHERE debt_id IN
		   (SELECT d.id FROM debts d JOIN sales s ON s.id = d.sale_id
		    WHERE s.created_at >= ? AND s.created_at < ?)`,
		`DELETE FROM debts WHERE sale_id IN
		   (SELECT id FROM sales WHERE created_at >= ? AND created_at < ?)`,
		`DELETE FROM stock_movements
		   WHERE reason != 'initial' AND created_at >= ? AND created_at < ?`,
		`DELETE FROM sale_items WHERE sale_id IN
		   (SELECT id FROM sales WHERE created_at >= ? AND created_at < ?)`,
		`DELETE FROM sales WHERE created_at >= ? AND created_at < ?`,
		`DELETE FROM expenses WHERE spent_at >= ? AND spent_at < ?`,
	}
	for _, stmt := range steps {
		if err := tx.Exec(stmt, from, to).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *closingRepo) List(ctx context.Context) ([]model.BookClosing, error) {
	var closings []model.BookClosing
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&closings).Error
	return closings, err
}
