package repository

import (
	"context"
	"time"

	"github.com/fdestra28/kasirtta-sub000/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SalesAggregate is the raw rollup for a period: revenue, cost of goods sold
// and number of committed sales.
type SalesAggregate struct {
	GrossSales decimal.Decimal
	TotalCost  decimal.Decimal
	SalesCount int64
}

type DailySales struct {
	Date       time.Time
	GrossSales decimal.Decimal
	SalesCount int64
}

type BestSeller struct {
	Name         string
	QuantitySold int64
	Revenue      decimal.Decimal
}

type ReportRepository interface {
	SalesAggregate(ctx context.Context, from, to time.Time) (*SalesAggregate, error)
	// SalesAggregateTx is the same rollup on a caller-owned transaction; book
	// closing snapshots and resets under one tx.
	SalesAggregateTx(tx *gorm.DB, from, to time.Time) (*SalesAggregate, error)
	DailySales(ctx context.Context, from, to time.Time) ([]DailySales, error)
	BestSellers(ctx context.Context, from, to time.Time, limit int) ([]BestSeller, error)
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepo{db: db} }

func (r *reportRepo) SalesAggregate(ctx context.Context, from, to time.Time) (*SalesAggregate, error) {
	return r.aggregate(r.db.WithContext(ctx), from, to)
}

func (r *reportRepo) SalesAggregateTx(tx *gorm.DB, from, to time.Time) (*SalesAggregate, error) {
	return r.aggregate(tx, from, to)
}

func (r *reportRepo) aggregate(db *gorm.DB, from, to time.Time) (*SalesAggregate, error) {
	var agg SalesAggregate

	row := struct {
		Gross decimal.Decimal
		Count int64
	}{}
	if err := db.Model(&model.Sale{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Select("COALESCE(SUM(total), 0) AS gross, COUNT(*) AS count").
		Scan(&row).Error; err != nil {
		return nil, err
	}
	agg.GrossSales = row.Gross
	agg.SalesCount = row.Count

	if err := db.Model(&model.SaleItem{}).
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sales.created_at >= ? AND sales.created_at < ?", from, to).
		Select("COALESCE(SUM(sale_items.unit_cost * sale_items.quantity), 0)").
		Scan(&agg.TotalCost).Error; err != nil {
		return nil, err
	}

	return &agg, nil
}

func (r *reportRepo) DailySales(ctx context.Context, from, to time.Time) ([]DailySales, error) {
	var rows []DailySales
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Select("DATE(created_at) AS date, COALESCE(SUM(total), 0) AS gross_sales, COUNT(*) AS sales_count").
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) BestSellers(ctx context.Context, from, to time.Time, limit int) ([]BestSeller, error) {
	var rows []BestSeller
	err := r.db.WithContext(ctx).Model(&model.SaleItem{}).
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sales.created_at >= ? AND sales.created_at < ?", from, to).
		Select("sale_items.name AS name, SUM(sale_items.quantity) AS quantity_sold, SUM(sale_items.subtotal) AS revenue").
		Group("sale_items.name").
		Order("quantity_sold DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
