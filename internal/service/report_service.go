package service

import (
	"context"
	"time"

	"github.com/fdestra28/kasirtta-sub000/internal/apperr"
	"github.com/fdestra28/kasirtta-sub000/internal/dto"
	"github.com/fdestra28/kasirtta-sub000/internal/repository"
)

const dateLayout = "2006-01-02"

type ReportService interface {
	SalesSummary(ctx context.Context, period dto.ReportPeriod) (*dto.SalesSummaryResponse, error)
	DailySales(ctx context.Context, period dto.ReportPeriod) ([]dto.DailySalesRow, error)
	BestSellers(ctx context.Context, period dto.ReportPeriod, limit int) ([]dto.BestSellerRow, error)
}

type reportService struct {
	reports  repository.ReportRepository
	expenses repository.ExpenseRepository
}

func NewReportService(reports repository.ReportRepository, expenses repository.ExpenseRepository) ReportService {
	return &reportService{reports: reports, expenses: expenses}
}

// resolvePeriod turns the optional from/to query params into a half-open
// [from, to) range. Defaults to the current calendar month.
func resolvePeriod(period dto.ReportPeriod) (time.Time, time.Time, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0)

	if period.From != "" {
		parsed, err := time.ParseInLocation(dateLayout, period.From, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, apperr.Validation("invalid from date")
		}
		from = parsed
	}
	if period.To != "" {
		parsed, err := time.ParseInLocation(dateLayout, period.To, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, apperr.Validation("invalid to date")
		}
		to = parsed.AddDate(0, 0, 1) // inclusive end date
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, apperr.Validation("to date must not precede from date")
	}
	return from, to, nil
}

func (s *reportService) SalesSummary(ctx context.Context, period dto.ReportPeriod) (*dto.SalesSummaryResponse, error) {
	from, to, err := resolvePeriod(period)
	if err != nil {
		return nil, err
	}

	agg, err := s.reports.SalesAggregate(ctx, from, to)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to aggregate sales")
	}
	totalExpenses, err := s.expenses.TotalBetween(ctx, from, to)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to total expenses")
	}

	return &dto.SalesSummaryResponse{
		From:          from.Format(dateLayout),
		To:            to.AddDate(0, 0, -1).Format(dateLayout),
		GrossSales:    agg.GrossSales,
		TotalCost:     agg.TotalCost,
		TotalExpenses: totalExpenses,
		NetProfit:     agg.GrossSales.Sub(agg.TotalCost).Sub(totalExpenses),
		SalesCount:    agg.SalesCount,
	}, nil
}

func (s *reportService) DailySales(ctx context.Context, period dto.ReportPeriod) ([]dto.DailySalesRow, error) {
	from, to, err := resolvePeriod(period)
	if err != nil {
		return nil, err
	}
	rows, err := s.reports.DailySales(ctx, from, to)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to load daily sales")
	}
	resp := make([]dto.DailySalesRow, len(rows))
	for i, r := range rows {
		resp[i] = dto.DailySalesRow{
			Date:       r.Date.Format(dateLayout),
			GrossSales: r.GrossSales,
			SalesCount: r.SalesCount,
		}
	}
	return resp, nil
}

func (s *reportService) BestSellers(ctx context.Context, period dto.ReportPeriod, limit int) ([]dto.BestSellerRow, error) {
	from, to, err := resolvePeriod(period)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	rows, err := s.reports.BestSellers(ctx, from, to, limit)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to load best sellers")
	}
	resp := make([]dto.BestSellerRow, len(rows))
	for i, r := range rows {
		resp[i] = dto.BestSellerRow{
			Name:         r.Name,
			QuantitySold: r.QuantitySold,
			Revenue:      r.Revenue,
		}
	}
	return resp, nil
}
