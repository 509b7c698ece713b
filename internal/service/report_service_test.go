package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/fdestra28/kasirtta-sub000/internal/apperr"
	"github.com/fdestra28/kasirtta-sub000/internal/dto"
	"github.com/fdestra28/kasirtta-sub000/internal/model"
	"github.com/fdestra28/kasirtta-sub000/internal/repository"
	"github.com/fdestra28/kasirtta-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalesSummary_NetProfit(t *testing.T) {
	reports := &stubReportRepo{
		aggregate: repository.SalesAggregate{
			GrossSales: money("500000"),
			TotalCost:  money("200000"),
			SalesCount: 12,
		},
	}
	expenses := newStubExpenseRepo()
	_ = expenses.Create(context.Background(), &model.Expense{
		Name:    "Rent",
		Amount:  money("100000"),
		UserID:  uuid.New(),
		SpentAt: time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local),
	})
	svc := service.NewReportService(reports, expenses)

	resp, err := svc.SalesSummary(context.Background(), dto.ReportPeriod{
		From: "2026-03-01",
		To:   "2026-03-31",
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-03-01", resp.From)
	assert.Equal(t, "2026-03-31", resp.To)
	assert.True(t, resp.GrossSales.Equal(money("500000")))
	assert.True(t, resp.TotalExpenses.Equal(money("100000")))
	assert.True(t, resp.NetProfit.Equal(money("200000")), "net = gross - cost - expenses")
	assert.Equal(t, int64(12), resp.SalesCount)

	// The end date is inclusive: the queried range runs through April 1st
	// exclusive.
	assert.Equal(t, 1, reports.lastFrom.Day())
	assert.Equal(t, time.April, reports.lastTo.Month())
	assert.Equal(t, 1, reports.lastTo.Day())
}

func TestSalesSummary_DefaultsToCurrentMonth(t *testing.T) {
	reports := &stubReportRepo{}
	svc := service.NewReportService(reports, newStubExpenseRepo())

	_, err := svc.SalesSummary(context.Background(), dto.ReportPeriod{})
	require.NoError(t, err)

	now := time.Now()
	assert.Equal(t, now.Month(), reports.lastFrom.Month())
	assert.Equal(t, 1, reports.lastFrom.Day())
	assert.Equal(t, reports.lastFrom.AddDate(0, 1, 0), reports.lastTo)
}

func TestSalesSummary_InvertedRange(t *testing.T) {
	svc := service.NewReportService(&stubReportRepo{}, newStubExpenseRepo())

	_, err := svc.SalesSummary(context.Background(), dto.ReportPeriod{
		From: "2026-03-31",
		To:   "2026-03-01",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestSalesSummary_BadDate(t *testing.T) {
	svc := service.NewReportService(&stubReportRepo{}, newStubExpenseRepo())

	_, err := svc.SalesSummary(context.Background(), dto.ReportPeriod{From: "31/03/2026"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestDailySales(t *testing.T) {
	reports := &stubReportRepo{
		daily: []repository.DailySales{
			{Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local), GrossSales: money("80000"), SalesCount: 4},
			{Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local), GrossSales: money("120000"), SalesCount: 7},
		},
	}
	svc := service.NewReportService(reports, newStubExpenseRepo())

	rows, err := svc.DailySales(context.Background(), dto.ReportPeriod{From: "2026-03-01", To: "2026-03-02"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2026-03-01", rows[0].Date)
	assert.True(t, rows[1].GrossSales.Equal(money("120000")))
}

func TestBestSellers_LimitClamped(t *testing.T) {
	reports := &stubReportRepo{
		best: []repository.BestSeller{
			{Name: "Coffee Beans", QuantitySold: 40, Revenue: money("400000")},
			{Name: "T-Shirt (Red)", QuantitySold: 12, Revenue: money("600000")},
		},
	}
	svc := service.NewReportService(reports, newStubExpenseRepo())

	rows, err := svc.BestSellers(context.Background(), dto.ReportPeriod{From: "2026-03-01", To: "2026-03-31"}, 1)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	// Out-of-range limits fall back to the default of 10.
	rows, err = svc.BestSellers(context.Background(), dto.ReportPeriod{From: "2026-03-01", To: "2026-03-31"}, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = svc.BestSellers(context.Background(), dto.ReportPeriod{From: "2026-03-01", To: "2026-03-31"}, 999)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
