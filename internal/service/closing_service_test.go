package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fdestra28/kasirtta-sub000/internal/apperr"
	"github.com/fdestra28/kasirtta-sub000/internal/dto"
	"github.com/fdestra28/kasirtta-sub000/internal/repository"
	"github.com/fdestra28/kasirtta-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseBooks(t *testing.T) {
	closings := &stubClosingRepo{}
	reports := &stubReportRepo{
		aggregate: repository.SalesAggregate{
			GrossSales: money("900000"),
			TotalCost:  money("400000"),
			SalesCount: 30,
		},
	}
	svc := service.NewClosingService(closings, reports, newStubExpenseRepo())

	resp, err := svc.Close(context.Background(), uuid.New(), dto.CloseBooksRequest{
		PeriodStart: "2026-02-01",
		PeriodEnd:   "2026-02-28",
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-02-01", resp.PeriodStart)
	assert.Equal(t, "2026-02-28", resp.PeriodEnd)
	assert.True(t, resp.GrossSales.Equal(money("900000")))
	assert.True(t, resp.NetProfit.Equal(money("500000")))
	assert.Equal(t, int64(30), resp.SalesCount)

	// Snapshot persisted, and the reset covered the same range the aggregate
	// was computed over.
	require.Len(t, closings.closings, 1)
	require.Len(t, closings.resets, 1)
	assert.Equal(t, reports.lastFrom, closings.resets[0].from)
	assert.Equal(t, reports.lastTo, closings.resets[0].to)
	// The half-open range ends the day after the inclusive period end.
	assert.Equal(t, 1, closings.resets[0].to.Day())
}

func TestCloseBooks_FutureEndRefused(t *testing.T) {
	svc := service.NewClosingService(&stubClosingRepo{}, &stubReportRepo{}, newStubExpenseRepo())

	_, err := svc.Close(context.Background(), uuid.New(), dto.CloseBooksRequest{
		PeriodStart: "2027-01-01",
		PeriodEnd:   "2027-12-31",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidState, apperr.KindOf(err))
}

func TestCloseBooks_InvertedPeriodRefused(t *testing.T) {
	closings := &stubClosingRepo{}
	svc := service.NewClosingService(closings, &stubReportRepo{}, newStubExpenseRepo())

	_, err := svc.Close(context.Background(), uuid.New(), dto.CloseBooksRequest{
		PeriodStart: "2026-02-28",
		PeriodEnd:   "2026-02-01",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Empty(t, closings.resets)
}

func TestCloseBooks_BadDateRefused(t *testing.T) {
	svc := service.NewClosingService(&stubClosingRepo{}, &stubReportRepo{}, newStubExpenseRepo())

	_, err := svc.Close(context.Background(), uuid.New(), dto.CloseBooksRequest{
		PeriodStart: "Feb 1",
		PeriodEnd:   "2026-02-28",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCloseBooks_SnapshotFailureSkipsReset(t *testing.T) {
	closings := &stubClosingRepo{createErr: errors.New("insert failed")}
	svc := service.NewClosingService(closings, &stubReportRepo{}, newStubExpenseRepo())

	_, err := svc.Close(context.Background(), uuid.New(), dto.CloseBooksRequest{
		PeriodStart: "2026-02-01",
		PeriodEnd:   "2026-02-28",
	})
	require.Error(t, err)
	assert.Empty(t, closings.resets, "reset must not run when the snapshot insert fails")
}

func TestListClosings(t *testing.T) {
	closings := &stubClosingRepo{}
	reports := &stubReportRepo{}
	svc := service.NewClosingService(closings, reports, newStubExpenseRepo())

	_, err := svc.Close(context.Background(), uuid.New(), dto.CloseBooksRequest{
		PeriodStart: "2026-01-01",
		PeriodEnd:   "2026-01-31",
	})
	require.NoError(t, err)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "2026-01-01", list[0].PeriodStart)
}
