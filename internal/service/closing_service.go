package service

import (
	"context"
	"time"

	"github.com/fdestra28/kasirtta-sub000/internal/apperr"
	"github.com/fdestra28/kasirtta-sub000/internal/dto"
	"github.com/fdestra28/kasirtta-sub000/internal/model"
	"github.com/fdestra28/kasirtta-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClosingService ends a trading period: it freezes the period's financial
// rollup into an immutable book_closings row, then clears the transactional
// tables so the next period starts from a clean ledger. Snapshot and reset
// commit in the same transaction; a failure anywhere leaves both untouched.
type ClosingService interface {
	Close(ctx context.Context, closedBy uuid.UUID, req dto.CloseBooksRequest) (*dto.BookClosingResponse, error)
	List(ctx context.Context) ([]dto.BookClosingResponse, error)
}

type closingService struct {
	closings repository.ClosingRepository
	reports  repository.ReportRepository
	expenses repository.ExpenseRepository
}

func NewClosingService(
	closings repository.ClosingRepository,
	reports repository.ReportRepository,
	expenses repository.ExpenseRepository,
) ClosingService {
	return &closingService{closings: closings, reports: reports, expenses: expenses}
}

func (s *closingService) Close(ctx context.Context, closedBy uuid.UUID, req dto.CloseBooksRequest) (*dto.BookClosingResponse, error) {
	from, err := time.ParseInLocation(dateLayout, req.PeriodStart, time.Local)
	if err != nil {
		return nil, apperr.Validation("invalid period start")
	}
	end, err := time.ParseInLocation(dateLayout, req.PeriodEnd, time.Local)
	if err != nil {
		return nil, apperr.Validation("invalid period end")
	}
	to := end.AddDate(0, 0, 1) // inclusive end date
	if !to.After(from) {
		return nil, apperr.Validation("period end must not precede period start")
	}
	if !end.Before(time.Now()) {
		return nil, apperr.InvalidState("cannot close a period that has not ended")
	}

	var closing *model.BookClosing
	txErr := runTx(ctx, s.closings.DB(), func(tx *gorm.DB) error {
		agg, err := s.reports.SalesAggregateTx(tx, from, to)
		if err != nil {
			return apperr.Wrap(err, "failed to aggregate sales")
		}
		totalExpenses, err := s.expenses.TotalBetweenTx(tx, from, to)
		if err != nil {
			return apperr.Wrap(err, "failed to total expenses")
		}

		closing = &model.BookClosing{
			PeriodStart:   from,
			PeriodEnd:     end,
			GrossSales:    agg.GrossSales,
			TotalCost:     agg.TotalCost,
			TotalExpenses: totalExpenses,
			NetProfit:     agg.GrossSales.Sub(agg.TotalCost).Sub(totalExpenses),
			SalesCount:    agg.SalesCount,
			ClosedByID:    closedBy,
		}
		if err := s.closings.CreateTx(tx, closing); err != nil {
			return apperr.Wrap(err, "failed to record closing")
		}
		if err := s.closings.ResetPeriodTx(tx, from, to); err != nil {
			return apperr.Wrap(err, "failed to reset period")
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return closingToResponse(closing), nil
}

func (s *closingService) List(ctx context.Context) ([]dto.BookClosingResponse, error) {
	closings, err := s.closings.List(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list closings")
	}
	resp := make([]dto.BookClosingResponse, len(closings))
	for i := range closings {
		resp[i] = *closingToResponse(&closings[i])
	}
	return resp, nil
}

func closingToResponse(c *model.BookClosing) *dto.BookClosingResponse {
	return &dto.BookClosingResponse{
		ID:            c.ID.String(),
		PeriodStart:   c.PeriodStart.Format(dateLayout),
		PeriodEnd:     c.PeriodEnd.Format(dateLayout),
		GrossSales:    c.GrossSales,
		TotalCost:     c.TotalCost,
		TotalExpenses: c.TotalExpenses,
		NetProfit:     c.NetProfit,
		SalesCount:    c.SalesCount,
		CreatedAt:     c.CreatedAt.Format(time.RFC3339),
	}
}
