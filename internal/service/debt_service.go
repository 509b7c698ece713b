package service

import (
	"context"
	"errors"
	"time"

	"github.com/fdestra28/kasirtta-sub000/internal/apperr"
	"github.com/fdestra28/kasirtta-sub000/internal/dto"
	"github.com/fdestra28/kasirtta-sub000/internal/model"
	"github.com/fdestra28/kasirtta-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// overpayTolerance absorbs rounding slack when comparing a payment against the
// remaining balance: 0.01 of a currency unit.
var overpayTolerance = decimal.New(1, -2)

type DebtService interface {
	// Pay applies a partial or full payment. Runs its own transaction —
	// payments are independent operations, never part of order posting.
	Pay(ctx context.Context, userID, debtID uuid.UUID, amount decimal.Decimal) (*dto.DebtResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.DebtResponse, error)
	List(ctx context.Context, filter dto.DebtFilter) (*dto.DebtListResponse, error)
}

type debtService struct {
	repo repository.DebtRepository
}

func NewDebtService(repo repository.DebtRepository) DebtService {
	return &debtService{repo: repo}
}

func (s *debtService) Pay(ctx context.Context, userID, debtID uuid.UUID, amount decimal.Decimal) (*dto.DebtResponse, error) {
	if !amount.IsPositive() {
		return nil, apperr.Validation("payment amount must be positive")
	}

	var newPaid decimal.Decimal
	var status string

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// The row lock serializes concurrent payments against the same debt;
		// the second caller sees the first one's committed amounts.
		debt, err := s.repo.FindForUpdateTx(tx, debtID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("debt %s not found", debtID)
			}
			return apperr.Wrap(err, "failed to lock debt")
		}

		remaining := debt.AmountDue.Sub(debt.AmountPaid)
		if amount.GreaterThan(remaining.Add(overpayTolerance)) {
			return apperr.Insufficient("payment %s exceeds remaining debt %s",
				amount.StringFixed(2), remaining.StringFixed(2))
		}

		newPaid = debt.AmountPaid.Add(amount)
		status = model.DebtStatus(debt.AmountDue, newPaid)

		if err := s.repo.UpdateAmountsTx(tx, debt.ID, newPaid, status); err != nil {
			return apperr.Wrap(err, "failed to update debt")
		}
		payment := &model.DebtPayment{
			DebtID: debt.ID,
			Amount: amount,
			UserID: userID,
		}
		if err := s.repo.CreatePaymentTx(tx, payment); err != nil {
			return apperr.Wrap(err, "failed to record payment")
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.GetByID(ctx, debtID)
}

func (s *debtService) GetByID(ctx context.Context, id uuid.UUID) (*dto.DebtResponse, error) {
	debt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "debt not found")
	}
	return debtToResponse(debt), nil
}

func (s *debtService) List(ctx context.Context, filter dto.DebtFilter) (*dto.DebtListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	debts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list debts")
	}
	items := make([]dto.DebtResponse, 0, len(debts))
	for i := range debts {
		items = append(items, *debtToResponse(&debts[i]))
	}
	return &dto.DebtListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func debtToResponse(debt *model.Debt) *dto.DebtResponse {
	resp := &dto.DebtResponse{
		ID:         debt.ID.String(),
		AmountDue:  debt.AmountDue,
		AmountPaid: debt.AmountPaid,
		Remaining:  debt.AmountDue.Sub(debt.AmountPaid),
		Status:     debt.Status,
		CreatedAt:  debt.CreatedAt.Format(time.RFC3339),
	}
	if debt.Sale != nil {
		resp.SaleCode = debt.Sale.Code
	}
	if debt.Customer != nil {
		resp.Customer = debt.Customer.Name
	}
	if debt.DueDate != nil {
		resp.DueDate = debt.DueDate.Format("2006-01-02")
	}
	for _, p := range debt.Payments {
		resp.Payments = append(resp.Payments, dto.DebtPaymentResponse{
			Amount:    p.Amount,
			CreatedAt: p.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp
}
