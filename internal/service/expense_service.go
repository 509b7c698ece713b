package service

import (
	"context"
	"time"

	"github.com/fdestra28/kasirtta-sub000/internal/apperr"
	"github.com/fdestra28/kasirtta-sub000/internal/dto"
	"github.com/fdestra28/kasirtta-sub000/internal/model"
	"github.com/fdestra28/kasirtta-sub000/internal/repository"

	"github.com/google/uuid"
)

type ExpenseService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error)
	List(ctx context.Context, filter dto.ExpenseFilter) (*dto.ExpenseListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type expenseService struct {
	repo repository.ExpenseRepository
}

func NewExpenseService(repo repository.ExpenseRepository) ExpenseService {
	return &expenseService{repo: repo}
}

func (s *expenseService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	spentAt := time.Now()
	if req.SpentAt != "" {
		d, err := time.Parse("2006-01-02", req.SpentAt)
		if err != nil {
			return nil, apperr.Validation("invalid spent_at %q", req.SpentAt)
		}
		spentAt = d
	}
	category := req.Category
	if category == "" {
		category = "general"
	}
	e := model.Expense{
		Name:     req.Name,
		Category: category,
		Amount:   req.Amount,
		Source:   model.ExpenseManual,
		UserID:   userID,
		SpentAt:  spentAt,
	}
	if err := s.repo.Create(ctx, &e); err != nil {
		return nil, apperr.Wrap(err, "failed to create expense")
	}
	return expenseToResponse(&e), nil
}

func (s *expenseService) List(ctx context.Context, filter dto.ExpenseFilter) (*dto.ExpenseListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	expenses, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list expenses")
	}
	items := make([]dto.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		items = append(items, *expenseToResponse(&expenses[i]))
	}
	return &dto.ExpenseListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *expenseService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "expense not found")
	}
	if e.Source == model.ExpenseSystem {
		return nil, apperr.InvalidState("system-attributed expenses cannot be edited")
	}
	if req.Name != "" {
		e.Name = req.Name
	}
	if req.Category != "" {
		e.Category = req.Category
	}
	if req.Amount != nil {
		e.Amount = *req.Amount
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, apperr.Wrap(err, "failed to update expense")
	}
	return expenseToResponse(e), nil
}

// Delete refuses system rows: the stock ledger posted them and owns them.
func (s *expenseService) Delete(ctx context.Context, id uuid.UUID) error {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return storeErr(err, "expense not found")
	}
	if e.Source == model.ExpenseSystem {
		return apperr.InvalidState("system-attributed expenses cannot be deleted")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Wrap(err, "failed to delete expense")
	}
	return nil
}

func expenseToResponse(e *model.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:       e.ID.String(),
		Name:     e.Name,
		Category: e.Category,
		Amount:   e.Amount,
		Source:   e.Source,
		SpentAt:  e.SpentAt.Format("2006-01-02"),
	}
}
