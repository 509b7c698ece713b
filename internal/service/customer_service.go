package service

import (
	"context"

	"github.com/fdestra28/kasirtta-sub000/internal/apperr"
	"github.com/fdestra28/kasirtta-sub000/internal/dto"
	"github.com/fdestra28/kasirtta-sub000/internal/model"
	"github.com/fdestra28/kasirtta-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CustomerService interface {
	Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error)
	List(ctx context.Context, filter dto.CustomerFilter) (*dto.CustomerListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type customerService struct {
	repo  repository.CustomerRepository
	debts repository.DebtRepository
}

func NewCustomerService(repo repository.CustomerRepository, debts repository.DebtRepository) CustomerService {
	return &customerService{repo: repo, debts: debts}
}

func (s *customerService) Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	c := model.Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Active:  true,
	}
	if err := s.repo.Create(ctx, &c); err != nil {
		// Phone carries a unique index — a duplicate is a conflict, not a 500.
		return nil, storeErr(err, "customer not found")
	}
	return s.toResponse(ctx, &c)
}

func (s *customerService) GetByID(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "customer not found")
	}
	return s.toResponse(ctx, c)
}

func (s *customerService) List(ctx context.Context, filter dto.CustomerFilter) (*dto.CustomerListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	customers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list customers")
	}
	items := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		resp, err := s.toResponse(ctx, &customers[i])
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return &dto.CustomerListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *customerService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "customer not found")
	}
	if req.Name != "" {
		c.Name = req.Name
	}
	if req.Phone != "" {
		c.Phone = req.Phone
	}
	if req.Address != nil {
		c.Address = req.Address
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, storeErr(err, "customer not found")
	}
	return s.toResponse(ctx, c)
}

// Deactivate refuses while the customer still owes money.
func (s *customerService) Deactivate(ctx context.Context, id uuid.UUID) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return storeErr(err, "customer not found")
	}
	outstanding, err := s.debts.OutstandingByCustomer(ctx, c.ID)
	if err != nil {
		return apperr.Wrap(err, "failed to check outstanding debt")
	}
	if outstanding.IsPositive() {
		return apperr.InvalidState("customer %s still owes %s", c.Name, outstanding.StringFixed(2))
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return apperr.Wrap(err, "failed to deactivate customer")
	}
	return nil
}

func (s *customerService) toResponse(ctx context.Context, c *model.Customer) (*dto.CustomerResponse, error) {
	outstanding := decimal.Zero
	if s.debts != nil {
		var err error
		outstanding, err = s.debts.OutstandingByCustomer(ctx, c.ID)
		if err != nil {
			return nil, apperr.Wrap(err, "failed to sum outstanding debt")
		}
	}
	resp := &dto.CustomerResponse{
		ID:              c.ID.String(),
		Name:            c.Name,
		Phone:           c.Phone,
		Active:          c.Active,
		OutstandingDebt: outstanding,
	}
	if c.Address != nil {
		resp.Address = *c.Address
	}
	return resp, nil
}
