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

// InventoryService is the manual stock mutation path. Sales decrement stock
// through SaleService; everything else (receiving goods, corrections,
// write-offs) goes through Adjust.
type InventoryService interface {
	Adjust(ctx context.Context, userID uuid.UUID, req dto.AdjustStockRequest) (*dto.AdjustStockResponse, error)
	ListMovements(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error)
}

type inventoryService struct {
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	expenses  repository.ExpenseRepository
}

func NewInventoryService(
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	expenses repository.ExpenseRepository,
) InventoryService {
	return &inventoryService{products: products, movements: movements, expenses: expenses}
}

// Adjust row-locks the unit, computes the new quantity by type ("in" adds,
// "out" subtracts, "adjustment" sets the absolute value), refuses negative
// results, records the movement, and — for costed stock-in — posts a system
// expense attributing the purchase, all in one transaction.
func (s *inventoryService) Adjust(ctx context.Context, userID uuid.UUID, req dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apperr.Validation("invalid product_id %q", req.ProductID)
	}
	var variantID *uuid.UUID
	if req.VariantID != nil {
		vid, err := uuid.Parse(*req.VariantID)
		if err != nil {
			return nil, apperr.Validation("invalid variant_id %q", *req.VariantID)
		}
		variantID = &vid
	}
	if req.Type != model.ReasonAdjustment && req.Quantity < 1 {
		return nil, apperr.Validation("quantity must be at least 1")
	}

	var newStock int
	txErr := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		p, err := s.products.FindForUpdateTx(tx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("product %s not found", req.ProductID)
			}
			return apperr.Wrap(err, "failed to lock product")
		}
		if p.Type != model.ProductPhysical {
			return apperr.InvalidState("service %s carries no stock", p.Name)
		}
		if p.HasVariants && variantID == nil {
			return apperr.InvalidState("product %s tracks stock per variant", p.Name)
		}

		name := p.Name
		cost := p.PurchaseCost
		before := p.Stock

		var variant *model.ProductVariant
		if variantID != nil {
			variant, err = s.products.FindVariantForUpdateTx(tx, *variantID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound("variant %s not found", variantID.String())
				}
				return apperr.Wrap(err, "failed to lock variant")
			}
			if variant.ProductID != p.ID {
				return apperr.Validation("variant %s does not belong to product %s", variant.Name, p.Name)
			}
			name = p.Name + " (" + variant.Name + ")"
			cost = variant.PurchaseCost
			before = variant.Stock
		}

		switch req.Type {
		case "in":
			newStock = before + req.Quantity
		case "out":
			newStock = before - req.Quantity
		case model.ReasonAdjustment:
			newStock = req.Quantity
		default:
			return apperr.Validation("unknown adjustment type %q", req.Type)
		}
		if newStock < 0 {
			return apperr.Insufficient("stock for %s would go negative (%d)", name, newStock)
		}

		if variant != nil {
			err = s.products.UpdateVariantStockTx(tx, variant.ID, newStock)
		} else {
			err = s.products.UpdateStockTx(tx, p.ID, newStock)
		}
		if err != nil {
			return apperr.Wrap(err, "failed to update stock")
		}

		if delta := newStock - before; delta != 0 {
			direction := model.MovementIn
			if delta < 0 {
				direction = model.MovementOut
				delta = -delta
			}
			reason := model.ReasonManual
			if req.Type == model.ReasonAdjustment {
				reason = model.ReasonAdjustment
			}
			mov := &model.StockMovement{
				ProductID:   p.ID,
				VariantID:   variantID,
				Direction:   direction,
				Quantity:    delta,
				StockBefore: before,
				StockAfter:  newStock,
				Reason:      reason,
				UserID:      userID,
				Note:        req.Note,
			}
			if err := s.movements.CreateTx(tx, mov); err != nil {
				return apperr.Wrap(err, "failed to record stock movement")
			}

			// Receiving goods at a known cost is an operating expense; the
			// attribution shares the adjustment's atomicity boundary.
			if req.Type == "in" && cost.IsPositive() {
				exp := &model.Expense{
					Name:     "Stock purchase: " + name,
					Category: "inventory",
					Amount:   cost.Mul(decimal.NewFromInt(int64(delta))),
					Source:   model.ExpenseSystem,
					UserID:   userID,
					SpentAt:  time.Now(),
				}
				if err := s.expenses.CreateTx(tx, exp); err != nil {
					return apperr.Wrap(err, "failed to post stock expense")
				}
			}
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := &dto.AdjustStockResponse{ProductID: req.ProductID, NewStock: newStock}
	if req.VariantID != nil {
		resp.VariantID = *req.VariantID
	}
	return resp, nil
}

func (s *inventoryService) ListMovements(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 100
	}
	movements, total, err := s.movements.List(ctx, filter)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list stock movements")
	}

	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		item := dto.MovementResponse{
			ID:          m.ID.String(),
			ProductID:   m.ProductID.String(),
			Direction:   m.Direction,
			Quantity:    m.Quantity,
			StockBefore: m.StockBefore,
			StockAfter:  m.StockAfter,
			Reason:      m.Reason,
			Note:        m.Note,
			CreatedAt:   m.CreatedAt.Format(time.RFC3339),
		}
		if m.VariantID != nil {
			item.VariantID = m.VariantID.String()
		}
		if m.SaleID != nil {
			item.SaleID = m.SaleID.String()
		}
		items = append(items, item)
	}
	return &dto.MovementListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}
