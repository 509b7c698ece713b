package service

import (
	"errors"
	"fmt"

	"github.com/fdestra28/kasirtta-sub000/internal/apperr"
	"github.com/fdestra28/kasirtta-sub000/internal/dto"
	"github.com/fdestra28/kasirtta-sub000/internal/model"
	"github.com/fdestra28/kasirtta-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ResolvedLine is the authoritative view of a requested cart line: price, cost
// and kind as the catalog knows them at commit time, never as the client sent
// them. Stock is the row-locked quantity at resolution time.
type ResolvedLine struct {
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Name      string
	Kind      model.ProductType
	UnitPrice decimal.Decimal
	UnitCost  decimal.Decimal
	Quantity  int
	Stock     int
}

func (l *ResolvedLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CatalogService resolves cart lines to authoritative catalog data.
type CatalogService interface {
	// ResolveTx row-locks the referenced product (and variant) on the caller's
	// open transaction and validates the line: active, not a variant parent
	// sold directly, enough stock for physical goods. The lock is held until
	// the caller's commit or rollback.
	ResolveTx(tx *gorm.DB, line dto.SaleItemRequest) (*ResolvedLine, error)
}

type catalogService struct {
	products repository.ProductRepository
}

func NewCatalogService(products repository.ProductRepository) CatalogService {
	return &catalogService{products: products}
}

func (s *catalogService) ResolveTx(tx *gorm.DB, line dto.SaleItemRequest) (*ResolvedLine, error) {
	if line.Quantity < 1 {
		return nil, apperr.Validation("quantity must be at least 1")
	}
	productID, err := uuid.Parse(line.ProductID)
	if err != nil {
		return nil, apperr.Validation("invalid product_id %q", line.ProductID)
	}

	p, err := s.products.FindForUpdateTx(tx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product %s not found", line.ProductID)
		}
		return nil, apperr.Wrap(err, "failed to resolve product")
	}
	if !p.Active {
		return nil, apperr.NotFound("product %s is inactive", p.Name)
	}

	if p.HasVariants {
		return s.resolveVariant(tx, p, line)
	}
	if line.VariantID != nil {
		return nil, apperr.Validation("product %s has no variants", p.Name)
	}

	if p.Type == model.ProductPhysical && p.Stock < line.Quantity {
		return nil, apperr.Insufficient("insufficient stock for %s: have %d, need %d", p.Name, p.Stock, line.Quantity)
	}

	return &ResolvedLine{
		ProductID: p.ID,
		Name:      p.Name,
		Kind:      p.Type,
		UnitPrice: p.SellingPrice,
		UnitCost:  p.PurchaseCost,
		Quantity:  line.Quantity,
		Stock:     p.Stock,
	}, nil
}

// resolveVariant handles lines on a variant parent. Selling the parent row
// directly is a business-rule violation, not a validation slip.
func (s *catalogService) resolveVariant(tx *gorm.DB, p *model.Product, line dto.SaleItemRequest) (*ResolvedLine, error) {
	if line.VariantID == nil {
		return nil, apperr.InvalidState("product %s is sold per variant; select one", p.Name)
	}
	variantID, err := uuid.Parse(*line.VariantID)
	if err != nil {
		return nil, apperr.Validation("invalid variant_id %q", *line.VariantID)
	}

	v, err := s.products.FindVariantForUpdateTx(tx, variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("variant %s not found", *line.VariantID)
		}
		return nil, apperr.Wrap(err, "failed to resolve variant")
	}
	if v.ProductID != p.ID {
		return nil, apperr.Validation("variant %s does not belong to product %s", v.Name, p.Name)
	}
	if !v.Active {
		return nil, apperr.NotFound("variant %s is inactive", v.Name)
	}
	if p.Type == model.ProductPhysical && v.Stock < line.Quantity {
		return nil, apperr.Insufficient("insufficient stock for %s (%s): have %d, need %d", p.Name, v.Name, v.Stock, line.Quantity)
	}

	return &ResolvedLine{
		ProductID: p.ID,
		VariantID: &v.ID,
		Name:      fmt.Sprintf("%s (%s)", p.Name, v.Name),
		Kind:      p.Type,
		UnitPrice: v.SellingPrice,
		UnitCost:  v.PurchaseCost,
		Quantity:  line.Quantity,
		Stock:     v.Stock,
	}, nil
}
