package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/fdestra28/kasirtta-sub000/internal/apperr"
	"github.com/fdestra28/kasirtta-sub000/internal/dto"
	"github.com/fdestra28/kasirtta-sub000/internal/model"
	"github.com/fdestra28/kasirtta-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ProductService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
	AddVariant(ctx context.Context, userID, productID uuid.UUID, req dto.CreateVariantRequest) (*dto.VariantResponse, error)
}

type productService struct {
	repo      repository.ProductRepository
	movements repository.StockMovementRepository
	rdb       *redis.Client
	cacheTTL  time.Duration
}

func NewProductService(
	repo repository.ProductRepository,
	movements repository.StockMovementRepository,
	rdb *redis.Client,
	cacheTTL time.Duration,
) ProductService {
	return &productService{repo: repo, movements: movements, rdb: rdb, cacheTTL: cacheTTL}
}

// Create mints a code (P### or J###) and persists the product plus an
// "initial" stock movement in one transaction. The code's unique index is the
// backstop against concurrent minting.
func (s *productService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if req.Type == string(model.ProductService) && req.InitialStock > 0 {
		return nil, apperr.Validation("services carry no stock")
	}
	if req.HasVariants && req.InitialStock > 0 {
		return nil, apperr.Validation("variant parents carry no stock of their own")
	}

	prefix := repository.PrefixPhysical
	if req.Type == string(model.ProductService) {
		prefix = repository.PrefixService
	}

	var p model.Product
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		code, err := s.repo.NextCodeTx(tx, prefix)
		if err != nil {
			return apperr.Wrap(err, "failed to mint product code")
		}
		p = model.Product{
			Code:         code,
			Name:         req.Name,
			Type:         model.ProductType(req.Type),
			SellingPrice: req.SellingPrice,
			PurchaseCost: req.PurchaseCost,
			Stock:        req.InitialStock,
			MinStock:     req.MinStock,
			HasVariants:  req.HasVariants,
			Active:       true,
		}
		if err := s.repo.CreateTx(tx, &p); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("product code %s already taken, please resubmit", code)
			}
			return apperr.Wrap(err, "failed to create product")
		}
		if req.InitialStock > 0 {
			mov := &model.StockMovement{
				ProductID:   p.ID,
				Direction:   model.MovementIn,
				Quantity:    req.InitialStock,
				StockBefore: 0,
				StockAfter:  req.InitialStock,
				Reason:      model.ReasonInitial,
				UserID:      userID,
			}
			if err := s.movements.CreateTx(tx, mov); err != nil {
				return apperr.Wrap(err, "failed to record initial stock")
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return productToResponse(&p), nil
}

// GetByID serves reads through a best-effort TTL cache. The cache is never
// authoritative: financial writes always go to the row-locked store path.
func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	if cached := s.cacheGet(ctx, id); cached != nil {
		return cached, nil
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "product not found")
	}
	resp := productToResponse(p)
	s.cacheSet(ctx, id, resp)
	return resp, nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list products")
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, *productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "product not found")
	}
	if req.Name != "" {
		p.Name = req.Name
	}
	if req.SellingPrice != nil {
		p.SellingPrice = *req.SellingPrice
	}
	if req.PurchaseCost != nil {
		p.PurchaseCost = *req.PurchaseCost
	}
	if req.MinStock != nil {
		p.MinStock = *req.MinStock
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, apperr.Wrap(err, "failed to update product")
	}
	s.cacheInvalidate(ctx, id)
	return productToResponse(p), nil
}

// Deactivate soft-deletes. Catalog entries referenced by sales or movements
// are never hard-deleted; history must keep resolving.
func (s *productService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return storeErr(err, "product not found")
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return apperr.Wrap(err, "failed to deactivate product")
	}
	s.cacheInvalidate(ctx, id)
	return nil
}

func (s *productService) Reactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return storeErr(err, "product not found")
	}
	if err := s.repo.Reactivate(ctx, id); err != nil {
		return apperr.Wrap(err, "failed to reactivate product")
	}
	s.cacheInvalidate(ctx, id)
	return nil
}

func (s *productService) AddVariant(ctx context.Context, userID, productID uuid.UUID, req dto.CreateVariantRequest) (*dto.VariantResponse, error) {
	p, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, storeErr(err, "product not found")
	}
	if !p.HasVariants {
		return nil, apperr.InvalidState("product %s does not track variants", p.Name)
	}
	if p.Type == model.ProductService && req.InitialStock > 0 {
		return nil, apperr.Validation("services carry no stock")
	}

	v := model.ProductVariant{
		ProductID:    p.ID,
		Name:         req.Name,
		SellingPrice: req.SellingPrice,
		PurchaseCost: req.PurchaseCost,
		Stock:        req.InitialStock,
		Active:       true,
	}
	if err := s.repo.CreateVariant(ctx, &v); err != nil {
		return nil, apperr.Wrap(err, "failed to create variant")
	}
	if req.InitialStock > 0 {
		mov := &model.StockMovement{
			ProductID:   p.ID,
			VariantID:   &v.ID,
			Direction:   model.MovementIn,
			Quantity:    req.InitialStock,
			StockBefore: 0,
			StockAfter:  req.InitialStock,
			Reason:      model.ReasonInitial,
			UserID:      userID,
		}
		if err := s.movements.Create(ctx, mov); err != nil {
			return nil, apperr.Wrap(err, "failed to record initial stock")
		}
	}
	s.cacheInvalidate(ctx, productID)
	return variantToResponse(&v), nil
}

// ── Cache helpers ─────────────────────────────────────────────────────────────
// Failures are logged and swallowed; a dead cache must never fail a request.

func productCacheKey(id uuid.UUID) string { return "product:" + id.String() }

func (s *productService) cacheGet(ctx context.Context, id uuid.UUID) *dto.ProductResponse {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(ctx, productCacheKey(id)).Bytes()
	if err != nil {
		return nil
	}
	var resp dto.ProductResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil
	}
	return &resp
}

func (s *productService) cacheSet(ctx context.Context, id uuid.UUID, resp *dto.ProductResponse) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, productCacheKey(id), raw, s.cacheTTL).Err(); err != nil {
		log.Debug().Err(err).Str("product_id", id.String()).Msg("product cache set failed")
	}
}

func (s *productService) cacheInvalidate(ctx context.Context, id uuid.UUID) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, productCacheKey(id)).Err(); err != nil {
		log.Debug().Err(err).Str("product_id", id.String()).Msg("product cache invalidation failed")
	}
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:           p.ID.String(),
		Code:         p.Code,
		Name:         p.Name,
		Type:         string(p.Type),
		SellingPrice: p.SellingPrice,
		PurchaseCost: p.PurchaseCost,
		Stock:        p.Stock,
		MinStock:     p.MinStock,
		HasVariants:  p.HasVariants,
		Active:       p.Active,
	}
	for i := range p.Variants {
		resp.Variants = append(resp.Variants, *variantToResponse(&p.Variants[i]))
	}
	return resp
}

func variantToResponse(v *model.ProductVariant) *dto.VariantResponse {
	return &dto.VariantResponse{
		ID:           v.ID.String(),
		ProductID:    v.ProductID.String(),
		Name:         v.Name,
		SellingPrice: v.SellingPrice,
		PurchaseCost: v.PurchaseCost,
		Stock:        v.Stock,
		Active:       v.Active,
	}
}
