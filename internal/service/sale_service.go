package service

import (
	"context"
	"errors"
	"time"

	"github.com/fdestra28/kasirtta-sub000/internal/apperr"
	"github.com/fdestra28/kasirtta-sub000/internal/dto"
	"github.com/fdestra28/kasirtta-sub000/internal/model"
	"github.com/fdestra28/kasirtta-sub000/internal/repository"
	"github.com/fdestra28/kasirtta-sub000/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateSaleRequest) (*dto.SaleResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
}

type saleService struct {
	repo       repository.SaleRepository
	products   repository.ProductRepository
	movements  repository.StockMovementRepository
	debts      repository.DebtRepository
	customers  repository.CustomerRepository
	catalog    CatalogService
	dispatcher *worker.Dispatcher
}

func NewSaleService(
	repo repository.SaleRepository,
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	debts repository.DebtRepository,
	customers repository.CustomerRepository,
	catalog CatalogService,
	dispatcher *worker.Dispatcher,
) SaleService {
	return &saleService{
		repo:       repo,
		products:   products,
		movements:  movements,
		debts:      debts,
		customers:  customers,
		catalog:    catalog,
		dispatcher: dispatcher,
	}
}

// unitKey identifies a sellable unit within one cart; variantID stays uuid.Nil
// for products sold directly.
type unitKey struct {
	productID uuid.UUID
	variantID uuid.UUID
}

func lineUnitKey(line *ResolvedLine) unitKey {
	key := unitKey{productID: line.ProductID}
	if line.VariantID != nil {
		key.variantID = *line.VariantID
	}
	return key
}

// ── Create ────────────────────────────────────────────────────────────────────
// Posts an order as one ACID transaction:
//  1. Validate the cart shape and payment instructions
//  2. For each line: resolve + row-lock the sellable unit, accumulate the
//     server-side total (client prices are never trusted)
//  3. Validate payment against the server total
//  4. Mint the TRX code, insert header + items, decrement stock, record
//     out-movements, open a debt for credit sales
//  5. Commit — any failure before this rolls the whole order back
//  6. (async) enqueue the receipt job, best effort

func (s *saleService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(req.Items) == 0 {
		return nil, apperr.Validation("cart is empty")
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, apperr.Validation("quantity must be at least 1")
		}
	}

	var customerID *uuid.UUID
	if req.PaymentMethod == model.PaymentCredit {
		if req.CustomerID == nil {
			return nil, apperr.Validation("credit sales require a customer")
		}
		cid, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			return nil, apperr.Validation("invalid customer_id %q", *req.CustomerID)
		}
		customer, err := s.customers.FindByID(ctx, cid)
		if err != nil || !customer.Active {
			return nil, apperr.NotFound("customer not found or inactive")
		}
		customerID = &cid
	}

	var dueDate *time.Time
	if req.DueDate != nil {
		d, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			return nil, apperr.Validation("invalid due_date %q", *req.DueDate)
		}
		dueDate = &d
	}

	var sale model.Sale
	var debtID *uuid.UUID

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Pricing: resolve every line inside the open transaction so the
		// row locks hold until commit. Stock is checked against the running
		// remainder per unit — a cart naming the same unit on two lines must
		// not pass both checks against the same pre-decrement snapshot.
		resolved := make([]*ResolvedLine, 0, len(req.Items))
		remaining := make(map[unitKey]int)
		total := decimal.Zero
		for _, item := range req.Items {
			line, err := s.catalog.ResolveTx(tx, item)
			if err != nil {
				return err
			}
			if line.Kind == model.ProductPhysical {
				key := lineUnitKey(line)
				if have, seen := remaining[key]; seen {
					line.Stock = have
					if line.Stock < line.Quantity {
						return apperr.Insufficient("insufficient stock for %s: have %d, need %d",
							line.Name, line.Stock, line.Quantity)
					}
				}
				remaining[key] = line.Stock - line.Quantity
			}
			resolved = append(resolved, line)
			total = total.Add(line.Subtotal())
		}

		// Payment validation against the server-computed total.
		tendered := req.AmountTendered
		change := decimal.Zero
		switch req.PaymentMethod {
		case model.PaymentCash:
			if tendered.LessThan(total) {
				return apperr.Insufficient("amount tendered %s is below total %s",
					tendered.StringFixed(2), total.StringFixed(2))
			}
			change = tendered.Sub(total)
		case model.PaymentTransfer:
			tendered = total
		case model.PaymentCredit:
			tendered = decimal.Zero
		default:
			return apperr.Validation("unknown payment method %q", req.PaymentMethod)
		}

		code, err := s.repo.NextCodeTx(tx, time.Now())
		if err != nil {
			return apperr.Wrap(err, "failed to mint sale code")
		}

		sale = model.Sale{
			Code:           code,
			UserID:         userID,
			CustomerID:     customerID,
			Total:          total,
			PaymentMethod:  req.PaymentMethod,
			AmountTendered: tendered,
			Change:         change,
		}
		for _, line := range resolved {
			sale.Items = append(sale.Items, model.SaleItem{
				ProductID: line.ProductID,
				VariantID: line.VariantID,
				Name:      line.Name,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
				UnitCost:  line.UnitCost,
				Subtotal:  line.Subtotal(),
			})
		}

		if err := s.repo.CreateTx(tx, &sale); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Lost the sequence race; the unique index on code is the
				// backstop. The caller resubmits.
				return apperr.Conflict("sale code %s already taken, please resubmit", code)
			}
			return apperr.Wrap(err, "failed to persist sale")
		}

		// Stock ledger: decrement and record one out-movement per physical line.
		for _, line := range resolved {
			if line.Kind != model.ProductPhysical {
				continue
			}
			newStock := line.Stock - line.Quantity
			if line.VariantID != nil {
				err = s.products.UpdateVariantStockTx(tx, *line.VariantID, newStock)
			} else {
				err = s.products.UpdateStockTx(tx, line.ProductID, newStock)
			}
			if err != nil {
				return apperr.Wrap(err, "failed to update stock")
			}

			mov := &model.StockMovement{
				ProductID:   line.ProductID,
				VariantID:   line.VariantID,
				Direction:   model.MovementOut,
				Quantity:    line.Quantity,
				StockBefore: line.Stock,
				StockAfter:  newStock,
				Reason:      model.ReasonTransaction,
				SaleID:      &sale.ID,
				UserID:      userID,
				Note:        "sale " + sale.Code,
			}
			if err := s.movements.CreateTx(tx, mov); err != nil {
				return apperr.Wrap(err, "failed to record stock movement")
			}
		}

		if req.PaymentMethod == model.PaymentCredit {
			debt := &model.Debt{
				SaleID:     sale.ID,
				CustomerID: *customerID,
				AmountDue:  total,
				AmountPaid: decimal.Zero,
				Status:     model.DebtUnpaid,
				DueDate:    dueDate,
			}
			if err := s.debts.CreateTx(tx, debt); err != nil {
				return apperr.Wrap(err, "failed to open debt")
			}
			debtID = &debt.ID
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Receipt job is best-effort — fire & forget, never fails the sale.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueReceipt(ctx, worker.ReceiptJobPayload{SaleID: sale.ID.String()})
	}

	resp := saleToResponse(&sale)
	if debtID != nil {
		id := debtID.String()
		resp.DebtID = &id
	}
	return resp, nil
}

func (s *saleService) GetByID(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "sale not found")
	}
	return saleToResponse(sale), nil
}

func (s *saleService) List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list sales")
	}
	items := make([]dto.SaleListItem, 0, len(sales))
	for _, sale := range sales {
		cashier := ""
		if sale.User != nil {
			cashier = sale.User.FullName
		}
		items = append(items, dto.SaleListItem{
			ID:            sale.ID.String(),
			Code:          sale.Code,
			Cashier:       cashier,
			Total:         sale.Total,
			PaymentMethod: sale.PaymentMethod,
			ItemCount:     len(sale.Items),
			CreatedAt:     sale.CreatedAt.Format(time.RFC3339),
		})
	}
	return &dto.SaleListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func saleToResponse(sale *model.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(sale.Items))
	for _, item := range sale.Items {
		items = append(items, dto.SaleItemResponse{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}
	return &dto.SaleResponse{
		ID:             sale.ID.String(),
		Code:           sale.Code,
		Items:          items,
		Total:          sale.Total,
		PaymentMethod:  sale.PaymentMethod,
		AmountTendered: sale.AmountTendered,
		Change:         sale.Change,
		CreatedAt:      sale.CreatedAt.Format(time.RFC3339),
	}
}
