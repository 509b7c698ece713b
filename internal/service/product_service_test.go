package service_test

import (
	"context"
	"testing"

	"github.com/fdestra28/kasirtta-sub000/internal/apperr"
	"github.com/fdestra28/kasirtta-sub000/internal/dto"
	"github.com/fdestra28/kasirtta-sub000/internal/model"
	"github.com/fdestra28/kasirtta-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productFixture struct {
	svc       service.ProductService
	products  *stubProductRepo
	movements *stubMovementRepo
	userID    uuid.UUID
}

// Cache misses on a nil redis client degrade to store reads, so the tests run
// without one.
func newProductFixture() *productFixture {
	products := newStubProductRepo()
	movements := &stubMovementRepo{}
	return &productFixture{
		svc:       service.NewProductService(products, movements, nil, 0),
		products:  products,
		movements: movements,
		userID:    uuid.New(),
	}
}

func TestCreateProduct_MintsSequentialCodes(t *testing.T) {
	f := newProductFixture()

	first, err := f.svc.Create(context.Background(), f.userID, dto.CreateProductRequest{
		Name:         "Coffee Beans",
		Type:         "physical",
		SellingPrice: money("10000"),
	})
	require.NoError(t, err)
	second, err := f.svc.Create(context.Background(), f.userID, dto.CreateProductRequest{
		Name:         "Tea Leaves",
		Type:         "physical",
		SellingPrice: money("8000"),
	})
	require.NoError(t, err)

	assert.Equal(t, "P001", first.Code)
	assert.Equal(t, "P002", second.Code)
}

func TestCreateProduct_ServiceCodePrefix(t *testing.T) {
	f := newProductFixture()

	resp, err := f.svc.Create(context.Background(), f.userID, dto.CreateProductRequest{
		Name:         "Machine Cleaning",
		Type:         "service",
		SellingPrice: money("75000"),
	})
	require.NoError(t, err)
	assert.Equal(t, "J001", resp.Code)
}

func TestCreateProduct_InitialStockRecordsMovement(t *testing.T) {
	f := newProductFixture()

	resp, err := f.svc.Create(context.Background(), f.userID, dto.CreateProductRequest{
		Name:         "Coffee Beans",
		Type:         "physical",
		SellingPrice: money("10000"),
		InitialStock: 25,
	})
	require.NoError(t, err)
	assert.Equal(t, 25, resp.Stock)

	require.Len(t, f.movements.movements, 1)
	mov := f.movements.movements[0]
	assert.Equal(t, model.MovementIn, mov.Direction)
	assert.Equal(t, model.ReasonInitial, mov.Reason)
	assert.Equal(t, 0, mov.StockBefore)
	assert.Equal(t, 25, mov.StockAfter)
}

func TestCreateProduct_ServiceWithStockRejected(t *testing.T) {
	f := newProductFixture()

	_, err := f.svc.Create(context.Background(), f.userID, dto.CreateProductRequest{
		Name:         "Machine Cleaning",
		Type:         "service",
		SellingPrice: money("75000"),
		InitialStock: 5,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCreateProduct_VariantParentWithStockRejected(t *testing.T) {
	f := newProductFixture()

	_, err := f.svc.Create(context.Background(), f.userID, dto.CreateProductRequest{
		Name:         "T-Shirt",
		Type:         "physical",
		SellingPrice: money("50000"),
		HasVariants:  true,
		InitialStock: 5,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestUpdateProduct_PartialFields(t *testing.T) {
	f := newProductFixture()
	p := f.products.add(&model.Product{
		Code:         "P001",
		Name:         "Coffee Beans",
		Type:         model.ProductPhysical,
		SellingPrice: money("10000"),
		Stock:        10,
		Active:       true,
	})

	newPrice := money("12000")
	resp, err := f.svc.Update(context.Background(), p.ID, dto.UpdateProductRequest{
		SellingPrice: &newPrice,
	})
	require.NoError(t, err)
	assert.True(t, resp.SellingPrice.Equal(money("12000")))
	assert.Equal(t, "Coffee Beans", resp.Name, "omitted fields stay unchanged")
	assert.Equal(t, 10, resp.Stock)
}

func TestDeactivateReactivateProduct(t *testing.T) {
	f := newProductFixture()
	p := f.products.add(&model.Product{
		Code: "P001", Name: "Coffee Beans", Type: model.ProductPhysical, Active: true,
	})

	require.NoError(t, f.svc.Deactivate(context.Background(), p.ID))
	assert.False(t, p.Active)

	require.NoError(t, f.svc.Reactivate(context.Background(), p.ID))
	assert.True(t, p.Active)
}

func TestProduct_NotFound(t *testing.T) {
	f := newProductFixture()

	_, err := f.svc.GetByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	err = f.svc.Deactivate(context.Background(), uuid.New())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestAddVariant(t *testing.T) {
	f := newProductFixture()
	p := f.products.add(&model.Product{
		Code: "P001", Name: "T-Shirt", Type: model.ProductPhysical, HasVariants: true, Active: true,
	})

	resp, err := f.svc.AddVariant(context.Background(), f.userID, p.ID, dto.CreateVariantRequest{
		Name:         "Red",
		SellingPrice: money("50000"),
		PurchaseCost: money("30000"),
		InitialStock: 8,
	})
	require.NoError(t, err)
	assert.Equal(t, "Red", resp.Name)
	assert.Equal(t, p.ID.String(), resp.ProductID)

	require.Len(t, f.movements.movements, 1)
	mov := f.movements.movements[0]
	assert.Equal(t, model.ReasonInitial, mov.Reason)
	require.NotNil(t, mov.VariantID)
}

func TestAddVariant_PlainProductRejected(t *testing.T) {
	f := newProductFixture()
	p := f.products.add(&model.Product{
		Code: "P001", Name: "Coffee Beans", Type: model.ProductPhysical, Active: true,
	})

	_, err := f.svc.AddVariant(context.Background(), f.userID, p.ID, dto.CreateVariantRequest{
		Name:         "Large",
		SellingPrice: money("12000"),
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidState, apperr.KindOf(err))
}
