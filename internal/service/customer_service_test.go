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

func TestCreateCustomer(t *testing.T) {
	customers := newStubCustomerRepo()
	svc := service.NewCustomerService(customers, newStubDebtRepo())

	addr := "Jl. Merdeka 12"
	resp, err := svc.Create(context.Background(), dto.CreateCustomerRequest{
		Name:    "Budi",
		Phone:   "081234567",
		Address: &addr,
	})
	require.NoError(t, err)
	assert.Equal(t, "Budi", resp.Name)
	assert.True(t, resp.Active)
	assert.True(t, resp.OutstandingDebt.IsZero())
}

func TestCreateCustomer_DuplicatePhone(t *testing.T) {
	customers := newStubCustomerRepo()
	customers.add(&model.Customer{Name: "Budi", Phone: "081234567", Active: true})
	svc := service.NewCustomerService(customers, newStubDebtRepo())

	_, err := svc.Create(context.Background(), dto.CreateCustomerRequest{
		Name:  "Other Budi",
		Phone: "081234567",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestCustomer_OutstandingDebtInResponse(t *testing.T) {
	customers := newStubCustomerRepo()
	debts := newStubDebtRepo()
	customer := customers.add(&model.Customer{Name: "Budi", Phone: "081234567", Active: true})
	_ = debts.CreateTx(nil, &model.Debt{
		SaleID:     uuid.New(),
		CustomerID: customer.ID,
		AmountDue:  money("50000"),
		AmountPaid: money("20000"),
		Status:     model.DebtPartiallyPaid,
	})
	svc := service.NewCustomerService(customers, debts)

	resp, err := svc.GetByID(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.True(t, resp.OutstandingDebt.Equal(money("30000")), "outstanding = %s", resp.OutstandingDebt)
}

func TestDeactivateCustomer_RefusedWhileOwing(t *testing.T) {
	customers := newStubCustomerRepo()
	debts := newStubDebtRepo()
	customer := customers.add(&model.Customer{Name: "Budi", Phone: "081234567", Active: true})
	_ = debts.CreateTx(nil, &model.Debt{
		SaleID:     uuid.New(),
		CustomerID: customer.ID,
		AmountDue:  money("50000"),
		AmountPaid: money("0"),
		Status:     model.DebtUnpaid,
	})
	svc := service.NewCustomerService(customers, debts)

	err := svc.Deactivate(context.Background(), customer.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidState, apperr.KindOf(err))
	assert.True(t, customer.Active)
}

func TestDeactivateCustomer_SettledDebtAllows(t *testing.T) {
	customers := newStubCustomerRepo()
	debts := newStubDebtRepo()
	customer := customers.add(&model.Customer{Name: "Budi", Phone: "081234567", Active: true})
	_ = debts.CreateTx(nil, &model.Debt{
		SaleID:     uuid.New(),
		CustomerID: customer.ID,
		AmountDue:  money("50000"),
		AmountPaid: money("50000"),
		Status:     model.DebtPaid,
	})
	svc := service.NewCustomerService(customers, debts)

	require.NoError(t, svc.Deactivate(context.Background(), customer.ID))
	assert.False(t, customer.Active)
}

func TestUpdateCustomer(t *testing.T) {
	customers := newStubCustomerRepo()
	customer := customers.add(&model.Customer{Name: "Budi", Phone: "081234567", Active: true})
	svc := service.NewCustomerService(customers, newStubDebtRepo())

	resp, err := svc.Update(context.Background(), customer.ID, dto.UpdateCustomerRequest{
		Phone: "089999999",
	})
	require.NoError(t, err)
	assert.Equal(t, "089999999", resp.Phone)
	assert.Equal(t, "Budi", resp.Name, "omitted fields stay unchanged")
}
