package service_test

import (
	"context"
	"fmt"
	"time"

	"github.com/fdestra28/kasirtta-sub000/internal/dto"
	"github.com/fdestra28/kasirtta-sub000/internal/model"
	"github.com/fdestra28/kasirtta-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs. Services run with DB()==nil so runTx passes a
// nil tx straight through; the stubs ignore it.

// ── ProductRepository ────────────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
	variants map[uuid.UUID]*model.ProductVariant
	codeSeq  int

	stockWrites int // counts UpdateStockTx + UpdateVariantStockTx calls
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{
		products: make(map[uuid.UUID]*model.Product),
		variants: make(map[uuid.UUID]*model.ProductVariant),
	}
}

func (r *stubProductRepo) add(p *model.Product) *model.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return p
}

func (r *stubProductRepo) addVariant(v *model.ProductVariant) *model.ProductVariant {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.variants[v.ID] = v
	return v
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	r.add(p)
	return nil
}

func (r *stubProductRepo) CreateTx(_ *gorm.DB, p *model.Product) error {
	r.add(p)
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindByCode(_ context.Context, code string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	var out []model.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Active = false
	return nil
}

func (r *stubProductRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Active = true
	return nil
}

func (r *stubProductRepo) CreateVariant(_ context.Context, v *model.ProductVariant) error {
	r.addVariant(v)
	return nil
}

func (r *stubProductRepo) FindVariantByID(_ context.Context, id uuid.UUID) (*model.ProductVariant, error) {
	v, ok := r.variants[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubProductRepo) UpdateVariant(_ context.Context, v *model.ProductVariant) error {
	r.variants[v.ID] = v
	return nil
}

func (r *stubProductRepo) FindForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindVariantForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.ProductVariant, error) {
	v, ok := r.variants[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubProductRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, stock int) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock = stock
	r.stockWrites++
	return nil
}

func (r *stubProductRepo) UpdateVariantStockTx(_ *gorm.DB, id uuid.UUID, stock int) error {
	v, ok := r.variants[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Stock = stock
	r.stockWrites++
	return nil
}

func (r *stubProductRepo) NextCodeTx(_ *gorm.DB, prefix string) (string, error) {
	r.codeSeq++
	return repository.FormatCode(prefix, r.codeSeq), nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── SaleRepository ───────────────────────────────────────────────────────────

type stubSaleRepo struct {
	sales   map[uuid.UUID]*model.Sale
	codeSeq int

	createErr error // forced failure for atomicity tests
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	if r.createErr != nil {
		return r.createErr
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSaleRepo) FindByCode(_ context.Context, code string) (*model.Sale, error) {
	for _, s := range r.sales {
		if s.Code == code {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSaleRepo) List(_ context.Context, _ dto.SaleFilter) ([]model.Sale, int64, error) {
	var out []model.Sale
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubSaleRepo) NextCodeTx(_ *gorm.DB, at time.Time) (string, error) {
	r.codeSeq++
	return repository.FormatCode(repository.SalePrefix(at), r.codeSeq), nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// ── StockMovementRepository ──────────────────────────────────────────────────

type stubMovementRepo struct {
	movements []model.StockMovement
	createErr error
}

func (r *stubMovementRepo) Create(_ context.Context, m *model.StockMovement) error {
	return r.CreateTx(nil, m)
}

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	if r.createErr != nil {
		return r.createErr
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) List(_ context.Context, _ dto.MovementFilter) ([]model.StockMovement, int64, error) {
	return r.movements, int64(len(r.movements)), nil
}

var _ repository.StockMovementRepository = (*stubMovementRepo)(nil)

// ── DebtRepository ───────────────────────────────────────────────────────────

type stubDebtRepo struct {
	debts    map[uuid.UUID]*model.Debt
	payments []model.DebtPayment
}

func newStubDebtRepo() *stubDebtRepo {
	return &stubDebtRepo{debts: make(map[uuid.UUID]*model.Debt)}
}

func (r *stubDebtRepo) CreateTx(_ *gorm.DB, d *model.Debt) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.debts[d.ID] = d
	return nil
}

func (r *stubDebtRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Debt, error) {
	d, ok := r.debts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return d, nil
}

func (r *stubDebtRepo) FindForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Debt, error) {
	d, ok := r.debts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return d, nil
}

func (r *stubDebtRepo) UpdateAmountsTx(_ *gorm.DB, id uuid.UUID, paid decimal.Decimal, status string) error {
	d, ok := r.debts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	d.AmountPaid = paid
	d.Status = status
	return nil
}

func (r *stubDebtRepo) CreatePaymentTx(_ *gorm.DB, p *model.DebtPayment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.payments = append(r.payments, *p)
	return nil
}

func (r *stubDebtRepo) List(_ context.Context, _ dto.DebtFilter) ([]model.Debt, int64, error) {
	var out []model.Debt
	for _, d := range r.debts {
		out = append(out, *d)
	}
	return out, int64(len(out)), nil
}

func (r *stubDebtRepo) OutstandingByCustomer(_ context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, d := range r.debts {
		if d.CustomerID == customerID && d.Status != model.DebtPaid {
			total = total.Add(d.AmountDue.Sub(d.AmountPaid))
		}
	}
	return total, nil
}

func (r *stubDebtRepo) DB() *gorm.DB { return nil }

var _ repository.DebtRepository = (*stubDebtRepo)(nil)

// ── CustomerRepository ───────────────────────────────────────────────────────

type stubCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
}

func (r *stubCustomerRepo) add(c *model.Customer) *model.Customer {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.customers[c.ID] = c
	return c
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	for _, existing := range r.customers {
		if existing.Phone == c.Phone {
			return gorm.ErrDuplicatedKey
		}
	}
	r.add(c)
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCustomerRepo) List(_ context.Context, _ dto.CustomerFilter) ([]model.Customer, int64, error) {
	var out []model.Customer
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubCustomerRepo) Update(_ context.Context, c *model.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	c, ok := r.customers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Active = false
	return nil
}

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)

// ── ExpenseRepository ────────────────────────────────────────────────────────

type stubExpenseRepo struct {
	expenses map[uuid.UUID]*model.Expense
}

func newStubExpenseRepo() *stubExpenseRepo {
	return &stubExpenseRepo{expenses: make(map[uuid.UUID]*model.Expense)}
}

func (r *stubExpenseRepo) Create(_ context.Context, e *model.Expense) error {
	return r.CreateTx(nil, e)
}

func (r *stubExpenseRepo) CreateTx(_ *gorm.DB, e *model.Expense) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.expenses[e.ID] = e
	return nil
}

func (r *stubExpenseRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Expense, error) {
	e, ok := r.expenses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (r *stubExpenseRepo) List(_ context.Context, _ dto.ExpenseFilter) ([]model.Expense, int64, error) {
	var out []model.Expense
	for _, e := range r.expenses {
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (r *stubExpenseRepo) Update(_ context.Context, e *model.Expense) error {
	r.expenses[e.ID] = e
	return nil
}

func (r *stubExpenseRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.expenses, id)
	return nil
}

func (r *stubExpenseRepo) TotalBetween(_ context.Context, from, to time.Time) (decimal.Decimal, error) {
	return r.TotalBetweenTx(nil, from, to)
}

func (r *stubExpenseRepo) TotalBetweenTx(_ *gorm.DB, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range r.expenses {
		if !e.SpentAt.Before(from) && e.SpentAt.Before(to) {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

var _ repository.ExpenseRepository = (*stubExpenseRepo)(nil)

// ── UserRepository ───────────────────────────────────────────────────────────

type stubUserRepo struct {
	users      map[uuid.UUID]*model.User
	referenced map[uuid.UUID]bool
	deleted    []uuid.UUID

	txReads  int // FindByIDTx calls
	txWrites int // UpdateTx calls
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users:      make(map[uuid.UUID]*model.User),
		referenced: make(map[uuid.UUID]bool),
	}
}

func (r *stubUserRepo) add(u *model.User) *model.User {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return u
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	r.add(u)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) List(_ context.Context, includeInactive bool) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if !includeInactive && !u.Active {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	return r.DeactivateTx(nil, id)
}

func (r *stubUserRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Active = true
	return nil
}

func (r *stubUserRepo) CountActiveOwnersTx(_ *gorm.DB) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == model.RoleOwner && u.Active {
			n++
		}
	}
	return n, nil
}

func (r *stubUserRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.User, error) {
	r.txReads++
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) UpdateTx(_ *gorm.DB, u *model.User) error {
	r.txWrites++
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.users, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *stubUserRepo) DeactivateTx(_ *gorm.DB, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Active = false
	return nil
}

func (r *stubUserRepo) ReferencedTx(_ *gorm.DB, id uuid.UUID) (bool, error) {
	return r.referenced[id], nil
}

func (r *stubUserRepo) DB() *gorm.DB { return nil }

var _ repository.UserRepository = (*stubUserRepo)(nil)

// ── ReportRepository ─────────────────────────────────────────────────────────

// stubReportRepo serves a canned aggregate and records the period it was
// asked for.
type stubReportRepo struct {
	aggregate repository.SalesAggregate
	daily     []repository.DailySales
	best      []repository.BestSeller

	lastFrom, lastTo time.Time
}

func (r *stubReportRepo) SalesAggregate(_ context.Context, from, to time.Time) (*repository.SalesAggregate, error) {
	return r.SalesAggregateTx(nil, from, to)
}

func (r *stubReportRepo) SalesAggregateTx(_ *gorm.DB, from, to time.Time) (*repository.SalesAggregate, error) {
	r.lastFrom, r.lastTo = from, to
	agg := r.aggregate
	return &agg, nil
}

func (r *stubReportRepo) DailySales(_ context.Context, from, to time.Time) ([]repository.DailySales, error) {
	r.lastFrom, r.lastTo = from, to
	return r.daily, nil
}

func (r *stubReportRepo) BestSellers(_ context.Context, from, to time.Time, limit int) ([]repository.BestSeller, error) {
	r.lastFrom, r.lastTo = from, to
	if limit < len(r.best) {
		return r.best[:limit], nil
	}
	return r.best, nil
}

var _ repository.ReportRepository = (*stubReportRepo)(nil)

// ── ClosingRepository ────────────────────────────────────────────────────────

type resetRange struct{ from, to time.Time }

type stubClosingRepo struct {
	closings []model.BookClosing
	resets   []resetRange

	createErr error
}

func (r *stubClosingRepo) CreateTx(_ *gorm.DB, c *model.BookClosing) error {
	if r.createErr != nil {
		return r.createErr
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.closings = append(r.closings, *c)
	return nil
}

func (r *stubClosingRepo) ResetPeriodTx(_ *gorm.DB, from, to time.Time) error {
	r.resets = append(r.resets, resetRange{from: from, to: to})
	return nil
}

func (r *stubClosingRepo) List(_ context.Context) ([]model.BookClosing, error) {
	return r.closings, nil
}

func (r *stubClosingRepo) DB() *gorm.DB { return nil }

var _ repository.ClosingRepository = (*stubClosingRepo)(nil)

// money is a test shorthand for decimal literals.
func money(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(fmt.Sprintf("bad decimal literal %q", s))
	}
	return d
}
