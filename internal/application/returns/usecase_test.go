package returns_test

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-pro/internal/application/dto"
	"github.com/tu-usuario/retail-pro/internal/application/returns"
	"github.com/tu-usuario/retail-pro/internal/domain"
	"github.com/tu-usuario/retail-pro/internal/domain/entity"
	"github.com/tu-usuario/retail-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

type fakeStockRepo struct {
	rows map[string]*entity.Stock
}

func (f *fakeStockRepo) key(b, p string) string { return b + "|" + p }

func (f *fakeStockRepo) Get(branchID, productID string) (*entity.Stock, error) {
	if s, ok := f.rows[f.key(branchID, productID)]; ok {
		cp := *s
		return &cp, nil
	}
	return &entity.Stock{BranchID: branchID, ProductID: productID, Quantity: decimal.Zero}, nil
}

func (f *fakeStockRepo) GetForUpdate(branchID, productID string) (*entity.Stock, error) {
	return f.Get(branchID, productID)
}

func (f *fakeStockRepo) Upsert(stock *entity.Stock) error {
	cp := *stock
	f.rows[f.key(stock.BranchID, stock.ProductID)] = &cp
	return nil
}

func (f *fakeStockRepo) ListByBranch(string) ([]*entity.Stock, error) { return nil, nil }

type fakeSaleRepo struct {
	sales map[string]*entity.Sale
}

func (f *fakeSaleRepo) Create(s *entity.Sale) error       { f.sales[s.ID] = s; return nil }
func (f *fakeSaleRepo) CreateItem(*entity.SaleItem) error { return nil }
func (f *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	if s, ok := f.sales[id]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: venta %s", domain.ErrNotFound, id)
}
func (f *fakeSaleRepo) GetByIDs(ids []string) (map[string]*entity.Sale, error) {
	out := make(map[string]*entity.Sale)
	for _, id := range ids {
		if s, ok := f.sales[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}
func (f *fakeSaleRepo) GetItemForUpdate(saleItemID string) (*entity.SaleItem, error) {
	for _, s := range f.sales {
		for _, si := range s.Items {
			if si.ID == saleItemID {
				return si, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: línea %s", domain.ErrNotFound, saleItemID)
}
func (f *fakeSaleRepo) List(repository.SaleFilter) ([]*entity.Sale, error) { return nil, nil }

type fakeReturnRepo struct {
	returns map[string]*entity.Return
}

func (f *fakeReturnRepo) Create(r *entity.Return) error       { f.returns[r.ID] = r; return nil }
func (f *fakeReturnRepo) CreateItem(*entity.ReturnItem) error { return nil }
func (f *fakeReturnRepo) GetByID(id string) (*entity.Return, error) {
	if r, ok := f.returns[id]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("%w: devolución %s", domain.ErrNotFound, id)
}
func (f *fakeReturnRepo) List(filter repository.ReturnFilter) ([]*entity.Return, error) {
	var out []*entity.Return
	for _, r := range f.returns {
		if filter.SaleID != "" && r.SaleID != filter.SaleID {
			continue
		}
		if filter.BranchID != "" && r.BranchID != filter.BranchID {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
func (f *fakeReturnRepo) SumReturnedQuantity(saleItemID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, r := range f.returns {
		for _, item := range r.Items {
			if item.SaleItemID == saleItemID {
				total = total.Add(item.Quantity)
			}
		}
	}
	return total, nil
}
func (f *fakeReturnRepo) SetDebtOffset(returnID string, amount decimal.Decimal) error {
	r, ok := f.returns[returnID]
	if !ok {
		return fmt.Errorf("%w: devolución %s", domain.ErrNotFound, returnID)
	}
	r.ApplyToDebt = true
	r.DebtOffsetAmount = &amount
	return nil
}

type fakeClientRepo struct {
	clients map[string]*entity.Client
}

func (f *fakeClientRepo) Create(c *entity.Client) error { f.clients[c.ID] = c; return nil }
func (f *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	if c, ok := f.clients[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, id)
}
func (f *fakeClientRepo) GetByIDForUpdate(id string) (*entity.Client, error) { return f.GetByID(id) }
func (f *fakeClientRepo) List() ([]*entity.Client, error)                    { return nil, nil }
func (f *fakeClientRepo) Update(*entity.Client) error                        { return nil }
func (f *fakeClientRepo) UpdateTotalDebt(id string, totalDebt decimal.Decimal) error {
	c, ok := f.clients[id]
	if !ok {
		return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, id)
	}
	c.TotalDebt = totalDebt
	return nil
}

type fakeDebtRepo struct {
	debts map[string]*entity.Debt
}

func (f *fakeDebtRepo) Create(de *entity.Debt) error { f.debts[de.ID] = de; return nil }
func (f *fakeDebtRepo) GetByID(id string) (*entity.Debt, error) {
	if de, ok := f.debts[id]; ok {
		return de, nil
	}
	return nil, fmt.Errorf("%w: deuda %s", domain.ErrNotFound, id)
}
func (f *fakeDebtRepo) ListOpenByClientForUpdate(clientID string) ([]*entity.Debt, error) {
	var out []*entity.Debt
	for _, de := range f.debts {
		if de.ClientID == clientID && de.Outstanding().GreaterThan(decimal.Zero) {
			out = append(out, de)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
func (f *fakeDebtRepo) ListByClient(string) ([]*entity.Debt, error) { return nil, nil }
func (f *fakeDebtRepo) UpdatePaid(id string, paid decimal.Decimal) error {
	de, ok := f.debts[id]
	if !ok {
		return fmt.Errorf("%w: deuda %s", domain.ErrNotFound, id)
	}
	de.Paid = paid
	return nil
}

type fakePaymentRepo struct {
	payments []*entity.DebtPayment
}

func (f *fakePaymentRepo) Create(p *entity.DebtPayment) error {
	f.payments = append(f.payments, p)
	return nil
}
func (f *fakePaymentRepo) ListByClient(string) ([]*entity.DebtPayment, error) { return nil, nil }

type fakeTxRunner struct {
	returnRepo  *fakeReturnRepo
	saleRepo    *fakeSaleRepo
	stockRepo   *fakeStockRepo
	clientRepo  *fakeClientRepo
	debtRepo    *fakeDebtRepo
	paymentRepo *fakePaymentRepo
}

func (f *fakeTxRunner) RunReturn(_ context.Context, fn func(
	returnRepo repository.ReturnRepository,
	saleRepo repository.SaleRepository,
	stockRepo repository.StockRepository,
	clientRepo repository.ClientRepository,
	debtRepo repository.DebtRepository,
	paymentRepo repository.DebtPaymentRepository,
) error) error {
	stockSnap := make(map[string]*entity.Stock, len(f.stockRepo.rows))
	for k, v := range f.stockRepo.rows {
		cp := *v
		stockSnap[k] = &cp
	}
	returnsSnap := make(map[string]*entity.Return, len(f.returnRepo.returns))
	for k, v := range f.returnRepo.returns {
		returnsSnap[k] = v
	}

	if err := fn(f.returnRepo, f.saleRepo, f.stockRepo, f.clientRepo, f.debtRepo, f.paymentRepo); err != nil {
		f.stockRepo.rows = stockSnap
		f.returnRepo.returns = returnsSnap
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: una venta de 2 líneas en b1, pagada mitad efectivo mitad crédito.
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc      *returns.UseCase
	stock   *fakeStockRepo
	sales   *fakeSaleRepo
	returns *fakeReturnRepo
	clients *fakeClientRepo
	debts   *fakeDebtRepo
}

func newFixture() *fixture {
	stock := &fakeStockRepo{rows: make(map[string]*entity.Stock)}
	sales := &fakeSaleRepo{sales: make(map[string]*entity.Sale)}
	rets := &fakeReturnRepo{returns: make(map[string]*entity.Return)}
	clients := &fakeClientRepo{clients: make(map[string]*entity.Client)}
	debts := &fakeDebtRepo{debts: make(map[string]*entity.Debt)}
	payments := &fakePaymentRepo{}
	runner := &fakeTxRunner{
		returnRepo: rets, saleRepo: sales, stockRepo: stock,
		clientRepo: clients, debtRepo: debts, paymentRepo: payments,
	}
	return &fixture{
		uc:      returns.NewUseCase(runner, rets, sales),
		stock:   stock,
		sales:   sales,
		returns: rets,
		clients: clients,
		debts:   debts,
	}
}

// seedSale crea la venta s1: 2×p1 a 100 y 1×p2 a 50, total 250,
// 150 en efectivo y 100 a crédito del cliente c1.
func (fx *fixture) seedSale() {
	fx.clients.clients["c1"] = &entity.Client{ID: "c1", Name: "Cliente 1", TotalDebt: d("100")}
	fx.debts.debts["deuda-s1"] = &entity.Debt{
		ID: "deuda-s1", ClientID: "c1", SaleID: "s1",
		Amount: d("100"), Paid: decimal.Zero, CreatedAt: time.Now(),
	}
	fx.sales.sales["s1"] = &entity.Sale{
		ID:          "s1",
		BranchID:    "b1",
		ClientID:    "c1",
		TotalAmount: d("250"),
		PaidCash:    d("150"),
		PaidDebt:    d("100"),
		CreatedAt:   time.Now(),
		Items: []*entity.SaleItem{
			{ID: "si1", SaleID: "s1", ProductID: "p1", Quantity: d("2"), Price: d("100"), Total: d("200")},
			{ID: "si2", SaleID: "s1", ProductID: "p2", Quantity: d("1"), Price: d("50"), Total: d("50")},
		},
	}
}

var empleado = dto.Actor{UserID: "u-emp", BranchID: "b1", Role: entity.RoleEmployee}

// ──────────────────────────────────────────────────────────────────────────────
// CreateReturn por recibo
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateReturn_PorReciboDevuelveTodoYReponeStock(t *testing.T) {
	fx := newFixture()
	fx.seedSale()

	ret, err := fx.uc.CreateReturn(context.Background(), empleado, dto.CreateReturnRequest{
		SaleID: "s1",
		Type:   entity.ReturnTypeByReceipt,
		Reason: "producto defectuoso",
	})

	require.NoError(t, err)
	require.Len(t, ret.Items, 2)
	assert.True(t, ret.TotalAmount().Equal(d("250")))

	s1, _ := fx.stock.Get("b1", "p1")
	s2, _ := fx.stock.Get("b1", "p2")
	assert.True(t, s1.Quantity.Equal(d("2")), "el stock vuelve a la sucursal de la venta")
	assert.True(t, s2.Quantity.Equal(d("1")))
}

func TestCreateReturn_SegundaPorReciboSoloDevuelveElResto(t *testing.T) {
	fx := newFixture()
	fx.seedSale()

	// Primera devolución: una unidad de p1.
	_, err := fx.uc.CreateReturn(context.Background(), empleado, dto.CreateReturnRequest{
		SaleID: "s1",
		Type:   entity.ReturnTypeByItem,
		Items:  []dto.ReturnItemInput{{SaleItemID: "si1", Quantity: d("1")}},
	})
	require.NoError(t, err)

	ret, err := fx.uc.CreateReturn(context.Background(), empleado, dto.CreateReturnRequest{
		SaleID: "s1",
		Type:   entity.ReturnTypeByReceipt,
	})

	require.NoError(t, err)
	assert.True(t, ret.TotalAmount().Equal(d("150")), "100 restante de p1 + 50 de p2")
}

func TestCreateReturn_VentaYaDevueltaDaConflicto(t *testing.T) {
	fx := newFixture()
	fx.seedSale()

	_, err := fx.uc.CreateReturn(context.Background(), empleado, dto.CreateReturnRequest{
		SaleID: "s1",
		Type:   entity.ReturnTypeByReceipt,
	})
	require.NoError(t, err)

	_, err = fx.uc.CreateReturn(context.Background(), empleado, dto.CreateReturnRequest{
		SaleID: "s1",
		Type:   entity.ReturnTypeByReceipt,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateReturn por posiciones
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateReturn_PorPosicionesValidaCantidadRestante(t *testing.T) {
	fx := newFixture()
	fx.seedSale()

	_, err := fx.uc.CreateReturn(context.Background(), empleado, dto.CreateReturnRequest{
		SaleID: "s1",
		Type:   entity.ReturnTypeByItem,
		Items:  []dto.ReturnItemInput{{SaleItemID: "si1", Quantity: d("3")}},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput, "solo se vendieron 2 unidades")
}

func TestCreateReturn_AcumuladoNoSuperaLoVendido(t *testing.T) {
	fx := newFixture()
	fx.seedSale()

	_, err := fx.uc.CreateReturn(context.Background(), empleado, dto.CreateReturnRequest{
		SaleID: "s1",
		Type:   entity.ReturnTypeByItem,
		Items:  []dto.ReturnItemInput{{SaleItemID: "si1", Quantity: d("2")}},
	})
	require.NoError(t, err)

	_, err = fx.uc.CreateReturn(context.Background(), empleado, dto.CreateReturnRequest{
		SaleID: "s1",
		Type:   entity.ReturnTypeByItem,
		Items:  []dto.ReturnItemInput{{SaleItemID: "si1", Quantity: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "la línea ya fue devuelta completa")
}

func TestCreateReturn_LineaAjenaFalla(t *testing.T) {
	fx := newFixture()
	fx.seedSale()

	_, err := fx.uc.CreateReturn(context.Background(), empleado, dto.CreateReturnRequest{
		SaleID: "s1",
		Type:   entity.ReturnTypeByItem,
		Items:  []dto.ReturnItemInput{{SaleItemID: "si-de-otra-venta", Quantity: d("1")}},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateReturn_MontoProporcionalAlPrecioEfectivo(t *testing.T) {
	fx := newFixture()
	fx.seedSale()
	// p1 con descuento: 2 unidades, total de línea 180 (90 c/u).
	fx.sales.sales["s1"].Items[0].Discount = d("10")
	fx.sales.sales["s1"].Items[0].Total = d("180")

	ret, err := fx.uc.CreateReturn(context.Background(), empleado, dto.CreateReturnRequest{
		SaleID: "s1",
		Type:   entity.ReturnTypeByItem,
		Items:  []dto.ReturnItemInput{{SaleItemID: "si1", Quantity: d("1")}},
	})

	require.NoError(t, err)
	assert.True(t, ret.TotalAmount().Equal(d("90")),
		"el reembolso usa el precio efectivo de la línea, no el de lista")
}

func TestCreateReturn_EmpleadoDeOtraSucursalNoPuede(t *testing.T) {
	fx := newFixture()
	fx.seedSale()
	otro := dto.Actor{UserID: "u-otro", BranchID: "b-otra", Role: entity.RoleEmployee}

	_, err := fx.uc.CreateReturn(context.Background(), otro, dto.CreateReturnRequest{
		SaleID: "s1",
		Type:   entity.ReturnTypeByReceipt,
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Compensación contra deuda
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateReturn_CompensacionPorDefectoTomaElMaximo(t *testing.T) {
	fx := newFixture()
	fx.seedSale()

	ret, err := fx.uc.CreateReturn(context.Background(), empleado, dto.CreateReturnRequest{
		SaleID:      "s1",
		Type:        entity.ReturnTypeByReceipt,
		ApplyToDebt: true,
	})

	require.NoError(t, err)
	// min(saldo 100, devuelto 250) = 100
	require.NotNil(t, ret.DebtOffsetAmount)
	assert.True(t, ret.DebtOffsetAmount.Equal(d("100")))
	assert.True(t, fx.clients.clients["c1"].TotalDebt.IsZero())
	assert.True(t, fx.debts.debts["deuda-s1"].Outstanding().IsZero())
}

func TestCreateReturn_CompensacionExplicitaMayorQueElMaximoFalla(t *testing.T) {
	fx := newFixture()
	fx.seedSale()
	pedido := d("150") // el saldo del cliente es 100

	_, err := fx.uc.CreateReturn(context.Background(), empleado, dto.CreateReturnRequest{
		SaleID:           "s1",
		Type:             entity.ReturnTypeByReceipt,
		ApplyToDebt:      true,
		DebtOffsetAmount: &pedido,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, fx.clients.clients["c1"].TotalDebt.Equal(d("100")), "nada se compensó")
	s1, _ := fx.stock.Get("b1", "p1")
	assert.True(t, s1.Quantity.IsZero(), "la reposición de stock también se revierte")
}

func TestCreateReturn_CompensacionSinClienteFalla(t *testing.T) {
	fx := newFixture()
	fx.seedSale()
	fx.sales.sales["s1"].ClientID = ""

	_, err := fx.uc.CreateReturn(context.Background(), empleado, dto.CreateReturnRequest{
		SaleID:      "s1",
		Type:        entity.ReturnTypeByReceipt,
		ApplyToDebt: true,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// ListWithBreakdowns
// ──────────────────────────────────────────────────────────────────────────────

func TestListWithBreakdowns_DesglosaPorMetodoDePagoOriginal(t *testing.T) {
	fx := newFixture()
	fx.seedSale()

	_, err := fx.uc.CreateReturn(context.Background(), empleado, dto.CreateReturnRequest{
		SaleID: "s1",
		Type:   entity.ReturnTypeByReceipt,
	})
	require.NoError(t, err)

	out, err := fx.uc.ListWithBreakdowns(context.Background(), empleado, repository.ReturnFilter{})

	require.NoError(t, err)
	require.Len(t, out, 1)
	b := out[0].Breakdown
	require.NotNil(t, b)
	assert.True(t, b.Total.Equal(d("250")))
	assert.True(t, b.Debt.Equal(d("100")), "primero drena la bolsa de deuda")
	assert.True(t, b.Cash.Equal(d("150")))
	assert.True(t, b.Card.IsZero())
}

func TestListWithBreakdowns_SinDevolucionesListaVacia(t *testing.T) {
	fx := newFixture()

	out, err := fx.uc.ListWithBreakdowns(context.Background(), empleado, repository.ReturnFilter{})

	require.NoError(t, err)
	assert.Empty(t, out)
}
