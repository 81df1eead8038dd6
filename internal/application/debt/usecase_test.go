package debt_test

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-pro/internal/application/debt"
	"github.com/tu-usuario/retail-pro/internal/application/dto"
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
func (f *fakeDebtRepo) ListByClient(clientID string) ([]*entity.Debt, error) {
	var out []*entity.Debt
	for _, de := range f.debts {
		if de.ClientID == clientID {
			out = append(out, de)
		}
	}
	return out, nil
}
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
func (f *fakePaymentRepo) ListByClient(clientID string) ([]*entity.DebtPayment, error) {
	var out []*entity.DebtPayment
	for _, p := range f.payments {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeTxRunner struct {
	clientRepo  *fakeClientRepo
	debtRepo    *fakeDebtRepo
	paymentRepo *fakePaymentRepo
}

func (f *fakeTxRunner) RunDebt(_ context.Context, fn func(
	clientRepo repository.ClientRepository,
	debtRepo repository.DebtRepository,
	paymentRepo repository.DebtPaymentRepository,
) error) error {
	return fn(f.clientRepo, f.debtRepo, f.paymentRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc       *debt.UseCase
	clients  *fakeClientRepo
	debts    *fakeDebtRepo
	payments *fakePaymentRepo
}

func newFixture() *fixture {
	clients := &fakeClientRepo{clients: make(map[string]*entity.Client)}
	debts := &fakeDebtRepo{debts: make(map[string]*entity.Debt)}
	payments := &fakePaymentRepo{}
	runner := &fakeTxRunner{clientRepo: clients, debtRepo: debts, paymentRepo: payments}
	return &fixture{
		uc:       debt.NewUseCase(runner, debts, payments),
		clients:  clients,
		debts:    debts,
		payments: payments,
	}
}

func (fx *fixture) addClient(id string, totalDebt string) {
	fx.clients.clients[id] = &entity.Client{ID: id, Name: "Cliente " + id, TotalDebt: d(totalDebt)}
}

// addDebt crea deudas con fechas crecientes según el orden de llamada.
func (fx *fixture) addDebt(id, clientID string, amount, paid string) {
	fx.debts.debts[id] = &entity.Debt{
		ID:        id,
		ClientID:  clientID,
		Amount:    d(amount),
		Paid:      d(paid),
		CreatedAt: baseTime.Add(time.Duration(len(fx.debts.debts)) * time.Minute),
	}
}

var (
	admin    = dto.Actor{UserID: "u-admin", Role: entity.RoleAdmin}
	baseTime = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
)

// ──────────────────────────────────────────────────────────────────────────────
// PayDebt
// ──────────────────────────────────────────────────────────────────────────────

func TestPayDebt_MontoCeroFalla(t *testing.T) {
	fx := newFixture()

	_, err := fx.uc.PayDebt(context.Background(), admin, dto.PayDebtRequest{
		ClientID: "c1",
		Amount:   decimal.Zero,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPayDebt_RepartoFIFOEntreDeudas(t *testing.T) {
	fx := newFixture()
	fx.addClient("c1", "150")
	fx.addDebt("d1", "c1", "100", "0")
	fx.addDebt("d2", "c1", "50", "0")

	payment, err := fx.uc.PayDebt(context.Background(), admin, dto.PayDebtRequest{
		ClientID: "c1",
		Amount:   d("120"),
	})

	require.NoError(t, err)
	assert.True(t, payment.Amount.Equal(d("120")))
	assert.True(t, fx.debts.debts["d1"].Paid.Equal(d("100")), "la deuda más antigua cobra completa")
	assert.True(t, fx.debts.debts["d2"].Paid.Equal(d("20")), "la siguiente recibe el resto")
	assert.True(t, fx.clients.clients["c1"].TotalDebt.Equal(d("30")))
}

func TestPayDebt_RecortaAlSaldoDelCliente(t *testing.T) {
	fx := newFixture()
	fx.addClient("c1", "80")
	fx.addDebt("d1", "c1", "80", "0")

	payment, err := fx.uc.PayDebt(context.Background(), admin, dto.PayDebtRequest{
		ClientID: "c1",
		Amount:   d("200"),
	})

	require.NoError(t, err)
	assert.True(t, payment.Amount.Equal(d("80")),
		"el registro guarda el monto aplicado, no el solicitado")
	assert.True(t, fx.clients.clients["c1"].TotalDebt.IsZero())
	assert.True(t, fx.debts.debts["d1"].Outstanding().IsZero())
}

// Con saldo en cero el monto pasa crudo y queda registrado como anticipo;
// el acumulado del cliente no baja de cero.
func TestPayDebt_SobrepagoConSaldoCero(t *testing.T) {
	fx := newFixture()
	fx.addClient("c1", "0")

	payment, err := fx.uc.PayDebt(context.Background(), admin, dto.PayDebtRequest{
		ClientID: "c1",
		Amount:   d("40"),
	})

	require.NoError(t, err)
	assert.True(t, payment.Amount.Equal(d("40")))
	assert.True(t, fx.clients.clients["c1"].TotalDebt.IsZero())
}

func TestPayDebt_DeudaDirigida(t *testing.T) {
	fx := newFixture()
	fx.addClient("c1", "150")
	fx.addDebt("d1", "c1", "100", "0")
	fx.addDebt("d2", "c1", "50", "0")

	_, err := fx.uc.PayDebt(context.Background(), admin, dto.PayDebtRequest{
		ClientID: "c1",
		DebtID:   "d2",
		Amount:   d("30"),
	})

	require.NoError(t, err)
	assert.True(t, fx.debts.debts["d1"].Paid.IsZero(), "la deuda más antigua no se toca")
	assert.True(t, fx.debts.debts["d2"].Paid.Equal(d("30")))
}

// Comportamiento heredado: en un pago dirigido el acumulado del cliente baja
// por el monto completo (recortado al saldo total), aunque la deuda indicada
// absorba menos. El excedente no se reparte a las otras deudas abiertas.
func TestPayDebt_DeudaDirigidaDescuentaElMontoCompletoDelAcumulado(t *testing.T) {
	fx := newFixture()
	fx.addClient("c1", "150")
	fx.addDebt("d1", "c1", "100", "0")
	fx.addDebt("d2", "c1", "50", "0")

	payment, err := fx.uc.PayDebt(context.Background(), admin, dto.PayDebtRequest{
		ClientID: "c1",
		DebtID:   "d2",
		Amount:   d("120"),
	})

	require.NoError(t, err)
	assert.True(t, payment.Amount.Equal(d("120")))
	assert.True(t, fx.debts.debts["d2"].Paid.Equal(d("50")), "la deuda dirigida absorbe hasta su saldo")
	assert.True(t, fx.debts.debts["d1"].Paid.IsZero(), "el excedente no salta a otras deudas")
	assert.True(t, fx.clients.clients["c1"].TotalDebt.Equal(d("30")),
		"el acumulado baja por el monto completo aplicado")
}

func TestPayDebt_DeudaDeOtroClienteFalla(t *testing.T) {
	fx := newFixture()
	fx.addClient("c1", "100")
	fx.addClient("c2", "50")
	fx.addDebt("d-ajena", "c2", "50", "0")

	_, err := fx.uc.PayDebt(context.Background(), admin, dto.PayDebtRequest{
		ClientID: "c1",
		DebtID:   "d-ajena",
		Amount:   d("10"),
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPayDebt_EmpleadoNoPagaEnOtraSucursal(t *testing.T) {
	fx := newFixture()
	fx.addClient("c1", "100")
	empleado := dto.Actor{UserID: "u-emp", BranchID: "b2", Role: entity.RoleEmployee}

	_, err := fx.uc.PayDebt(context.Background(), empleado, dto.PayDebtRequest{
		ClientID: "c1",
		BranchID: "b1",
		Amount:   d("10"),
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestPayDebt_TipoDePagoPorDefectoEsCash(t *testing.T) {
	fx := newFixture()
	fx.addClient("c1", "100")
	fx.addDebt("d1", "c1", "100", "0")

	payment, err := fx.uc.PayDebt(context.Background(), admin, dto.PayDebtRequest{
		ClientID: "c1",
		Amount:   d("10"),
	})

	require.NoError(t, err)
	assert.Equal(t, entity.PaymentTypeCash, payment.PaymentType)
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyCreditSaleInTx / ApplyOffsetInTx
// ──────────────────────────────────────────────────────────────────────────────

// fakeReturnRepo solo registra el estampado de la compensación.
type fakeReturnRepo struct {
	offsets map[string]decimal.Decimal
}

func (f *fakeReturnRepo) Create(*entity.Return) error         { return nil }
func (f *fakeReturnRepo) CreateItem(*entity.ReturnItem) error { return nil }
func (f *fakeReturnRepo) GetByID(string) (*entity.Return, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeReturnRepo) List(repository.ReturnFilter) ([]*entity.Return, error) { return nil, nil }
func (f *fakeReturnRepo) SumReturnedQuantity(string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (f *fakeReturnRepo) SetDebtOffset(returnID string, amount decimal.Decimal) error {
	f.offsets[returnID] = amount
	return nil
}

func TestApplyOffsetInTx_CompensaFIFOYEstampaLaDevolucion(t *testing.T) {
	fx := newFixture()
	fx.addClient("c1", "100")
	fx.addDebt("d1", "c1", "60", "0")
	fx.addDebt("d2", "c1", "40", "0")
	returns := &fakeReturnRepo{offsets: make(map[string]decimal.Decimal)}

	client, _ := fx.clients.GetByID("c1")
	ret := &entity.Return{ID: "r1", BranchID: "b1", CreatedBy: "u-emp"}

	payment, err := debt.ApplyOffsetInTx(fx.clients, fx.debts, fx.payments, returns, client, ret, d("70"))

	require.NoError(t, err)
	assert.Equal(t, entity.PaymentTypeOffset, payment.PaymentType)
	assert.True(t, payment.Amount.Equal(d("70")))
	assert.True(t, fx.debts.debts["d1"].Paid.Equal(d("60")))
	assert.True(t, fx.debts.debts["d2"].Paid.Equal(d("10")))
	assert.True(t, fx.clients.clients["c1"].TotalDebt.Equal(d("30")))
	assert.True(t, returns.offsets["r1"].Equal(d("70")), "la devolución queda estampada")
	assert.True(t, ret.ApplyToDebt)
	require.NotNil(t, ret.DebtOffsetAmount)
}

func TestApplyCreditSaleInTx_CreaDeudaYSumaAlAcumulado(t *testing.T) {
	fx := newFixture()
	fx.addClient("c1", "20")
	client, _ := fx.clients.GetByID("c1")

	created, err := debt.ApplyCreditSaleInTx(fx.clients, fx.debts, client, "venta-1", d("70"))

	require.NoError(t, err)
	assert.Equal(t, "venta-1", created.SaleID)
	assert.True(t, created.Outstanding().Equal(d("70")))
	assert.True(t, fx.clients.clients["c1"].TotalDebt.Equal(d("90")))
}
