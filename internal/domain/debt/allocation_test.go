package debt_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-pro/internal/domain/debt"
	"github.com/tu-usuario/retail-pro/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func newDebt(id string, amount, paid string) *entity.Debt {
	return &entity.Debt{ID: id, Amount: d(amount), Paid: d(paid)}
}

// ──────────────────────────────────────────────────────────────────────────────
// CapToOutstanding
// ──────────────────────────────────────────────────────────────────────────────

func TestCapToOutstanding_MontoMenorQueSaldo(t *testing.T) {
	applied := debt.CapToOutstanding(d("50"), d("120"))
	assert.True(t, applied.Equal(d("50")), "con saldo suficiente se aplica el monto completo")
}

func TestCapToOutstanding_MontoMayorQueSaldo(t *testing.T) {
	applied := debt.CapToOutstanding(d("200"), d("120"))
	assert.True(t, applied.Equal(d("120")), "con saldo positivo el pago se recorta al saldo")
}

// Con saldo en cero el monto pasa crudo: el sobrepago queda registrado como
// anticipo (deuda negativa). Comportamiento heredado, fijado por test.
func TestCapToOutstanding_SaldoCeroAplicaCrudo(t *testing.T) {
	applied := debt.CapToOutstanding(d("75"), decimal.Zero)
	assert.True(t, applied.Equal(d("75")))
}

func TestCapToOutstanding_SaldoNegativoAplicaCrudo(t *testing.T) {
	applied := debt.CapToOutstanding(d("30"), d("-10"))
	assert.True(t, applied.Equal(d("30")))
}

// ──────────────────────────────────────────────────────────────────────────────
// PlanAllocation
// ──────────────────────────────────────────────────────────────────────────────

func TestPlanAllocation_FIFOEnOrdenRecibido(t *testing.T) {
	debts := []*entity.Debt{
		newDebt("d1", "100", "0"),
		newDebt("d2", "50", "0"),
		newDebt("d3", "80", "0"),
	}

	portions := debt.PlanAllocation(debts, d("130"))

	require.Len(t, portions, 2, "130 cubre d1 completa y parte de d2")
	assert.Equal(t, "d1", portions[0].DebtID)
	assert.True(t, portions[0].Amount.Equal(d("100")))
	assert.Equal(t, "d2", portions[1].DebtID)
	assert.True(t, portions[1].Amount.Equal(d("30")))
}

func TestPlanAllocation_SaltaDeudasSinSaldo(t *testing.T) {
	debts := []*entity.Debt{
		newDebt("d1", "100", "100"), // saldada
		newDebt("d2", "60", "0"),
	}

	portions := debt.PlanAllocation(debts, d("40"))

	require.Len(t, portions, 1)
	assert.Equal(t, "d2", portions[0].DebtID)
	assert.True(t, portions[0].Amount.Equal(d("40")))
}

func TestPlanAllocation_MontoMayorQueTodasLasDeudas(t *testing.T) {
	debts := []*entity.Debt{
		newDebt("d1", "20", "0"),
		newDebt("d2", "30", "0"),
	}

	portions := debt.PlanAllocation(debts, d("500"))

	// Se reparte hasta agotar las deudas; el excedente no genera cuotas.
	require.Len(t, portions, 2)
	total := decimal.Zero
	for _, p := range portions {
		total = total.Add(p.Amount)
	}
	assert.True(t, total.Equal(d("50")))
}

func TestPlanAllocation_SinDeudasNoAsignaNada(t *testing.T) {
	portions := debt.PlanAllocation(nil, d("100"))
	assert.Empty(t, portions)
}

func TestPlanAllocation_DeudaParcialmentePagada(t *testing.T) {
	debts := []*entity.Debt{newDebt("d1", "100", "70")}

	portions := debt.PlanAllocation(debts, d("50"))

	require.Len(t, portions, 1)
	assert.True(t, portions[0].Amount.Equal(d("30")), "solo se asigna el saldo pendiente")
}

// ──────────────────────────────────────────────────────────────────────────────
// ReduceTotal
// ──────────────────────────────────────────────────────────────────────────────

func TestReduceTotal_RestaNormal(t *testing.T) {
	assert.True(t, debt.ReduceTotal(d("120"), d("50")).Equal(d("70")))
}

func TestReduceTotal_PisoEnCero(t *testing.T) {
	assert.True(t, debt.ReduceTotal(d("30"), d("100")).Equal(decimal.Zero),
		"el acumulado del cliente nunca queda negativo")
}
