// Package debt contiene la lógica pura del libro de deudas: cómo se reparte
// un monto entre las deudas abiertas de un cliente.
package debt

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pro/internal/domain/entity"
)

// Portion es la parte de un pago asignada a una deuda concreta.
type Portion struct {
	DebtID string
	Amount decimal.Decimal
}

// CapToOutstanding devuelve el monto efectivamente aplicable contra el saldo
// total del cliente: min(amount, totalDebt) cuando hay deuda; si el saldo es
// cero o negativo se aplica el monto crudo tal cual (comportamiento heredado:
// permite registrar un sobrepago como "anticipo" con deuda negativa).
func CapToOutstanding(amount, totalDebt decimal.Decimal) decimal.Decimal {
	if totalDebt.GreaterThan(decimal.Zero) && amount.GreaterThan(totalDebt) {
		return totalDebt
	}
	return amount
}

// PlanAllocation reparte amount entre las deudas en el orden recibido (el
// caller las ordena por fecha de creación ascendente: la más antigua cobra
// primero). A cada deuda se le asigna min(restante, saldo pendiente) hasta
// agotar el monto o las deudas. Deudas sin saldo se saltan.
func PlanAllocation(debts []*entity.Debt, amount decimal.Decimal) []Portion {
	remaining := amount
	var portions []Portion
	for _, d := range debts {
		if !remaining.GreaterThan(decimal.Zero) {
			break
		}
		outstanding := d.Outstanding()
		if !outstanding.GreaterThan(decimal.Zero) {
			continue
		}
		portion := remaining
		if outstanding.LessThan(portion) {
			portion = outstanding
		}
		portions = append(portions, Portion{DebtID: d.ID, Amount: portion})
		remaining = remaining.Sub(portion)
	}
	return portions
}

// ReduceTotal aplica el monto al acumulado del cliente con piso en cero.
func ReduceTotal(totalDebt, applied decimal.Decimal) decimal.Decimal {
	next := totalDebt.Sub(applied)
	if next.IsNegative() {
		return decimal.Zero
	}
	return next
}
