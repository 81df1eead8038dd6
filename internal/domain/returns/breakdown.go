// Package returns contiene la reconciliación monetaria de devoluciones: dada
// la venta original con sus tres bolsas de pago (efectivo, tarjeta, deuda) y
// el monto reembolsado por cada devolución, reconstruye de qué bolsa salió
// cada peso devuelto.
package returns

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pro/internal/domain/entity"
)

// Breakdown es la atribución del total de una devolución a los métodos de
// pago originales. Invariante: Cash + Card + Debt == Total (a 2 decimales).
type Breakdown struct {
	Total decimal.Decimal
	Cash  decimal.Decimal
	Card  decimal.Decimal
	Debt  decimal.Decimal
}

// CalculateBreakdowns deriva el desglose por devolución (no se persiste).
//
// Reglas, en este orden y fijadas como contrato (cambiarlas cambia los números
// reportados):
//   - Las devoluciones de cada venta se procesan de la más antigua a la más
//     reciente: las primeras reclaman capacidad de las bolsas antes que las
//     siguientes.
//   - Una devolución con compensación de deuda explícita toma
//     min(offset, total) de la bolsa "deuda" y el resto siempre de efectivo,
//     nunca de tarjeta; no consume las bolsas compartidas de la venta.
//   - El resto drena las bolsas compartidas en orden fijo deuda → efectivo →
//     tarjeta, arrastrando el remanente.
//   - Si las tres bolsas se agotan antes de cubrir el total (puede pasar si lo
//     devuelto supera lo registrado como pagado), el remanente descubierto se
//     atribuye a tarjeta para que el desglose siempre sume el total.
func CalculateBreakdowns(allReturns []*entity.Return, sales map[string]*entity.Sale) map[string]Breakdown {
	breakdowns := make(map[string]Breakdown)
	bySale := make(map[string][]*entity.Return)
	for _, ret := range allReturns {
		if ret.SaleID == "" {
			continue
		}
		bySale[ret.SaleID] = append(bySale[ret.SaleID], ret)
	}

	for saleID, saleReturns := range bySale {
		sale, ok := sales[saleID]
		if !ok || sale == nil {
			continue
		}

		cashPool := sale.PaidCash
		cardPool := sale.PaidCard
		debtPool := sale.PaidDebt

		sort.SliceStable(saleReturns, func(i, j int) bool {
			return saleReturns[i].CreatedAt.Before(saleReturns[j].CreatedAt)
		})

		for _, ret := range saleReturns {
			total := ret.TotalAmount()

			if ret.DebtOffsetAmount != nil && ret.DebtOffsetAmount.GreaterThan(decimal.Zero) {
				debtUsed := decimal.Min(*ret.DebtOffsetAmount, total)
				cashUsed := total.Sub(debtUsed)
				if cashUsed.IsNegative() {
					cashUsed = decimal.Zero
				}
				breakdowns[ret.ID] = Breakdown{Total: total, Cash: cashUsed, Card: decimal.Zero, Debt: debtUsed}
				continue
			}

			remaining := total

			debtUsed := decimal.Min(remaining, debtPool)
			debtPool = debtPool.Sub(debtUsed)
			remaining = remaining.Sub(debtUsed)

			cashUsed := decimal.Min(remaining, cashPool)
			cashPool = cashPool.Sub(cashUsed)
			remaining = remaining.Sub(cashUsed)

			cardUsed := decimal.Min(remaining, cardPool)
			cardPool = cardPool.Sub(cardUsed)
			remaining = remaining.Sub(cardUsed)

			// Bolsas agotadas: lo descubierto cae en tarjeta
			if remaining.GreaterThan(decimal.Zero) {
				cardUsed = cardUsed.Add(remaining)
			}

			breakdowns[ret.ID] = Breakdown{Total: total, Cash: cashUsed, Card: cardUsed, Debt: debtUsed}
		}
	}

	return breakdowns
}
