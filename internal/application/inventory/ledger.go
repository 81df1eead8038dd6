// Package inventory implementa el libro de stock: la primitiva atómica para
// mutar la cantidad disponible de un producto en una sucursal. Todo movimiento
// de stock del sistema (ventas, transferencias, devoluciones, recepciones)
// pasa por Adjust dentro de la transacción del caller.
package inventory

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pro/internal/domain/entity"
	"github.com/tu-usuario/retail-pro/internal/domain/repository"
)

// Adjust localiza (o crea en cero) la fila de stock de (sucursal, producto),
// bloqueándola con SELECT FOR UPDATE, y le suma delta. Si el resultado queda
// negativo y allowNegative es false, la cantidad se fija en cero y el faltante
// descartado se devuelve como segundo valor para que el caller pueda detectar
// el desvío contable; con allowNegative true el resultado negativo se persiste.
//
// Corre dentro de la transacción del caller y nunca hace commit por su cuenta.
// Quien necesite fallar ante stock insuficiente debe pre-verificar la
// disponibilidad (como hacen venta y transferencia): Adjust no falla por
// faltante, lo recorta.
func Adjust(
	stockRepo repository.StockRepository,
	branchID, productID string,
	delta decimal.Decimal,
	allowNegative bool,
) (*entity.Stock, decimal.Decimal, error) {
	stock, err := stockRepo.GetForUpdate(branchID, productID)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("lock stock: %w", err)
	}

	stock.Quantity = stock.Quantity.Add(delta)
	clamped := decimal.Zero
	if !allowNegative && stock.Quantity.IsNegative() {
		clamped = stock.Quantity.Neg()
		stock.Quantity = decimal.Zero
	}
	stock.UpdatedAt = time.Now()

	if err := stockRepo.Upsert(stock); err != nil {
		return nil, decimal.Zero, fmt.Errorf("upsert stock: %w", err)
	}
	return stock, clamped, nil
}
