package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de devolución: por recibo completo o por posiciones sueltas.
const (
	ReturnTypeByReceipt = "by_receipt"
	ReturnTypeByItem    = "by_item"
)

// Return representa una devolución parcial o total de una venta. Varias
// devoluciones pueden apuntar a la misma venta; la suma de cantidades
// devueltas por línea nunca supera la cantidad original.
type Return struct {
	ID               string
	SaleID           string
	BranchID         string
	Type             string
	Reason           string
	ApplyToDebt      bool
	DebtOffsetAmount *decimal.Decimal
	CreatedBy        string
	CreatedAt        time.Time
	Items            []*ReturnItem
}

// TotalAmount suma los importes de todas las líneas de la devolución.
func (r *Return) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range r.Items {
		total = total.Add(item.Amount)
	}
	return total
}

// ReturnItem es una línea devuelta: cantidad y monto reembolsado, atados a la
// línea original de la venta.
type ReturnItem struct {
	ID         string
	ReturnID   string
	SaleItemID string
	Quantity   decimal.Decimal
	Amount     decimal.Decimal
}
