package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Income representa una recepción de mercadería en una sucursal (ingreso de
// stock por compra o producción), con sus líneas de detalle.
type Income struct {
	ID        string
	BranchID  string
	CreatedBy string
	CreatedAt time.Time
	Items     []*IncomeItem
}

// IncomeItem línea de recepción: cantidad ingresada y precios de referencia.
type IncomeItem struct {
	ID            string
	IncomeID      string
	ProductID     string
	Quantity      decimal.Decimal
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
}
