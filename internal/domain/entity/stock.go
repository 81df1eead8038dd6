package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa la cantidad disponible de un producto en una sucursal.
// Única por (branch_id, product_id); se crea de forma diferida en el primer
// ajuste y nunca se borra. La cantidad admite fracciones (productos por peso
// o volumen, hasta 3 decimales).
type Stock struct {
	ID        string
	BranchID  string
	ProductID string
	Quantity  decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
