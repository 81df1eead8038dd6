package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta con su reparto de pago en tres bolsas: efectivo,
// tarjeta y crédito (deuda). Las tres deben sumar TotalAmount al crearla; si
// PaidDebt > 0 la venta exige un cliente.
type Sale struct {
	ID          string
	BranchID    string
	SellerID    string
	ClientID    string
	TotalAmount decimal.Decimal
	PaidCash    decimal.Decimal
	PaidCard    decimal.Decimal
	PaidDebt    decimal.Decimal
	PaymentType string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Items       []*SaleItem
}

// SaleItem es una línea de venta. Total = (Price - Discount) * Quantity.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  decimal.Decimal
	Price     decimal.Decimal
	Discount  decimal.Decimal
	Total     decimal.Decimal
}

// UnitRefund devuelve el precio unitario efectivo para devoluciones:
// total registrado entre cantidad registrada, con el precio de línea como
// respaldo si la cantidad es cero.
func (i *SaleItem) UnitRefund() decimal.Decimal {
	if i.Quantity.IsZero() {
		return i.Price
	}
	return i.Total.Div(i.Quantity)
}
