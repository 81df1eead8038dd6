package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de pago de deuda. PaymentTypeOffset marca reducciones originadas por
// una devolución, no por dinero recibido.
const (
	PaymentTypeCash   = "cash"
	PaymentTypeCard   = "card"
	PaymentTypeOffset = "offset"
)

// Debt es el crédito extendido en una venta. Paid acumula lo aplicado; el
// saldo pendiente es Amount - Paid, nunca negativo.
type Debt struct {
	ID        string
	ClientID  string
	SaleID    string
	Amount    decimal.Decimal
	Paid      decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Outstanding devuelve el saldo pendiente de la deuda, con piso en cero.
func (d *Debt) Outstanding() decimal.Decimal {
	out := d.Amount.Sub(d.Paid)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// DebtPayment registra cualquier reducción del saldo de un cliente: pago
// directo (cash/card) o compensación por devolución (offset). Amount es el
// monto efectivamente aplicado, no necesariamente el solicitado.
type DebtPayment struct {
	ID          string
	ClientID    string
	DebtID      string // vacío = asignación automática FIFO
	BranchID    string
	Amount      decimal.Decimal
	PaymentType string
	ProcessedBy string
	CreatedAt   time.Time
}
