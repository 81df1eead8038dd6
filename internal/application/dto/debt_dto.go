package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayDebtRequest pago contra el saldo de un cliente. DebtID vacío asigna el
// monto a las deudas abiertas en orden FIFO (la más antigua primero).
type PayDebtRequest struct {
	ClientID    string          `json:"client_id"`
	DebtID      string          `json:"debt_id,omitempty"`
	BranchID    string          `json:"branch_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentType string          `json:"payment_type"` // cash | card
}

// DebtPaymentResponse pago registrado con el monto efectivamente aplicado.
type DebtPaymentResponse struct {
	ID          string          `json:"id"`
	ClientID    string          `json:"client_id"`
	DebtID      string          `json:"debt_id,omitempty"`
	BranchID    string          `json:"branch_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentType string          `json:"payment_type"`
	ProcessedBy string          `json:"processed_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

// DebtResponse deuda individual con su saldo.
type DebtResponse struct {
	ID          string          `json:"id"`
	ClientID    string          `json:"client_id"`
	SaleID      string          `json:"sale_id"`
	Amount      decimal.Decimal `json:"amount"`
	Paid        decimal.Decimal `json:"paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
	CreatedAt   time.Time       `json:"created_at"`
}
