package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnItemInput posición a devolver (solo para type=by_item).
type ReturnItemInput struct {
	SaleItemID string          `json:"sale_item_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// CreateReturnRequest alta de una devolución. Si ApplyToDebt es true y
// DebtOffsetAmount es nil, se compensa el máximo posible contra la deuda.
type CreateReturnRequest struct {
	SaleID           string            `json:"sale_id"`
	Type             string            `json:"type"` // by_receipt | by_item
	Reason           string            `json:"reason"`
	Items            []ReturnItemInput `json:"items"`
	ApplyToDebt      bool              `json:"apply_to_debt"`
	DebtOffsetAmount *decimal.Decimal  `json:"debt_offset_amount,omitempty"`
}

// ReturnItemResponse línea devuelta.
type ReturnItemResponse struct {
	ID         string          `json:"id"`
	SaleItemID string          `json:"sale_item_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Amount     decimal.Decimal `json:"amount"`
}

// BreakdownResponse atribución del reembolso a los métodos de pago originales.
type BreakdownResponse struct {
	Total decimal.Decimal `json:"total"`
	Cash  decimal.Decimal `json:"cash"`
	Card  decimal.Decimal `json:"card"`
	Debt  decimal.Decimal `json:"debt"`
}

// ReturnResponse devolución con líneas y, en listados, su desglose derivado.
type ReturnResponse struct {
	ID               string               `json:"id"`
	SaleID           string               `json:"sale_id"`
	BranchID         string               `json:"branch_id"`
	Type             string               `json:"type"`
	Reason           string               `json:"reason,omitempty"`
	ApplyToDebt      bool                 `json:"apply_to_debt"`
	DebtOffsetAmount *decimal.Decimal     `json:"debt_offset_amount,omitempty"`
	TotalAmount      decimal.Decimal      `json:"total_amount"`
	CreatedBy        string               `json:"created_by"`
	CreatedAt        time.Time            `json:"created_at"`
	Items            []ReturnItemResponse `json:"items"`
	Breakdown        *BreakdownResponse   `json:"breakdown,omitempty"`
}
