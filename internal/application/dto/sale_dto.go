package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemInput línea de venta a crear.
type SaleItemInput struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Discount  decimal.Decimal `json:"discount"`
}

// CreateSaleRequest alta de una venta. Las tres bolsas de pago deben sumar el
// total de las líneas; paid_debt > 0 exige client_id.
type CreateSaleRequest struct {
	BranchID    string          `json:"branch_id"` // solo admin; empleados usan su sucursal
	SellerID    string          `json:"seller_id"` // solo admin; default el propio actor
	ClientID    string          `json:"client_id"`
	PaymentType string          `json:"payment_type"`
	PaidCash    decimal.Decimal `json:"paid_cash"`
	PaidCard    decimal.Decimal `json:"paid_card"`
	PaidDebt    decimal.Decimal `json:"paid_debt"`
	Items       []SaleItemInput `json:"items"`
}

// SaleItemResponse línea de venta.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
}

// SaleResponse venta con sus líneas.
type SaleResponse struct {
	ID          string             `json:"id"`
	BranchID    string             `json:"branch_id"`
	SellerID    string             `json:"seller_id"`
	ClientID    string             `json:"client_id,omitempty"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	PaidCash    decimal.Decimal    `json:"paid_cash"`
	PaidCard    decimal.Decimal    `json:"paid_card"`
	PaidDebt    decimal.Decimal    `json:"paid_debt"`
	PaymentType string             `json:"payment_type"`
	CreatedAt   time.Time          `json:"created_at"`
	Items       []SaleItemResponse `json:"items"`
}
