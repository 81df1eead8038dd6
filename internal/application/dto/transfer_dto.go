package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferItemInput línea de una transferencia a crear.
type TransferItemInput struct {
	ProductID     string           `json:"product_id"`
	Quantity      decimal.Decimal  `json:"quantity"`
	PurchasePrice *decimal.Decimal `json:"purchase_price,omitempty"`
	SellingPrice  *decimal.Decimal `json:"selling_price,omitempty"`
}

// CreateTransferRequest alta de una transferencia entre sucursales.
type CreateTransferRequest struct {
	FromBranchID string              `json:"from_branch_id"`
	ToBranchID   string              `json:"to_branch_id"`
	Comment      string              `json:"comment"`
	Items        []TransferItemInput `json:"items"`
}

// RejectTransferRequest motivo del rechazo.
type RejectTransferRequest struct {
	Reason string `json:"reason"`
}

// TransferItemResponse línea de transferencia.
type TransferItemResponse struct {
	ID            string           `json:"id"`
	ProductID     string           `json:"product_id"`
	Quantity      decimal.Decimal  `json:"quantity"`
	PurchasePrice *decimal.Decimal `json:"purchase_price,omitempty"`
	SellingPrice  *decimal.Decimal `json:"selling_price,omitempty"`
}

// TransferResponse transferencia con sus líneas.
type TransferResponse struct {
	ID           string                 `json:"id"`
	FromBranchID string                 `json:"from_branch_id"`
	ToBranchID   string                 `json:"to_branch_id"`
	Status       string                 `json:"status"`
	Comment      string                 `json:"comment,omitempty"`
	RejectReason string                 `json:"reject_reason,omitempty"`
	CreatedBy    string                 `json:"created_by"`
	CreatedAt    time.Time              `json:"created_at"`
	ProcessedBy  string                 `json:"processed_by,omitempty"`
	ProcessedAt  *time.Time             `json:"processed_at,omitempty"`
	Items        []TransferItemResponse `json:"items"`
}
