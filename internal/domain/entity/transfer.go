package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una transferencia entre sucursales. waiting es el único estado no
// terminal: de ahí se pasa exactamente una vez a done o rejected.
const (
	TransferStatusWaiting  = "waiting"
	TransferStatusDone     = "done"
	TransferStatusRejected = "rejected"
)

// Transfer representa una solicitud de mover stock de una sucursal a otra.
// El stock no se mueve al crearla: el débito/crédito ocurre al aceptarla.
type Transfer struct {
	ID           string
	FromBranchID string
	ToBranchID   string
	Status       string
	Comment      string
	RejectReason string
	CreatedBy    string
	CreatedAt    time.Time
	ProcessedBy  string
	ProcessedAt  *time.Time
	UpdatedAt    time.Time
	Items        []*TransferItem
}

// IsTerminal indica si la transferencia ya no admite transiciones.
func (t *Transfer) IsTerminal() bool {
	return t.Status == TransferStatusDone || t.Status == TransferStatusRejected
}

// TransferItem es una línea de la transferencia. Los precios son instantáneas
// informativas al momento de crearla; no participan en el movimiento de stock.
type TransferItem struct {
	ID            string
	TransferID    string
	ProductID     string
	Quantity      decimal.Decimal
	PurchasePrice *decimal.Decimal
	SellingPrice  *decimal.Decimal
}
