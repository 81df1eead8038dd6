package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense gasto operativo registrado por un usuario. BranchID vacío significa
// gasto general, sin sucursal.
type Expense struct {
	ID        string
	Title     string
	Amount    decimal.Decimal
	BranchID  string
	CreatedBy string
	CreatedAt time.Time
}
