package dto

import "github.com/shopspring/decimal"

// CreateExpenseRequest alta de gasto operativo.
type CreateExpenseRequest struct {
	Title    string          `json:"title"`
	Amount   decimal.Decimal `json:"amount"`
	BranchID string          `json:"branch_id"` // vacío = gasto general
}
