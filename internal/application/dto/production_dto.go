package dto

import "github.com/shopspring/decimal"

// CreateProductionOrderRequest alta de encargo de producción.
type CreateProductionOrderRequest struct {
	Title        string          `json:"title"`
	Amount       decimal.Decimal `json:"amount"`
	CustomerName string          `json:"customer_name"`
	Description  string          `json:"description"`
	Status       string          `json:"status"`    // por defecto "open"
	BranchID     string          `json:"branch_id"` // por defecto, el taller
}

// UpdateProductionOrderRequest actualización parcial de un encargo: solo los
// campos presentes cambian.
type UpdateProductionOrderRequest struct {
	Title        *string          `json:"title"`
	Amount       *decimal.Decimal `json:"amount"`
	CustomerName *string          `json:"customer_name"`
	Description  *string          `json:"description"`
	Status       *string          `json:"status"`
}

// AddProductionMaterialRequest consumo de material del stock del taller.
type AddProductionMaterialRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// AddProductionPaymentRequest pago a un empleado por un encargo.
type AddProductionPaymentRequest struct {
	EmployeeID string          `json:"employee_id"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note"`
}

// CreateProductionExpenseRequest gasto del taller, opcionalmente atado a un encargo.
type CreateProductionExpenseRequest struct {
	Title    string          `json:"title"`
	Amount   decimal.Decimal `json:"amount"`
	OrderID  string          `json:"order_id"`
	BranchID string          `json:"branch_id"` // por defecto, el taller
}
