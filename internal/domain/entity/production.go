package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un encargo de producción.
const (
	ProductionStatusOpen   = "open"
	ProductionStatusClosed = "closed"
)

// ProductionOrder encargo del taller: trabajo a pedido que consume materiales
// del stock del taller y registra los pagos a los empleados que lo ejecutan.
type ProductionOrder struct {
	ID           string
	Title        string
	Amount       decimal.Decimal
	CustomerName string
	Description  string
	Status       string
	BranchID     string
	CreatedBy    string
	CreatedAt    time.Time
	Materials    []*ProductionMaterial
	Payments     []*ProductionPayment
}

// ProductionMaterial material consumido por un encargo: la cantidad ya fue
// debitada del stock del taller al registrarlo.
type ProductionMaterial struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	CreatedAt time.Time
}

// ProductionPayment pago a un empleado por su trabajo en un encargo.
type ProductionPayment struct {
	ID         string
	OrderID    string
	EmployeeID string
	Amount     decimal.Decimal
	Note       string
	CreatedBy  string
	CreatedAt  time.Time
}

// ProductionExpense gasto del taller, opcionalmente atado a un encargo.
type ProductionExpense struct {
	ID        string
	Title     string
	Amount    decimal.Decimal
	OrderID   string
	BranchID  string
	CreatedBy string
	CreatedAt time.Time
}
