package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBranchRequest alta de sucursal.
type CreateBranchRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// BranchResponse sucursal.
type BranchResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Active  bool   `json:"active"`
}

// CreateProductRequest alta de producto.
type CreateProductRequest struct {
	Name           string          `json:"name"`
	CategoryID     string          `json:"category_id"`
	Barcode        string          `json:"barcode"`
	Unit           string          `json:"unit"`
	PurchasePrice  decimal.Decimal `json:"purchase_price"`
	SalePrice      decimal.Decimal `json:"sale_price"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
}

// ProductResponse producto del catálogo.
type ProductResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	CategoryID     string          `json:"category_id,omitempty"`
	Barcode        string          `json:"barcode,omitempty"`
	Unit           string          `json:"unit,omitempty"`
	PurchasePrice  decimal.Decimal `json:"purchase_price"`
	SalePrice      decimal.Decimal `json:"sale_price"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
}

// CreateClientRequest alta de cliente.
type CreateClientRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// ClientResponse cliente con su saldo acumulado.
type ClientResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone,omitempty"`
	TotalDebt decimal.Decimal `json:"total_debt"`
}

// StockResponse stock de un producto en una sucursal.
type StockResponse struct {
	BranchID  string          `json:"branch_id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// IncomeItemInput línea de recepción de mercadería.
type IncomeItemInput struct {
	ProductID     string          `json:"product_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
}

// CreateIncomeRequest recepción de mercadería en una sucursal.
type CreateIncomeRequest struct {
	BranchID string            `json:"branch_id"` // solo admin; empleados usan su sucursal
	Items    []IncomeItemInput `json:"items"`
}
