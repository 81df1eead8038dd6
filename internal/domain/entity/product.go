package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. El stock por sucursal vive en Stock;
// aquí solo quedan los datos comerciales compartidos entre sucursales.
type Product struct {
	ID             string
	Name           string
	CategoryID     string // vacío = sin categoría
	Barcode        string
	Unit           string // "шт", "kg", "l"... define si la cantidad admite fracciones
	PurchasePrice  decimal.Decimal
	SalePrice      decimal.Decimal
	WholesalePrice decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Category agrupa productos del catálogo.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
