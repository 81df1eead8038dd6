package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pro/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para productos del catálogo.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	// UpdatePrices actualiza los precios de referencia tras una recepción de mercadería.
	UpdatePrices(id string, purchasePrice, salePrice decimal.Decimal) error
	// Search busca por nombre (parcial) o código de barras (exacto) para el POS.
	Search(query, barcode string, limit int) ([]*entity.Product, error)
}

// CategoryRepository define el puerto de persistencia para categorías.
type CategoryRepository interface {
	Create(category *entity.Category) error
	List() ([]*entity.Category, error)
}
