package repository

import (
	"time"

	"github.com/tu-usuario/retail-pro/internal/domain/entity"
)

// SaleFilter filtros opcionales para listar ventas.
type SaleFilter struct {
	BranchID  string
	SellerID  string
	ClientID  string
	StartDate *time.Time
	EndDate   *time.Time
}

// SaleRepository define el puerto de persistencia para ventas.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	// GetByID devuelve la venta con sus líneas.
	GetByID(id string) (*entity.Sale, error)
	GetByIDs(ids []string) (map[string]*entity.Sale, error)
	// GetItemForUpdate bloquea la línea de venta (SELECT FOR UPDATE): ancla la
	// recomputación de cantidad devuelta restante frente a devoluciones concurrentes.
	GetItemForUpdate(saleItemID string) (*entity.SaleItem, error)
	List(filter SaleFilter) ([]*entity.Sale, error)
}
