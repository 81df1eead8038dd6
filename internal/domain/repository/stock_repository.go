package repository

import "github.com/tu-usuario/retail-pro/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar stock por
// sucursal+producto. Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	Get(branchID, productID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE). Obligatorio en todo
	// camino que lee la cantidad para luego mutarla condicionalmente.
	GetForUpdate(branchID, productID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	ListByBranch(branchID string) ([]*entity.Stock, error)
}
