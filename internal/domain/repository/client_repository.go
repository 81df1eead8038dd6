package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pro/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para clientes.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	// GetByIDForUpdate bloquea la fila del cliente durante un recorrido de
	// asignación de deuda para serializar pagos concurrentes.
	GetByIDForUpdate(id string) (*entity.Client, error)
	List() ([]*entity.Client, error)
	Update(client *entity.Client) error
	UpdateTotalDebt(id string, totalDebt decimal.Decimal) error
}
