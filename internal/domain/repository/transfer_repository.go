package repository

import (
	"time"

	"github.com/tu-usuario/retail-pro/internal/domain/entity"
)

// TransferFilter filtros opcionales para listar transferencias. BranchScope
// limita a transferencias cuyo origen o destino sea esa sucursal (empleados).
type TransferFilter struct {
	FromBranchID string
	ToBranchID   string
	Status       string
	BranchScope  string
	StartDate    *time.Time
	EndDate      *time.Time
}

// TransferRepository define el puerto de persistencia para transferencias.
type TransferRepository interface {
	// Create persiste cabecera y líneas; la atomicidad la garantiza la tx del caller.
	Create(transfer *entity.Transfer) error
	GetByID(id string) (*entity.Transfer, error)
	// GetByIDForUpdate bloquea la cabecera (SELECT FOR UPDATE) para que dos
	// aceptaciones concurrentes no procesen la misma transferencia.
	GetByIDForUpdate(id string) (*entity.Transfer, error)
	// UpdateStatus persiste status, motivo de rechazo y datos de procesamiento.
	UpdateStatus(transfer *entity.Transfer) error
	List(filter TransferFilter) ([]*entity.Transfer, error)
}
