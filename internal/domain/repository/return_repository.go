package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pro/internal/domain/entity"
)

// ReturnFilter filtros opcionales para listar devoluciones.
type ReturnFilter struct {
	SaleID    string
	BranchID  string
	CreatedBy string
	Type      string
	StartDate *time.Time
	EndDate   *time.Time
}

// ReturnRepository define el puerto de persistencia para devoluciones.
type ReturnRepository interface {
	Create(ret *entity.Return) error
	CreateItem(item *entity.ReturnItem) error
	// GetByID devuelve la devolución con sus líneas.
	GetByID(id string) (*entity.Return, error)
	// List devuelve devoluciones con líneas, ordenadas por fecha descendente.
	List(filter ReturnFilter) ([]*entity.Return, error)
	// SumReturnedQuantity suma las cantidades ya devueltas de una línea de
	// venta a través de todas sus devoluciones. Llamar con la línea bloqueada
	// (SaleRepository.GetItemForUpdate) para que el cálculo no corra contra
	// otra devolución en vuelo.
	SumReturnedQuantity(saleItemID string) (decimal.Decimal, error)
	// SetDebtOffset estampa apply_to_debt y el monto compensado contra deuda.
	SetDebtOffset(returnID string, amount decimal.Decimal) error
}

// IncomeRepository define el puerto de persistencia para recepciones de mercadería.
type IncomeRepository interface {
	Create(income *entity.Income) error
	CreateItem(item *entity.IncomeItem) error
	List(branchID string) ([]*entity.Income, error)
}
