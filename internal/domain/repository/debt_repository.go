package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pro/internal/domain/entity"
)

// DebtRepository define el puerto de persistencia para deudas individuales.
type DebtRepository interface {
	Create(debt *entity.Debt) error
	GetByID(id string) (*entity.Debt, error)
	// ListOpenByClientForUpdate devuelve las deudas con saldo pendiente del
	// cliente ordenadas por fecha de creación ascendente (FIFO), bloqueadas
	// con SELECT FOR UPDATE mientras dura la asignación.
	ListOpenByClientForUpdate(clientID string) ([]*entity.Debt, error)
	ListByClient(clientID string) ([]*entity.Debt, error)
	UpdatePaid(id string, paid decimal.Decimal) error
}

// DebtPaymentRepository define el puerto de persistencia para pagos de deuda.
type DebtPaymentRepository interface {
	Create(payment *entity.DebtPayment) error
	ListByClient(clientID string) ([]*entity.DebtPayment, error)
}
