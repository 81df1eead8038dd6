package debt

import (
	"context"

	"github.com/tu-usuario/retail-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios del libro de deudas atados a esa tx. El recorrido de
// asignación (cliente + deudas bloqueadas) debe ser atómico.
type TxRunner interface {
	RunDebt(ctx context.Context, fn func(
		clientRepo repository.ClientRepository,
		debtRepo repository.DebtRepository,
		paymentRepo repository.DebtPaymentRepository,
	) error) error
}
