package returns

import (
	"context"

	"github.com/tu-usuario/retail-pro/internal/domain/repository"
)

// TxRunner abre la transacción de una devolución con los repositorios atados
// a ella: la devolución toca devoluciones, venta, stock y, si compensa deuda,
// también cliente, deudas y pagos.
type TxRunner interface {
	RunReturn(ctx context.Context, fn func(
		returnRepo repository.ReturnRepository,
		saleRepo repository.SaleRepository,
		stockRepo repository.StockRepository,
		clientRepo repository.ClientRepository,
		debtRepo repository.DebtRepository,
		paymentRepo repository.DebtPaymentRepository,
	) error) error
}
