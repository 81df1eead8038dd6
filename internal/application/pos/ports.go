package pos

import (
	"context"

	"github.com/tu-usuario/retail-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de venta atados a esa tx: venta, stock, catálogo y libro de
// deudas (para la porción a crédito) comparten la misma unidad de trabajo.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		clientRepo repository.ClientRepository,
		debtRepo repository.DebtRepository,
	) error) error
}
