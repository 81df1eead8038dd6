package income

import (
	"context"

	"github.com/tu-usuario/retail-pro/internal/domain/repository"
)

// TxRunner abre la transacción de una recepción de mercadería con los
// repositorios atados a ella.
type TxRunner interface {
	RunIncome(ctx context.Context, fn func(
		incomeRepo repository.IncomeRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error) error
}
