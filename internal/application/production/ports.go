package production

import (
	"context"

	"github.com/tu-usuario/retail-pro/internal/domain/repository"
)

// TxRunner abre la transacción de un consumo de material con los repositorios
// atados a ella.
type TxRunner interface {
	RunProduction(ctx context.Context, fn func(
		productionRepo repository.ProductionRepository,
		stockRepo repository.StockRepository,
	) error) error
}
