// Package income implementa la recepción de mercadería: acredita stock por
// línea y actualiza los precios de referencia del producto.
package income

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pro/internal/application/dto"
	"github.com/tu-usuario/retail-pro/internal/application/inventory"
	"github.com/tu-usuario/retail-pro/internal/domain"
	"github.com/tu-usuario/retail-pro/internal/domain/entity"
	"github.com/tu-usuario/retail-pro/internal/domain/repository"
)

// UseCase casos de uso de recepción de mercadería.
type UseCase struct {
	txRunner   TxRunner
	incomeRepo repository.IncomeRepository

	// workshopBranchID es la sucursal del taller, resuelta una sola vez
	// desde la configuración. Las recepciones de producción propia que no
	// indican sucursal entran ahí.
	workshopBranchID string
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, incomeRepo repository.IncomeRepository, workshopBranchID string) *UseCase {
	return &UseCase{txRunner: txRunner, incomeRepo: incomeRepo, workshopBranchID: workshopBranchID}
}

// CreateIncome registra una recepción: valida los productos, acredita el
// stock de la sucursal línea a línea y actualiza los precios de compra y
// venta con los recibidos. Todo dentro de una transacción.
func (uc *UseCase) CreateIncome(ctx context.Context, actor dto.Actor, in dto.CreateIncomeRequest) (*entity.Income, error) {
	branchID := in.BranchID
	if !actor.IsAdmin() {
		if actor.BranchID == "" {
			return nil, fmt.Errorf("%w: empleado sin sucursal asignada", domain.ErrInvalidInput)
		}
		branchID = actor.BranchID
	}
	if branchID == "" {
		branchID = uc.workshopBranchID
	}
	if branchID == "" {
		return nil, fmt.Errorf("%w: sucursal requerida", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: recepción sin líneas", domain.ErrInvalidInput)
	}
	for _, item := range in.Items {
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: cantidad inválida", domain.ErrInvalidInput)
		}
		if item.PurchasePrice.IsNegative() || item.SalePrice.IsNegative() {
			return nil, fmt.Errorf("%w: precio inválido", domain.ErrInvalidInput)
		}
	}

	income := &entity.Income{
		ID:        uuid.New().String(),
		BranchID:  branchID,
		CreatedBy: actor.UserID,
		CreatedAt: time.Now(),
	}

	err := uc.txRunner.RunIncome(ctx, func(
		incomeRepo repository.IncomeRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error {
		for _, item := range in.Items {
			if _, err := productRepo.GetByID(item.ProductID); err != nil {
				return fmt.Errorf("producto %s: %w", item.ProductID, err)
			}
			if _, _, err := inventory.Adjust(stockRepo, branchID, item.ProductID, item.Quantity, false); err != nil {
				return err
			}
			if err := productRepo.UpdatePrices(item.ProductID, item.PurchasePrice, item.SalePrice); err != nil {
				return err
			}
			income.Items = append(income.Items, &entity.IncomeItem{
				ID:            uuid.New().String(),
				IncomeID:      income.ID,
				ProductID:     item.ProductID,
				Quantity:      item.Quantity,
				PurchasePrice: item.PurchasePrice,
				SalePrice:     item.SalePrice,
			})
		}

		if err := incomeRepo.Create(income); err != nil {
			return err
		}
		for _, item := range income.Items {
			if err := incomeRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return income, nil
}

// List devuelve las recepciones de una sucursal; los empleados solo ven la suya.
func (uc *UseCase) List(_ context.Context, actor dto.Actor, branchID string) ([]*entity.Income, error) {
	if !actor.IsAdmin() {
		if actor.BranchID == "" {
			return nil, fmt.Errorf("%w: empleado sin sucursal asignada", domain.ErrInvalidInput)
		}
		branchID = actor.BranchID
	}
	return uc.incomeRepo.List(branchID)
}
