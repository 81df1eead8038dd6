// Package pos implementa la venta en caja: débito de stock por línea, reparto
// del pago en efectivo/tarjeta/deuda y alta de crédito cuando corresponde.
package pos

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pro/internal/application/debt"
	"github.com/tu-usuario/retail-pro/internal/application/dto"
	"github.com/tu-usuario/retail-pro/internal/application/inventory"
	"github.com/tu-usuario/retail-pro/internal/domain"
	"github.com/tu-usuario/retail-pro/internal/domain/entity"
	"github.com/tu-usuario/retail-pro/internal/domain/repository"
)

// UseCase casos de uso de ventas.
type UseCase struct {
	txRunner TxRunner
	saleRepo repository.SaleRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, saleRepo repository.SaleRepository) *UseCase {
	return &UseCase{txRunner: txRunner, saleRepo: saleRepo}
}

// CreateSale registra una venta. Por cada línea bloquea el stock de la
// sucursal, exige disponibilidad (la venta en caja no admite negativo) y lo
// debita. Las tres bolsas de pago deben sumar exactamente el total a 2
// decimales; la porción a crédito exige cliente y crea la deuda dentro de la
// misma transacción. Cualquier fallo revierte todo.
func (uc *UseCase) CreateSale(ctx context.Context, actor dto.Actor, in dto.CreateSaleRequest) (*entity.Sale, error) {
	branchID := in.BranchID
	sellerID := in.SellerID
	if !actor.IsAdmin() {
		if actor.BranchID == "" {
			return nil, fmt.Errorf("%w: empleado sin sucursal asignada", domain.ErrInvalidInput)
		}
		branchID = actor.BranchID
		sellerID = actor.UserID
	}
	if branchID == "" {
		return nil, fmt.Errorf("%w: sucursal requerida", domain.ErrInvalidInput)
	}
	if sellerID == "" {
		sellerID = actor.UserID
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: venta sin líneas", domain.ErrInvalidInput)
	}
	for _, item := range in.Items {
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: cantidad inválida", domain.ErrInvalidInput)
		}
		if item.Price.IsNegative() || item.Discount.IsNegative() {
			return nil, fmt.Errorf("%w: precio inválido", domain.ErrInvalidInput)
		}
	}
	if in.PaidCash.IsNegative() || in.PaidCard.IsNegative() || in.PaidDebt.IsNegative() {
		return nil, fmt.Errorf("%w: montos de pago negativos", domain.ErrInvalidInput)
	}
	if in.PaidDebt.GreaterThan(decimal.Zero) && in.ClientID == "" {
		return nil, fmt.Errorf("%w: la venta a crédito exige cliente", domain.ErrInvalidInput)
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:          uuid.New().String(),
		BranchID:    branchID,
		SellerID:    sellerID,
		ClientID:    in.ClientID,
		PaidCash:    in.PaidCash,
		PaidCard:    in.PaidCard,
		PaidDebt:    in.PaidDebt,
		PaymentType: in.PaymentType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		clientRepo repository.ClientRepository,
		debtRepo repository.DebtRepository,
	) error {
		total := decimal.Zero
		for _, item := range in.Items {
			if _, err := productRepo.GetByID(item.ProductID); err != nil {
				return fmt.Errorf("producto %s: %w", item.ProductID, err)
			}
			stock, err := stockRepo.GetForUpdate(branchID, item.ProductID)
			if err != nil {
				return err
			}
			if stock.Quantity.LessThan(item.Quantity) {
				return fmt.Errorf("%w: producto %s", domain.ErrInsufficientStock, item.ProductID)
			}
			if _, _, err := inventory.Adjust(stockRepo, branchID, item.ProductID, item.Quantity.Neg(), false); err != nil {
				return err
			}

			lineTotal := item.Price.Sub(item.Discount).Mul(item.Quantity)
			sale.Items = append(sale.Items, &entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    sale.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
				Discount:  item.Discount,
				Total:     lineTotal,
			})
			total = total.Add(lineTotal)
		}

		total = total.Round(2)
		paidTotal := in.PaidCash.Add(in.PaidCard).Add(in.PaidDebt).Round(2)
		if !paidTotal.Equal(total) {
			return fmt.Errorf("%w: la suma de pagos (%s) no coincide con el total (%s)", domain.ErrInvalidInput, paidTotal, total)
		}
		sale.TotalAmount = total

		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, item := range sale.Items {
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
		}

		if in.PaidDebt.GreaterThan(decimal.Zero) {
			client, err := clientRepo.GetByIDForUpdate(in.ClientID)
			if err != nil {
				return err
			}
			if _, err := debt.ApplyCreditSaleInTx(clientRepo, debtRepo, client, sale.ID, in.PaidDebt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// GetByID devuelve una venta visible para el actor, con sus líneas.
func (uc *UseCase) GetByID(_ context.Context, actor dto.Actor, saleID string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessBranch(sale.BranchID) {
		return nil, domain.ErrForbidden
	}
	return sale, nil
}

// List devuelve ventas filtradas; los empleados solo ven su sucursal.
func (uc *UseCase) List(_ context.Context, actor dto.Actor, filter repository.SaleFilter) ([]*entity.Sale, error) {
	if !actor.IsAdmin() {
		if actor.BranchID == "" {
			return nil, fmt.Errorf("%w: empleado sin sucursal asignada", domain.ErrInvalidInput)
		}
		filter.BranchID = actor.BranchID
	}
	return uc.saleRepo.List(filter)
}
