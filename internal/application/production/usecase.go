// Package production implementa los encargos del taller: trabajos a pedido
// que consumen materiales del stock del taller, con pagos a empleados y
// gastos propios del encargo.
package production

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

// UseCase casos de uso de producción.
type UseCase struct {
	txRunner       TxRunner
	productionRepo repository.ProductionRepository
	stockRepo      repository.StockRepository

	// workshopBranchID es la sucursal del taller, resuelta una sola vez desde
	// la configuración. Encargos y gastos sin sucursal explícita caen ahí.
	workshopBranchID string
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	productionRepo repository.ProductionRepository,
	stockRepo repository.StockRepository,
	workshopBranchID string,
) *UseCase {
	return &UseCase{
		txRunner:         txRunner,
		productionRepo:   productionRepo,
		stockRepo:        stockRepo,
		workshopBranchID: workshopBranchID,
	}
}

// CreateOrder registra un encargo. Sin sucursal explícita, el encargo entra
// al taller.
func (uc *UseCase) CreateOrder(_ context.Context, actor dto.Actor, in dto.CreateProductionOrderRequest) (*entity.ProductionOrder, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: título requerido", domain.ErrInvalidInput)
	}
	branchID := in.BranchID
	if branchID == "" {
		branchID = uc.workshopBranchID
	}
	if branchID == "" {
		return nil, fmt.Errorf("%w: sucursal requerida", domain.ErrInvalidInput)
	}
	status := in.Status
	if status == "" {
		status = entity.ProductionStatusOpen
	}

	order := &entity.ProductionOrder{
		ID:           uuid.New().String(),
		Title:        in.Title,
		Amount:       in.Amount.Round(2),
		CustomerName: in.CustomerName,
		Description:  in.Description,
		Status:       status,
		BranchID:     branchID,
		CreatedBy:    actor.UserID,
		CreatedAt:    time.Now(),
	}
	if err := uc.productionRepo.CreateOrder(order); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateOrder aplica una actualización parcial sobre el encargo.
func (uc *UseCase) UpdateOrder(_ context.Context, _ dto.Actor, orderID string, in dto.UpdateProductionOrderRequest) (*entity.ProductionOrder, error) {
	order, err := uc.productionRepo.GetOrderByID(orderID)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		order.Title = *in.Title
	}
	if in.Amount != nil {
		order.Amount = in.Amount.Round(2)
	}
	if in.CustomerName != nil {
		order.CustomerName = *in.CustomerName
	}
	if in.Description != nil {
		order.Description = *in.Description
	}
	if in.Status != nil {
		order.Status = *in.Status
	}
	if err := uc.productionRepo.UpdateOrder(order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrder devuelve el encargo con materiales y pagos.
func (uc *UseCase) GetOrder(_ context.Context, _ dto.Actor, orderID string) (*entity.ProductionOrder, error) {
	return uc.productionRepo.GetOrderByID(orderID)
}

// ListOrders devuelve los encargos, más recientes primero.
func (uc *UseCase) ListOrders(_ context.Context, _ dto.Actor) ([]*entity.ProductionOrder, error) {
	return uc.productionRepo.ListOrders()
}

// AddMaterial consume material del stock del taller para un encargo: bloquea
// la fila de stock, exige disponibilidad (el taller no trabaja en negativo) y
// la debita junto con el alta del material, todo dentro de una transacción.
func (uc *UseCase) AddMaterial(ctx context.Context, actor dto.Actor, orderID string, in dto.AddProductionMaterialRequest) (*entity.ProductionMaterial, error) {
	if in.ProductID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: cantidad inválida", domain.ErrInvalidInput)
	}
	if in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: precio inválido", domain.ErrInvalidInput)
	}

	var material *entity.ProductionMaterial
	err := uc.txRunner.RunProduction(ctx, func(
		productionRepo repository.ProductionRepository,
		stockRepo repository.StockRepository,
	) error {
		order, err := productionRepo.GetOrderByID(orderID)
		if err != nil {
			return err
		}
		branchID := order.BranchID
		if branchID == "" {
			branchID = uc.workshopBranchID
		}

		stock, err := stockRepo.GetForUpdate(branchID, in.ProductID)
		if err != nil {
			return err
		}
		if stock.Quantity.LessThan(in.Quantity) {
			return fmt.Errorf("%w: producto %s en el taller", domain.ErrInsufficientStock, in.ProductID)
		}
		if _, _, err := inventory.Adjust(stockRepo, branchID, in.ProductID, in.Quantity.Neg(), false); err != nil {
			return err
		}

		material = &entity.ProductionMaterial{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			UnitPrice: in.UnitPrice,
			CreatedAt: time.Now(),
		}
		return productionRepo.CreateMaterial(material)
	})
	if err != nil {
		return nil, err
	}
	return material, nil
}

// AddPayment registra el pago a un empleado por un encargo.
func (uc *UseCase) AddPayment(_ context.Context, actor dto.Actor, orderID string, in dto.AddProductionPaymentRequest) (*entity.ProductionPayment, error) {
	if in.EmployeeID == "" {
		return nil, fmt.Errorf("%w: empleado requerido", domain.ErrInvalidInput)
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: el monto debe ser mayor a 0", domain.ErrInvalidInput)
	}
	if _, err := uc.productionRepo.GetOrderByID(orderID); err != nil {
		return nil, err
	}

	payment := &entity.ProductionPayment{
		ID:         uuid.New().String(),
		OrderID:    orderID,
		EmployeeID: in.EmployeeID,
		Amount:     in.Amount.Round(2),
		Note:       in.Note,
		CreatedBy:  actor.UserID,
		CreatedAt:  time.Now(),
	}
	if err := uc.productionRepo.CreatePayment(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// CreateExpense registra un gasto del taller, opcionalmente atado a un encargo.
func (uc *UseCase) CreateExpense(_ context.Context, actor dto.Actor, in dto.CreateProductionExpenseRequest) (*entity.ProductionExpense, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: título requerido", domain.ErrInvalidInput)
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: el monto debe ser mayor a 0", domain.ErrInvalidInput)
	}
	if in.OrderID != "" {
		if _, err := uc.productionRepo.GetOrderByID(in.OrderID); err != nil {
			return nil, err
		}
	}
	branchID := in.BranchID
	if branchID == "" {
		branchID = uc.workshopBranchID
	}
	if branchID == "" {
		return nil, fmt.Errorf("%w: sucursal requerida", domain.ErrInvalidInput)
	}

	expense := &entity.ProductionExpense{
		ID:        uuid.New().String(),
		Title:     in.Title,
		Amount:    in.Amount.Round(2),
		OrderID:   in.OrderID,
		BranchID:  branchID,
		CreatedBy: actor.UserID,
		CreatedAt: time.Now(),
	}
	if err := uc.productionRepo.CreateExpense(expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpenses devuelve los gastos del taller del rango pedido.
func (uc *UseCase) ListExpenses(_ context.Context, _ dto.Actor, filter repository.ExpenseFilter) ([]*entity.ProductionExpense, error) {
	return uc.productionRepo.ListExpenses(filter)
}

// WorkshopStock devuelve el stock disponible en el taller.
func (uc *UseCase) WorkshopStock(_ context.Context) ([]*entity.Stock, error) {
	if uc.workshopBranchID == "" {
		return nil, fmt.Errorf("%w: taller sin configurar", domain.ErrInvalidInput)
	}
	return uc.stockRepo.ListByBranch(uc.workshopBranchID)
}
