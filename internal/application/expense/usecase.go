// Package expense implementa el registro de gastos operativos: alta por
// cualquier usuario, listado acotado por fecha y sucursal, baja solo admin.
package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pro/internal/application/dto"
	"github.com/tu-usuario/retail-pro/internal/domain"
	"github.com/tu-usuario/retail-pro/internal/domain/entity"
	"github.com/tu-usuario/retail-pro/internal/domain/repository"
)

// UseCase casos de uso de gastos operativos.
type UseCase struct {
	expenseRepo repository.ExpenseRepository
	branchRepo  repository.BranchRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(expenseRepo repository.ExpenseRepository, branchRepo repository.BranchRepository) *UseCase {
	return &UseCase{expenseRepo: expenseRepo, branchRepo: branchRepo}
}

// Create registra un gasto. Los empleados solo cargan gastos de su propia
// sucursal; sin sucursal en el pedido se usa la del empleado. Un gasto sin
// sucursal es un gasto general.
func (uc *UseCase) Create(ctx context.Context, actor dto.Actor, in dto.CreateExpenseRequest) (*entity.Expense, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: título requerido", domain.ErrInvalidInput)
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: el monto debe ser mayor a 0", domain.ErrInvalidInput)
	}

	branchID := in.BranchID
	if !actor.IsAdmin() {
		if branchID == "" {
			branchID = actor.BranchID
		} else if actor.BranchID != "" && branchID != actor.BranchID {
			return nil, domain.ErrForbidden
		}
	}
	if branchID != "" {
		if _, err := uc.branchRepo.GetByID(branchID); err != nil {
			return nil, fmt.Errorf("sucursal %s: %w", branchID, err)
		}
	}

	expense := &entity.Expense{
		ID:        uuid.New().String(),
		Title:     in.Title,
		Amount:    in.Amount.Round(2),
		BranchID:  branchID,
		CreatedBy: actor.UserID,
		CreatedAt: time.Now(),
	}
	if err := uc.expenseRepo.Create(expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// List devuelve los gastos del rango pedido; sin fechas se listan los del día.
// Los empleados con sucursal asignada solo ven los gastos de la suya.
func (uc *UseCase) List(_ context.Context, actor dto.Actor, filter repository.ExpenseFilter) ([]*entity.Expense, error) {
	now := time.Now()
	if filter.StartDate == nil {
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		filter.StartDate = &start
	}
	if filter.EndDate == nil {
		end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
		filter.EndDate = &end
	}
	if !actor.IsAdmin() && actor.BranchID != "" {
		filter.BranchID = actor.BranchID
	}
	return uc.expenseRepo.List(filter)
}

// Delete elimina un gasto. Solo administradores.
func (uc *UseCase) Delete(_ context.Context, actor dto.Actor, id string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	return uc.expenseRepo.Delete(id)
}
