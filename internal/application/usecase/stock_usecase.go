package usecase

import (
	"fmt"

	"github.com/tu-usuario/retail-pro/internal/application/dto"
	"github.com/tu-usuario/retail-pro/internal/domain"
	"github.com/tu-usuario/retail-pro/internal/domain/repository"
)

// StockUseCase consultas de stock por sucursal. Las mutaciones pasan por
// ventas, devoluciones, recepciones y transferencias, nunca por aquí.
type StockUseCase struct {
	repo repository.StockRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(repo repository.StockRepository) *StockUseCase {
	return &StockUseCase{repo: repo}
}

// ListByBranch lista el stock de una sucursal; los empleados solo ven la suya.
func (uc *StockUseCase) ListByBranch(actor dto.Actor, branchID string) ([]*dto.StockResponse, error) {
	if !actor.IsAdmin() {
		if actor.BranchID == "" {
			return nil, fmt.Errorf("%w: empleado sin sucursal asignada", domain.ErrInvalidInput)
		}
		branchID = actor.BranchID
	}
	if branchID == "" {
		return nil, fmt.Errorf("%w: sucursal requerida", domain.ErrInvalidInput)
	}
	stocks, err := uc.repo.ListByBranch(branchID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StockResponse, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, &dto.StockResponse{
			BranchID:  s.BranchID,
			ProductID: s.ProductID,
			Quantity:  s.Quantity,
			UpdatedAt: s.UpdatedAt,
		})
	}
	return out, nil
}

// Get devuelve el stock de un producto en una sucursal. Si no hay fila el
// producto simplemente no tiene existencias allí.
func (uc *StockUseCase) Get(actor dto.Actor, branchID, productID string) (*dto.StockResponse, error) {
	if !actor.CanAccessBranch(branchID) {
		return nil, domain.ErrForbidden
	}
	stock, err := uc.repo.Get(branchID, productID)
	if err != nil {
		return nil, err
	}
	return &dto.StockResponse{
		BranchID:  stock.BranchID,
		ProductID: stock.ProductID,
		Quantity:  stock.Quantity,
		UpdatedAt: stock.UpdatedAt,
	}, nil
}
