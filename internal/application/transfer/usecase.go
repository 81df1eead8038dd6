// Package transfer implementa la máquina de estados de transferencias entre
// sucursales: waiting → done | rejected, con débito/crédito de stock en dos
// fases al aceptar.
package transfer

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

// UseCase casos de uso de transferencias.
type UseCase struct {
	txRunner     TxRunner
	branchRepo   repository.BranchRepository
	transferRepo repository.TransferRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, branchRepo repository.BranchRepository, transferRepo repository.TransferRepository) *UseCase {
	return &UseCase{txRunner: txRunner, branchRepo: branchRepo, transferRepo: transferRepo}
}

// Create valida y persiste una transferencia en estado waiting. La
// verificación de stock por línea es consultiva: el stock no se mueve todavía
// (eso ocurre al aceptar), pero rechazar aquí evita crear transferencias que
// ya nacen incobrables. Si cualquier línea falla no se persiste nada.
func (uc *UseCase) Create(ctx context.Context, actor dto.Actor, in dto.CreateTransferRequest) (*entity.Transfer, error) {
	if in.FromBranchID == "" || in.ToBranchID == "" {
		return nil, fmt.Errorf("%w: sucursales requeridas", domain.ErrInvalidInput)
	}
	if in.FromBranchID == in.ToBranchID {
		return nil, fmt.Errorf("%w: no se puede transferir a la misma sucursal", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: lista de productos vacía", domain.ErrInvalidInput)
	}
	for _, item := range in.Items {
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: cantidad inválida", domain.ErrInvalidInput)
		}
	}
	// El empleado despacha desde su propia sucursal
	if !actor.CanAccessBranch(in.FromBranchID) {
		return nil, domain.ErrForbidden
	}
	if err := uc.ensureBranch(in.FromBranchID); err != nil {
		return nil, err
	}
	if err := uc.ensureBranch(in.ToBranchID); err != nil {
		return nil, err
	}

	now := time.Now()
	transfer := &entity.Transfer{
		ID:           uuid.New().String(),
		FromBranchID: in.FromBranchID,
		ToBranchID:   in.ToBranchID,
		Status:       entity.TransferStatusWaiting,
		Comment:      in.Comment,
		CreatedBy:    actor.UserID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, item := range in.Items {
		transfer.Items = append(transfer.Items, &entity.TransferItem{
			ID:            uuid.New().String(),
			TransferID:    transfer.ID,
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			PurchasePrice: item.PurchasePrice,
			SellingPrice:  item.SellingPrice,
		})
	}

	err := uc.txRunner.RunTransfer(ctx, func(
		transferRepo repository.TransferRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error {
		for _, item := range transfer.Items {
			if _, err := productRepo.GetByID(item.ProductID); err != nil {
				return fmt.Errorf("producto %s: %w", item.ProductID, err)
			}
			stock, err := stockRepo.Get(transfer.FromBranchID, item.ProductID)
			if err != nil {
				return err
			}
			if stock.Quantity.LessThan(item.Quantity) {
				return fmt.Errorf("%w: producto %s en sucursal origen", domain.ErrInsufficientStock, item.ProductID)
			}
		}
		return transferRepo.Create(transfer)
	})
	if err != nil {
		return nil, err
	}
	return transfer, nil
}

// Accept procesa una transferencia waiting: bloquea la cabecera, re-valida el
// stock de todas las líneas contra el origen (pudo cambiar desde la creación)
// y solo si todas pasan debita el origen y acredita el destino línea por
// línea. La disciplina "validar todo, luego mutar todo" evita dejar stock a
// medias ante un fallo intermedio; de todos modos la tx revierte completo.
func (uc *UseCase) Accept(ctx context.Context, actor dto.Actor, transferID string) (*entity.Transfer, error) {
	var result *entity.Transfer
	err := uc.txRunner.RunTransfer(ctx, func(
		transferRepo repository.TransferRepository,
		stockRepo repository.StockRepository,
		_ repository.ProductRepository,
	) error {
		transfer, err := transferRepo.GetByIDForUpdate(transferID)
		if err != nil {
			return err
		}
		if transfer.Status != entity.TransferStatusWaiting {
			return fmt.Errorf("%w: la transferencia ya fue procesada (%s)", domain.ErrConflict, transfer.Status)
		}
		// Acepta quien recibe: el actor debe pertenecer a la sucursal destino
		if !actor.CanAccessBranch(transfer.ToBranchID) {
			return domain.ErrForbidden
		}

		// Fase 1: bloquear y validar todas las líneas
		for _, item := range transfer.Items {
			stock, err := stockRepo.GetForUpdate(transfer.FromBranchID, item.ProductID)
			if err != nil {
				return err
			}
			if stock.Quantity.LessThan(item.Quantity) {
				return fmt.Errorf("%w: producto %s en sucursal origen", domain.ErrInsufficientStock, item.ProductID)
			}
		}
		// Fase 2: debitar origen, acreditar destino
		for _, item := range transfer.Items {
			if _, _, err := inventory.Adjust(stockRepo, transfer.FromBranchID, item.ProductID, item.Quantity.Neg(), false); err != nil {
				return err
			}
			if _, _, err := inventory.Adjust(stockRepo, transfer.ToBranchID, item.ProductID, item.Quantity, false); err != nil {
				return err
			}
		}

		now := time.Now()
		transfer.Status = entity.TransferStatusDone
		transfer.ProcessedBy = actor.UserID
		transfer.ProcessedAt = &now
		transfer.UpdatedAt = now
		if err := transferRepo.UpdateStatus(transfer); err != nil {
			return err
		}
		result = transfer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Reject rechaza una transferencia waiting registrando el motivo. No mueve stock.
func (uc *UseCase) Reject(ctx context.Context, actor dto.Actor, transferID, reason string) (*entity.Transfer, error) {
	var result *entity.Transfer
	err := uc.txRunner.RunTransfer(ctx, func(
		transferRepo repository.TransferRepository,
		_ repository.StockRepository,
		_ repository.ProductRepository,
	) error {
		transfer, err := transferRepo.GetByIDForUpdate(transferID)
		if err != nil {
			return err
		}
		if transfer.Status != entity.TransferStatusWaiting {
			return fmt.Errorf("%w: la transferencia ya fue procesada (%s)", domain.ErrConflict, transfer.Status)
		}
		if !actor.CanAccessBranch(transfer.ToBranchID) {
			return domain.ErrForbidden
		}

		now := time.Now()
		transfer.Status = entity.TransferStatusRejected
		transfer.RejectReason = reason
		transfer.ProcessedBy = actor.UserID
		transfer.ProcessedAt = &now
		transfer.UpdatedAt = now
		if err := transferRepo.UpdateStatus(transfer); err != nil {
			return err
		}
		result = transfer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID devuelve una transferencia visible para el actor.
func (uc *UseCase) GetByID(_ context.Context, actor dto.Actor, transferID string) (*entity.Transfer, error) {
	transfer, err := uc.transferRepo.GetByID(transferID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessBranch(transfer.FromBranchID) && !actor.CanAccessBranch(transfer.ToBranchID) {
		return nil, domain.ErrForbidden
	}
	return transfer, nil
}

// List devuelve transferencias filtradas; los empleados solo ven las que tocan su sucursal.
func (uc *UseCase) List(_ context.Context, actor dto.Actor, filter repository.TransferFilter) ([]*entity.Transfer, error) {
	if !actor.IsAdmin() {
		if actor.BranchID == "" {
			return nil, fmt.Errorf("%w: empleado sin sucursal asignada", domain.ErrInvalidInput)
		}
		filter.BranchScope = actor.BranchID
	}
	return uc.transferRepo.List(filter)
}

func (uc *UseCase) ensureBranch(id string) error {
	branch, err := uc.branchRepo.GetByID(id)
	if err != nil {
		return err
	}
	if !branch.Active {
		return fmt.Errorf("%w: sucursal inactiva", domain.ErrConflict)
	}
	return nil
}
