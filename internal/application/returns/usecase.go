// Package returns implementa las devoluciones de venta: validación de
// cantidades restantes bajo bloqueo, reposición de stock, compensación
// opcional contra la deuda del cliente y el desglose del reembolso por método
// de pago original.
package returns

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
	returnsdomain "github.com/tu-usuario/retail-pro/internal/domain/returns"
)

// UseCase casos de uso de devoluciones.
type UseCase struct {
	txRunner   TxRunner
	returnRepo repository.ReturnRepository
	saleRepo   repository.SaleRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, returnRepo repository.ReturnRepository, saleRepo repository.SaleRepository) *UseCase {
	return &UseCase{txRunner: txRunner, returnRepo: returnRepo, saleRepo: saleRepo}
}

// CreateReturn registra una devolución contra una venta. Por recibo devuelve
// todo lo que queda de cada línea; por posiciones valida cantidades contra lo
// ya devuelto, bloqueando la línea de venta para que dos devoluciones
// concurrentes no superen el original. El stock vuelve a la sucursal de la
// venta (se permite dejarlo como quede, incluso si hubo ajustes intermedios).
// Si se pide compensar deuda, el monto se acota a min(saldo del cliente,
// total devuelto).
func (uc *UseCase) CreateReturn(ctx context.Context, actor dto.Actor, in dto.CreateReturnRequest) (*entity.Return, error) {
	if in.SaleID == "" {
		return nil, fmt.Errorf("%w: venta requerida", domain.ErrInvalidInput)
	}
	if in.Type != entity.ReturnTypeByReceipt && in.Type != entity.ReturnTypeByItem {
		return nil, fmt.Errorf("%w: tipo de devolución desconocido %q", domain.ErrInvalidInput, in.Type)
	}
	if in.Type == entity.ReturnTypeByItem {
		if len(in.Items) == 0 {
			return nil, fmt.Errorf("%w: devolución por posiciones sin líneas", domain.ErrInvalidInput)
		}
		for _, item := range in.Items {
			if item.SaleItemID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
				return nil, fmt.Errorf("%w: cantidad a devolver inválida", domain.ErrInvalidInput)
			}
		}
	}
	if in.DebtOffsetAmount != nil && in.DebtOffsetAmount.IsNegative() {
		return nil, fmt.Errorf("%w: compensación negativa", domain.ErrInvalidInput)
	}

	ret := &entity.Return{
		ID:        uuid.New().String(),
		SaleID:    in.SaleID,
		Type:      in.Type,
		Reason:    in.Reason,
		CreatedBy: actor.UserID,
		CreatedAt: time.Now(),
	}

	err := uc.txRunner.RunReturn(ctx, func(
		returnRepo repository.ReturnRepository,
		saleRepo repository.SaleRepository,
		stockRepo repository.StockRepository,
		clientRepo repository.ClientRepository,
		debtRepo repository.DebtRepository,
		paymentRepo repository.DebtPaymentRepository,
	) error {
		sale, err := saleRepo.GetByID(in.SaleID)
		if err != nil {
			return err
		}
		if !actor.CanAccessBranch(sale.BranchID) {
			return domain.ErrForbidden
		}
		ret.BranchID = sale.BranchID

		items, err := buildReturnItems(returnRepo, saleRepo, sale, in, ret.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return fmt.Errorf("%w: la venta ya fue devuelta por completo", domain.ErrConflict)
		}
		ret.Items = items

		saleItems := make(map[string]*entity.SaleItem, len(sale.Items))
		for _, si := range sale.Items {
			saleItems[si.ID] = si
		}
		for _, item := range items {
			si := saleItems[item.SaleItemID]
			// La reposición admite stock negativo: un ajuste manual pudo
			// haber vaciado la sucursal entre la venta y la devolución.
			if _, _, err := inventory.Adjust(stockRepo, sale.BranchID, si.ProductID, item.Quantity, true); err != nil {
				return err
			}
		}

		if err := returnRepo.Create(ret); err != nil {
			return err
		}
		for _, item := range items {
			if err := returnRepo.CreateItem(item); err != nil {
				return err
			}
		}

		if in.ApplyToDebt {
			return allocateDebtOffset(clientRepo, debtRepo, paymentRepo, returnRepo, sale, ret, in.DebtOffsetAmount)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// buildReturnItems arma las líneas a devolver. Para by_receipt toma todas las
// líneas con cantidad restante; para by_item valida cada posición pedida. En
// ambos casos bloquea la línea de venta antes de recomputar lo ya devuelto.
func buildReturnItems(
	returnRepo repository.ReturnRepository,
	saleRepo repository.SaleRepository,
	sale *entity.Sale,
	in dto.CreateReturnRequest,
	returnID string,
) ([]*entity.ReturnItem, error) {
	requested := make(map[string]decimal.Decimal)
	if in.Type == entity.ReturnTypeByItem {
		saleItems := make(map[string]struct{}, len(sale.Items))
		for _, si := range sale.Items {
			saleItems[si.ID] = struct{}{}
		}
		for _, item := range in.Items {
			if _, ok := saleItems[item.SaleItemID]; !ok {
				return nil, fmt.Errorf("%w: la línea %s no pertenece a la venta", domain.ErrInvalidInput, item.SaleItemID)
			}
			requested[item.SaleItemID] = requested[item.SaleItemID].Add(item.Quantity)
		}
	}

	var items []*entity.ReturnItem
	for _, si := range sale.Items {
		qty, ok := requested[si.ID]
		if in.Type == entity.ReturnTypeByItem && !ok {
			continue
		}

		if _, err := saleRepo.GetItemForUpdate(si.ID); err != nil {
			return nil, err
		}
		returned, err := returnRepo.SumReturnedQuantity(si.ID)
		if err != nil {
			return nil, err
		}
		remaining := si.Quantity.Sub(returned)

		if in.Type == entity.ReturnTypeByReceipt {
			if !remaining.GreaterThan(decimal.Zero) {
				continue
			}
			qty = remaining
		} else if qty.GreaterThan(remaining) {
			return nil, fmt.Errorf("%w: la línea %s tiene %s disponible para devolver", domain.ErrInvalidInput, si.ID, remaining)
		}

		items = append(items, &entity.ReturnItem{
			ID:         uuid.New().String(),
			ReturnID:   returnID,
			SaleItemID: si.ID,
			Quantity:   qty,
			Amount:     si.UnitRefund().Mul(qty).Round(2),
		})
	}
	return items, nil
}

// allocateDebtOffset valida y aplica la compensación contra deuda. Sin monto
// explícito compensa el máximo posible; con monto explícito lo valida contra
// la cota min(saldo, total devuelto).
func allocateDebtOffset(
	clientRepo repository.ClientRepository,
	debtRepo repository.DebtRepository,
	paymentRepo repository.DebtPaymentRepository,
	returnRepo repository.ReturnRepository,
	sale *entity.Sale,
	ret *entity.Return,
	requested *decimal.Decimal,
) error {
	if sale.ClientID == "" {
		return fmt.Errorf("%w: la venta no tiene cliente para compensar deuda", domain.ErrInvalidInput)
	}
	client, err := clientRepo.GetByIDForUpdate(sale.ClientID)
	if err != nil {
		return err
	}

	maxOffset := decimal.Min(client.TotalDebt, ret.TotalAmount())
	if maxOffset.IsNegative() {
		maxOffset = decimal.Zero
	}
	offset := maxOffset
	if requested != nil {
		if requested.GreaterThan(maxOffset) {
			return fmt.Errorf("%w: la compensación (%s) supera el máximo (%s)", domain.ErrInvalidInput, requested, maxOffset)
		}
		offset = *requested
	}
	if !offset.GreaterThan(decimal.Zero) {
		return nil
	}

	_, err = debt.ApplyOffsetInTx(clientRepo, debtRepo, paymentRepo, returnRepo, client, ret, offset)
	return err
}

// GetByID devuelve una devolución visible para el actor.
func (uc *UseCase) GetByID(_ context.Context, actor dto.Actor, returnID string) (*entity.Return, error) {
	ret, err := uc.returnRepo.GetByID(returnID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessBranch(ret.BranchID) {
		return nil, domain.ErrForbidden
	}
	return ret, nil
}

// ListWithBreakdowns devuelve devoluciones con el desglose del reembolso por
// método de pago original. El desglose se deriva en memoria de todas las
// devoluciones de cada venta involucrada, no se persiste.
func (uc *UseCase) ListWithBreakdowns(_ context.Context, actor dto.Actor, filter repository.ReturnFilter) ([]dto.ReturnResponse, error) {
	if !actor.IsAdmin() {
		if actor.BranchID == "" {
			return nil, fmt.Errorf("%w: empleado sin sucursal asignada", domain.ErrInvalidInput)
		}
		filter.BranchID = actor.BranchID
	}
	rets, err := uc.returnRepo.List(filter)
	if err != nil {
		return nil, err
	}
	if len(rets) == 0 {
		return []dto.ReturnResponse{}, nil
	}

	// El desglose de una devolución depende de las anteriores sobre la misma
	// venta, así que se recalcula sobre el historial completo de cada venta.
	saleIDs := make([]string, 0, len(rets))
	seen := make(map[string]struct{}, len(rets))
	for _, ret := range rets {
		if _, ok := seen[ret.SaleID]; !ok {
			seen[ret.SaleID] = struct{}{}
			saleIDs = append(saleIDs, ret.SaleID)
		}
	}
	sales, err := uc.saleRepo.GetByIDs(saleIDs)
	if err != nil {
		return nil, err
	}

	var all []*entity.Return
	historySeen := make(map[string]struct{}, len(rets))
	for _, ret := range rets {
		historySeen[ret.ID] = struct{}{}
		all = append(all, ret)
	}
	for saleID := range seen {
		history, err := uc.returnRepo.List(repository.ReturnFilter{SaleID: saleID})
		if err != nil {
			return nil, err
		}
		for _, ret := range history {
			if _, ok := historySeen[ret.ID]; !ok {
				historySeen[ret.ID] = struct{}{}
				all = append(all, ret)
			}
		}
	}

	breakdowns := returnsdomain.CalculateBreakdowns(all, sales)

	out := make([]dto.ReturnResponse, 0, len(rets))
	for _, ret := range rets {
		resp := ToResponse(ret)
		if b, ok := breakdowns[ret.ID]; ok {
			resp.Breakdown = &dto.BreakdownResponse{Total: b.Total, Cash: b.Cash, Card: b.Card, Debt: b.Debt}
		}
		out = append(out, resp)
	}
	return out, nil
}

// ToResponse mapea la devolución a su DTO de salida (sin desglose).
func ToResponse(ret *entity.Return) dto.ReturnResponse {
	items := make([]dto.ReturnItemResponse, 0, len(ret.Items))
	for _, item := range ret.Items {
		items = append(items, dto.ReturnItemResponse{
			ID:         item.ID,
			SaleItemID: item.SaleItemID,
			Quantity:   item.Quantity,
			Amount:     item.Amount,
		})
	}
	return dto.ReturnResponse{
		ID:               ret.ID,
		SaleID:           ret.SaleID,
		BranchID:         ret.BranchID,
		Type:             ret.Type,
		Reason:           ret.Reason,
		ApplyToDebt:      ret.ApplyToDebt,
		DebtOffsetAmount: ret.DebtOffsetAmount,
		TotalAmount:      ret.TotalAmount(),
		CreatedBy:        ret.CreatedBy,
		CreatedAt:        ret.CreatedAt,
		Items:            items,
	}
}
