// Package debt implementa el libro de deudas: alta por venta a crédito,
// pagos directos y compensaciones por devolución, manteniendo el acumulado
// del cliente en línea con la suma de saldos pendientes.
package debt

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pro/internal/application/dto"
	"github.com/tu-usuario/retail-pro/internal/domain"
	debtdomain "github.com/tu-usuario/retail-pro/internal/domain/debt"
	"github.com/tu-usuario/retail-pro/internal/domain/entity"
	"github.com/tu-usuario/retail-pro/internal/domain/repository"
)

// UseCase casos de uso del libro de deudas.
type UseCase struct {
	txRunner    TxRunner
	debtRepo    repository.DebtRepository
	paymentRepo repository.DebtPaymentRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, debtRepo repository.DebtRepository, paymentRepo repository.DebtPaymentRepository) *UseCase {
	return &UseCase{txRunner: txRunner, debtRepo: debtRepo, paymentRepo: paymentRepo}
}

// PayDebt registra un pago contra el saldo de un cliente. El monto aplicado
// es min(monto, saldo total) mientras haya saldo; con saldo en cero se aplica
// el monto crudo (comportamiento heredado que deja el sobrepago registrado
// como anticipo). El pago se reparte FIFO entre las deudas abiertas, o solo
// contra la deuda indicada si viene debt_id, y el registro guarda el monto
// efectivamente aplicado, no el solicitado.
func (uc *UseCase) PayDebt(ctx context.Context, actor dto.Actor, in dto.PayDebtRequest) (*entity.DebtPayment, error) {
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: el monto debe ser mayor a 0", domain.ErrInvalidInput)
	}
	if in.ClientID == "" {
		return nil, fmt.Errorf("%w: cliente requerido", domain.ErrInvalidInput)
	}
	branchID := in.BranchID
	if !actor.IsAdmin() {
		if actor.BranchID == "" {
			return nil, fmt.Errorf("%w: empleado sin sucursal asignada", domain.ErrForbidden)
		}
		if in.BranchID != "" && in.BranchID != actor.BranchID {
			return nil, domain.ErrForbidden
		}
		branchID = actor.BranchID
	}
	paymentType := in.PaymentType
	if paymentType == "" {
		paymentType = entity.PaymentTypeCash
	}

	var payment *entity.DebtPayment
	err := uc.txRunner.RunDebt(ctx, func(
		clientRepo repository.ClientRepository,
		debtRepo repository.DebtRepository,
		paymentRepo repository.DebtPaymentRepository,
	) error {
		client, err := clientRepo.GetByIDForUpdate(in.ClientID)
		if err != nil {
			return err
		}

		amount := in.Amount.Round(2)
		applied := debtdomain.CapToOutstanding(amount, client.TotalDebt)

		var openDebts []*entity.Debt
		if in.DebtID != "" {
			targeted, err := debtRepo.GetByID(in.DebtID)
			if err != nil {
				return err
			}
			if targeted.ClientID != client.ID {
				return fmt.Errorf("%w: la deuda no pertenece al cliente", domain.ErrNotFound)
			}
			openDebts = []*entity.Debt{targeted}
		} else {
			openDebts, err = debtRepo.ListOpenByClientForUpdate(client.ID)
			if err != nil {
				return err
			}
		}

		if err := applyPortions(debtRepo, openDebts, applied); err != nil {
			return err
		}
		if err := clientRepo.UpdateTotalDebt(client.ID, debtdomain.ReduceTotal(client.TotalDebt, applied)); err != nil {
			return err
		}

		payment = &entity.DebtPayment{
			ID:          uuid.New().String(),
			ClientID:    client.ID,
			DebtID:      in.DebtID,
			BranchID:    branchID,
			Amount:      applied,
			PaymentType: paymentType,
			ProcessedBy: actor.UserID,
			CreatedAt:   time.Now(),
		}
		return paymentRepo.Create(payment)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// ApplyCreditSaleInTx crea la deuda de una venta a crédito y suma el monto al
// acumulado del cliente. Corre dentro de la transacción de la venta, con el
// cliente ya bloqueado por el caller.
func ApplyCreditSaleInTx(
	clientRepo repository.ClientRepository,
	debtRepo repository.DebtRepository,
	client *entity.Client,
	saleID string,
	amount decimal.Decimal,
) (*entity.Debt, error) {
	debt := &entity.Debt{
		ID:        uuid.New().String(),
		ClientID:  client.ID,
		SaleID:    saleID,
		Amount:    amount,
		Paid:      decimal.Zero,
		CreatedAt: time.Now(),
	}
	if err := debtRepo.Create(debt); err != nil {
		return nil, err
	}
	if err := clientRepo.UpdateTotalDebt(client.ID, client.TotalDebt.Add(amount)); err != nil {
		return nil, err
	}
	return debt, nil
}

// ApplyOffsetInTx compensa deuda con el reembolso de una devolución: mismo
// recorrido FIFO que un pago, acotado por min(saldo, total devuelto), con
// registro de pago tipo "offset" y estampado de la devolución. Corre dentro
// de la transacción de la devolución, con el cliente ya bloqueado.
func ApplyOffsetInTx(
	clientRepo repository.ClientRepository,
	debtRepo repository.DebtRepository,
	paymentRepo repository.DebtPaymentRepository,
	returnRepo repository.ReturnRepository,
	client *entity.Client,
	ret *entity.Return,
	offset decimal.Decimal,
) (*entity.DebtPayment, error) {
	openDebts, err := debtRepo.ListOpenByClientForUpdate(client.ID)
	if err != nil {
		return nil, err
	}
	if err := applyPortions(debtRepo, openDebts, offset); err != nil {
		return nil, err
	}
	if err := clientRepo.UpdateTotalDebt(client.ID, debtdomain.ReduceTotal(client.TotalDebt, offset)); err != nil {
		return nil, err
	}
	if err := returnRepo.SetDebtOffset(ret.ID, offset); err != nil {
		return nil, err
	}
	ret.ApplyToDebt = true
	ret.DebtOffsetAmount = &offset

	payment := &entity.DebtPayment{
		ID:          uuid.New().String(),
		ClientID:    client.ID,
		BranchID:    ret.BranchID,
		Amount:      offset,
		PaymentType: entity.PaymentTypeOffset,
		ProcessedBy: ret.CreatedBy,
		CreatedAt:   time.Now(),
	}
	if err := paymentRepo.Create(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// applyPortions reparte el monto entre las deudas según el plan FIFO y
// persiste cada cuota.
func applyPortions(debtRepo repository.DebtRepository, debts []*entity.Debt, amount decimal.Decimal) error {
	byID := make(map[string]*entity.Debt, len(debts))
	for _, d := range debts {
		byID[d.ID] = d
	}
	for _, portion := range debtdomain.PlanAllocation(debts, amount) {
		d := byID[portion.DebtID]
		d.Paid = d.Paid.Add(portion.Amount)
		if err := debtRepo.UpdatePaid(d.ID, d.Paid); err != nil {
			return err
		}
	}
	return nil
}

// ListByClient devuelve las deudas de un cliente con su saldo.
func (uc *UseCase) ListByClient(_ context.Context, clientID string) ([]*entity.Debt, error) {
	return uc.debtRepo.ListByClient(clientID)
}

// ListPayments devuelve los pagos registrados de un cliente.
func (uc *UseCase) ListPayments(_ context.Context, clientID string) ([]*entity.DebtPayment, error) {
	return uc.paymentRepo.ListByClient(clientID)
}
