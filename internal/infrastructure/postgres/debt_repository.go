package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pro/internal/domain"
	"github.com/tu-usuario/retail-pro/internal/domain/entity"
	"github.com/tu-usuario/retail-pro/internal/domain/repository"
)

var _ repository.DebtRepository = (*DebtRepo)(nil)

// DebtRepo implementación de DebtRepository sobre PostgreSQL (usable con pool o tx).
type DebtRepo struct {
	q Querier
}

// NewDebtRepository construye el adaptador de deudas. Pasar pool o tx (Querier).
func NewDebtRepository(q Querier) *DebtRepo {
	return &DebtRepo{q: q}
}

const debtColumns = `id, client_id, sale_id, amount, paid, created_at, updated_at`

func scanDebt(row pgx.Row) (*entity.Debt, error) {
	var d entity.Debt
	var saleID *string
	if err := row.Scan(&d.ID, &d.ClientID, &saleID, &d.Amount, &d.Paid, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	if saleID != nil {
		d.SaleID = *saleID
	}
	return &d, nil
}

// Create persiste una deuda.
func (r *DebtRepo) Create(debt *entity.Debt) error {
	query := `
		INSERT INTO debts (id, client_id, sale_id, amount, paid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())`
	_, err := r.q.Exec(context.Background(), query,
		debt.ID, debt.ClientID, nullIfEmpty(debt.SaleID), debt.Amount, debt.Paid, debt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert debt: %w", err)
	}
	return nil
}

// GetByID obtiene una deuda por ID.
func (r *DebtRepo) GetByID(id string) (*entity.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE id = $1`
	d, err := scanDebt(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: deuda %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get debt: %w", err)
	}
	return d, nil
}

// ListOpenByClientForUpdate devuelve las deudas con saldo pendiente del
// cliente, más antiguas primero (FIFO), bloqueadas con SELECT FOR UPDATE
// durante el recorrido de asignación.
func (r *DebtRepo) ListOpenByClientForUpdate(clientID string) ([]*entity.Debt, error) {
	query := `SELECT ` + debtColumns + `
		FROM debts WHERE client_id = $1 AND paid < amount
		ORDER BY created_at ASC
		FOR UPDATE`
	rows, err := r.q.Query(context.Background(), query, clientID)
	if err != nil {
		return nil, fmt.Errorf("list open debts: %w", err)
	}
	defer rows.Close()
	return collectDebts(rows)
}

// ListByClient devuelve todas las deudas de un cliente, más antiguas primero.
func (r *DebtRepo) ListByClient(clientID string) ([]*entity.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE client_id = $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, clientID)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	defer rows.Close()
	return collectDebts(rows)
}

// UpdatePaid fija el acumulado pagado de una deuda.
func (r *DebtRepo) UpdatePaid(id string, paid decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE debts SET paid = $2, updated_at = now() WHERE id = $1`,
		id, paid,
	)
	if err != nil {
		return fmt.Errorf("update debt paid: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: deuda %s", domain.ErrNotFound, id)
	}
	return nil
}

func collectDebts(rows pgx.Rows) ([]*entity.Debt, error) {
	var list []*entity.Debt
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan debt: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

var _ repository.DebtPaymentRepository = (*DebtPaymentRepo)(nil)

// DebtPaymentRepo implementación de DebtPaymentRepository sobre PostgreSQL.
type DebtPaymentRepo struct {
	q Querier
}

// NewDebtPaymentRepository construye el adaptador de pagos de deuda.
func NewDebtPaymentRepository(q Querier) *DebtPaymentRepo {
	return &DebtPaymentRepo{q: q}
}

// Create persiste un pago de deuda (o compensación por devolución).
func (r *DebtPaymentRepo) Create(payment *entity.DebtPayment) error {
	query := `
		INSERT INTO debt_payments (id, client_id, debt_id, branch_id, amount, payment_type, processed_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.ClientID, nullIfEmpty(payment.DebtID), nullIfEmpty(payment.BranchID),
		payment.Amount, payment.PaymentType, payment.ProcessedBy, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert debt payment: %w", err)
	}
	return nil
}

// ListByClient devuelve los pagos de un cliente, más recientes primero.
func (r *DebtPaymentRepo) ListByClient(clientID string) ([]*entity.DebtPayment, error) {
	query := `
		SELECT id, client_id, debt_id, branch_id, amount, payment_type, processed_by, created_at
		FROM debt_payments WHERE client_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, clientID)
	if err != nil {
		return nil, fmt.Errorf("list debt payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.DebtPayment
	for rows.Next() {
		var p entity.DebtPayment
		var debtID, branchID *string
		if err := rows.Scan(&p.ID, &p.ClientID, &debtID, &branchID, &p.Amount, &p.PaymentType, &p.ProcessedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan debt payment: %w", err)
		}
		if debtID != nil {
			p.DebtID = *debtID
		}
		if branchID != nil {
			p.BranchID = *branchID
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
