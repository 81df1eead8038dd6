package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/retail-pro/internal/domain"
	"github.com/tu-usuario/retail-pro/internal/domain/entity"
	"github.com/tu-usuario/retail-pro/internal/domain/repository"
)

var _ repository.ProductionRepository = (*ProductionRepo)(nil)

// ProductionRepo implementación de ProductionRepository sobre PostgreSQL (usable con pool o tx).
type ProductionRepo struct {
	q Querier
}

// NewProductionRepository construye el adaptador de producción. Pasar pool o tx (Querier).
func NewProductionRepository(q Querier) *ProductionRepo {
	return &ProductionRepo{q: q}
}

const productionOrderColumns = `id, title, amount, customer_name, description, status, branch_id, created_by, created_at`

func scanProductionOrder(row pgx.Row) (*entity.ProductionOrder, error) {
	var o entity.ProductionOrder
	err := row.Scan(
		&o.ID, &o.Title, &o.Amount, &o.CustomerName, &o.Description,
		&o.Status, &o.BranchID, &o.CreatedBy, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateOrder persiste el encargo.
func (r *ProductionRepo) CreateOrder(order *entity.ProductionOrder) error {
	query := `
		INSERT INTO production_orders (id, title, amount, customer_name, description, status, branch_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Title, order.Amount, order.CustomerName, order.Description,
		order.Status, order.BranchID, order.CreatedBy, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert production order: %w", err)
	}
	return nil
}

// GetOrderByID obtiene el encargo con materiales y pagos.
func (r *ProductionRepo) GetOrderByID(id string) (*entity.ProductionOrder, error) {
	query := `SELECT ` + productionOrderColumns + ` FROM production_orders WHERE id = $1`
	order, err := scanProductionOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: encargo %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get production order: %w", err)
	}
	if err := r.loadDetail(order); err != nil {
		return nil, err
	}
	return order, nil
}

// ListOrders lista los encargos con detalle, más recientes primero.
func (r *ProductionRepo) ListOrders() ([]*entity.ProductionOrder, error) {
	query := `SELECT ` + productionOrderColumns + ` FROM production_orders ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list production orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionOrder
	for rows.Next() {
		order, err := scanProductionOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan production order: %w", err)
		}
		list = append(list, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, order := range list {
		if err := r.loadDetail(order); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// UpdateOrder actualiza los campos editables del encargo.
func (r *ProductionRepo) UpdateOrder(order *entity.ProductionOrder) error {
	query := `
		UPDATE production_orders
		SET title = $2, amount = $3, customer_name = $4, description = $5, status = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		order.ID, order.Title, order.Amount, order.CustomerName, order.Description, order.Status,
	)
	if err != nil {
		return fmt.Errorf("update production order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: encargo %s", domain.ErrNotFound, order.ID)
	}
	return nil
}

// CreateMaterial persiste un material consumido.
func (r *ProductionRepo) CreateMaterial(material *entity.ProductionMaterial) error {
	query := `
		INSERT INTO production_materials (id, order_id, product_id, quantity, unit_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		material.ID, material.OrderID, material.ProductID, material.Quantity,
		material.UnitPrice, material.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert production material: %w", err)
	}
	return nil
}

// CreatePayment persiste un pago a empleado.
func (r *ProductionRepo) CreatePayment(payment *entity.ProductionPayment) error {
	query := `
		INSERT INTO production_payments (id, order_id, employee_id, amount, note, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.OrderID, payment.EmployeeID, payment.Amount,
		nullIfEmpty(payment.Note), payment.CreatedBy, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert production payment: %w", err)
	}
	return nil
}

// CreateExpense persiste un gasto del taller.
func (r *ProductionRepo) CreateExpense(expense *entity.ProductionExpense) error {
	query := `
		INSERT INTO production_expenses (id, title, amount, order_id, branch_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		expense.ID, expense.Title, expense.Amount, nullIfEmpty(expense.OrderID),
		expense.BranchID, expense.CreatedBy, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert production expense: %w", err)
	}
	return nil
}

// ListExpenses lista gastos del taller filtrados, más recientes primero.
func (r *ProductionRepo) ListExpenses(filter repository.ExpenseFilter) ([]*entity.ProductionExpense, error) {
	query := `
		SELECT id, title, amount, COALESCE(order_id, ''), branch_id, created_by, created_at
		FROM production_expenses WHERE 1=1`
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.BranchID != "" {
		query += ` AND branch_id = ` + arg(filter.BranchID)
	}
	if filter.StartDate != nil {
		query += ` AND created_at >= ` + arg(*filter.StartDate)
	}
	if filter.EndDate != nil {
		query += ` AND created_at <= ` + arg(*filter.EndDate)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list production expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionExpense
	for rows.Next() {
		var e entity.ProductionExpense
		if err := rows.Scan(&e.ID, &e.Title, &e.Amount, &e.OrderID, &e.BranchID, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan production expense: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

func (r *ProductionRepo) loadDetail(order *entity.ProductionOrder) error {
	matRows, err := r.q.Query(context.Background(),
		`SELECT id, order_id, product_id, quantity, unit_price, created_at
		 FROM production_materials WHERE order_id = $1 ORDER BY created_at`, order.ID)
	if err != nil {
		return fmt.Errorf("list production materials: %w", err)
	}
	for matRows.Next() {
		var m entity.ProductionMaterial
		if err := matRows.Scan(&m.ID, &m.OrderID, &m.ProductID, &m.Quantity, &m.UnitPrice, &m.CreatedAt); err != nil {
			matRows.Close()
			return fmt.Errorf("scan production material: %w", err)
		}
		order.Materials = append(order.Materials, &m)
	}
	if err := matRows.Err(); err != nil {
		matRows.Close()
		return err
	}
	matRows.Close()

	payRows, err := r.q.Query(context.Background(),
		`SELECT id, order_id, employee_id, amount, COALESCE(note, ''), created_by, created_at
		 FROM production_payments WHERE order_id = $1 ORDER BY created_at`, order.ID)
	if err != nil {
		return fmt.Errorf("list production payments: %w", err)
	}
	defer payRows.Close()
	for payRows.Next() {
		var p entity.ProductionPayment
		if err := payRows.Scan(&p.ID, &p.OrderID, &p.EmployeeID, &p.Amount, &p.Note, &p.CreatedBy, &p.CreatedAt); err != nil {
			return fmt.Errorf("scan production payment: %w", err)
		}
		order.Payments = append(order.Payments, &p)
	}
	return payRows.Err()
}
