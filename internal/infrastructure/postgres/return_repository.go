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

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo implementación de ReturnRepository sobre PostgreSQL (usable con pool o tx).
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador de devoluciones. Pasar pool o tx (Querier).
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

const returnColumns = `id, sale_id, branch_id, type, reason, apply_to_debt, debt_offset_amount, created_by, created_at`

func scanReturn(row pgx.Row) (*entity.Return, error) {
	var ret entity.Return
	var reason *string
	err := row.Scan(
		&ret.ID, &ret.SaleID, &ret.BranchID, &ret.Type, &reason,
		&ret.ApplyToDebt, &ret.DebtOffsetAmount, &ret.CreatedBy, &ret.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if reason != nil {
		ret.Reason = *reason
	}
	return &ret, nil
}

// Create persiste la cabecera de la devolución.
func (r *ReturnRepo) Create(ret *entity.Return) error {
	query := `
		INSERT INTO returns (id, sale_id, branch_id, type, reason, apply_to_debt, debt_offset_amount, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		ret.ID, ret.SaleID, ret.BranchID, ret.Type, nullIfEmpty(ret.Reason),
		ret.ApplyToDebt, ret.DebtOffsetAmount, ret.CreatedBy, ret.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert return: %w", err)
	}
	return nil
}

// CreateItem persiste una línea devuelta.
func (r *ReturnRepo) CreateItem(item *entity.ReturnItem) error {
	query := `
		INSERT INTO return_items (id, return_id, sale_item_id, quantity, amount)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ReturnID, item.SaleItemID, item.Quantity, item.Amount,
	)
	if err != nil {
		return fmt.Errorf("insert return item: %w", err)
	}
	return nil
}

// GetByID obtiene la devolución con sus líneas.
func (r *ReturnRepo) GetByID(id string) (*entity.Return, error) {
	query := `SELECT ` + returnColumns + ` FROM returns WHERE id = $1`
	ret, err := scanReturn(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: devolución %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get return: %w", err)
	}
	if ret.Items, err = r.loadItems(ret.ID); err != nil {
		return nil, err
	}
	return ret, nil
}

// List lista devoluciones con sus líneas, más recientes primero.
func (r *ReturnRepo) List(filter repository.ReturnFilter) ([]*entity.Return, error) {
	query := `SELECT ` + returnColumns + ` FROM returns WHERE 1=1`
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.SaleID != "" {
		query += ` AND sale_id = ` + arg(filter.SaleID)
	}
	if filter.BranchID != "" {
		query += ` AND branch_id = ` + arg(filter.BranchID)
	}
	if filter.CreatedBy != "" {
		query += ` AND created_by = ` + arg(filter.CreatedBy)
	}
	if filter.Type != "" {
		query += ` AND type = ` + arg(filter.Type)
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
		return nil, fmt.Errorf("list returns: %w", err)
	}
	defer rows.Close()
	var list []*entity.Return
	for rows.Next() {
		ret, err := scanReturn(rows)
		if err != nil {
			return nil, fmt.Errorf("scan return: %w", err)
		}
		list = append(list, ret)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, ret := range list {
		if ret.Items, err = r.loadItems(ret.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// SumReturnedQuantity suma las cantidades ya devueltas de una línea de venta.
func (r *ReturnRepo) SumReturnedQuantity(saleItemID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity), 0) FROM return_items WHERE sale_item_id = $1`,
		saleItemID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum returned quantity: %w", err)
	}
	return total, nil
}

// SetDebtOffset estampa la compensación contra deuda en la devolución.
func (r *ReturnRepo) SetDebtOffset(returnID string, amount decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE returns SET apply_to_debt = true, debt_offset_amount = $2 WHERE id = $1`,
		returnID, amount,
	)
	if err != nil {
		return fmt.Errorf("set return debt offset: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: devolución %s", domain.ErrNotFound, returnID)
	}
	return nil
}

func (r *ReturnRepo) loadItems(returnID string) ([]*entity.ReturnItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, return_id, sale_item_id, quantity, amount
		 FROM return_items WHERE return_id = $1 ORDER BY id`, returnID)
	if err != nil {
		return nil, fmt.Errorf("list return items: %w", err)
	}
	defer rows.Close()
	var items []*entity.ReturnItem
	for rows.Next() {
		var it entity.ReturnItem
		if err := rows.Scan(&it.ID, &it.ReturnID, &it.SaleItemID, &it.Quantity, &it.Amount); err != nil {
			return nil, fmt.Errorf("scan return item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}
