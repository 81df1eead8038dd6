package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/retail-pro/internal/domain/entity"
	"github.com/tu-usuario/retail-pro/internal/domain/repository"
)

var _ repository.IncomeRepository = (*IncomeRepo)(nil)

// IncomeRepo implementación de IncomeRepository sobre PostgreSQL (usable con pool o tx).
type IncomeRepo struct {
	q Querier
}

// NewIncomeRepository construye el adaptador de recepciones. Pasar pool o tx (Querier).
func NewIncomeRepository(q Querier) *IncomeRepo {
	return &IncomeRepo{q: q}
}

// Create persiste la cabecera de la recepción.
func (r *IncomeRepo) Create(income *entity.Income) error {
	query := `
		INSERT INTO incomes (id, branch_id, created_by, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		income.ID, income.BranchID, income.CreatedBy, income.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert income: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de recepción.
func (r *IncomeRepo) CreateItem(item *entity.IncomeItem) error {
	query := `
		INSERT INTO income_items (id, income_id, product_id, quantity, purchase_price, sale_price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.IncomeID, item.ProductID, item.Quantity, item.PurchasePrice, item.SalePrice,
	)
	if err != nil {
		return fmt.Errorf("insert income item: %w", err)
	}
	return nil
}

// List lista las recepciones de una sucursal con sus líneas, más recientes primero.
func (r *IncomeRepo) List(branchID string) ([]*entity.Income, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, branch_id, created_by, created_at FROM incomes
		 WHERE branch_id = $1 ORDER BY created_at DESC`, branchID)
	if err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Income
	for rows.Next() {
		var in entity.Income
		if err := rows.Scan(&in.ID, &in.BranchID, &in.CreatedBy, &in.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan income: %w", err)
		}
		list = append(list, &in)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, in := range list {
		itemRows, err := r.q.Query(context.Background(),
			`SELECT id, income_id, product_id, quantity, purchase_price, sale_price
			 FROM income_items WHERE income_id = $1 ORDER BY id`, in.ID)
		if err != nil {
			return nil, fmt.Errorf("list income items: %w", err)
		}
		for itemRows.Next() {
			var it entity.IncomeItem
			if err := itemRows.Scan(&it.ID, &it.IncomeID, &it.ProductID, &it.Quantity, &it.PurchasePrice, &it.SalePrice); err != nil {
				itemRows.Close()
				return nil, fmt.Errorf("scan income item: %w", err)
			}
			in.Items = append(in.Items, &it)
		}
		if err := itemRows.Err(); err != nil {
			itemRows.Close()
			return nil, err
		}
		itemRows.Close()
	}
	return list, nil
}
