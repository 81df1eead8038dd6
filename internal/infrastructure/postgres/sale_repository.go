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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, branch_id, seller_id, client_id, total_amount, paid_cash, paid_card, paid_debt, payment_type, created_at, updated_at`

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var clientID, paymentType *string
	err := row.Scan(
		&s.ID, &s.BranchID, &s.SellerID, &clientID, &s.TotalAmount,
		&s.PaidCash, &s.PaidCard, &s.PaidDebt, &paymentType, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if clientID != nil {
		s.ClientID = *clientID
	}
	if paymentType != nil {
		s.PaymentType = *paymentType
	}
	return &s, nil
}

// Create persiste la cabecera de la venta. Las líneas van por CreateItem
// dentro de la misma tx.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, branch_id, seller_id, client_id, total_amount, paid_cash, paid_card, paid_debt, payment_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.BranchID, sale.SellerID, nullIfEmpty(sale.ClientID), sale.TotalAmount,
		sale.PaidCash, sale.PaidCard, sale.PaidDebt, nullIfEmpty(sale.PaymentType),
		sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de venta.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, price, discount, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.Quantity, item.Price, item.Discount, item.Total,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID obtiene la venta con sus líneas.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	s, err := scanSale(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: venta %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if s.Items, err = r.loadItems(s.ID); err != nil {
		return nil, err
	}
	return s, nil
}

// GetByIDs obtiene varias ventas con sus líneas, indexadas por ID. Las que no
// existen simplemente no aparecen en el mapa.
func (r *SaleRepo) GetByIDs(ids []string) (map[string]*entity.Sale, error) {
	out := make(map[string]*entity.Sale, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("get sales by ids: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		out[s.ID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, s := range out {
		if s.Items, err = r.loadItems(s.ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// GetItemForUpdate obtiene una línea de venta bloqueándola (SELECT FOR
// UPDATE). Ancla las validaciones de cantidad devuelta restante.
func (r *SaleRepo) GetItemForUpdate(saleItemID string) (*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, quantity, price, discount, total
		FROM sale_items WHERE id = $1
		FOR UPDATE`
	var it entity.SaleItem
	err := r.q.QueryRow(context.Background(), query, saleItemID).Scan(
		&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.Price, &it.Discount, &it.Total,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: línea de venta %s", domain.ErrNotFound, saleItemID)
		}
		return nil, fmt.Errorf("get sale item for update: %w", err)
	}
	return &it, nil
}

// List lista ventas con sus líneas, más recientes primero.
func (r *SaleRepo) List(filter repository.SaleFilter) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE 1=1`
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.BranchID != "" {
		query += ` AND branch_id = ` + arg(filter.BranchID)
	}
	if filter.SellerID != "" {
		query += ` AND seller_id = ` + arg(filter.SellerID)
	}
	if filter.ClientID != "" {
		query += ` AND client_id = ` + arg(filter.ClientID)
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
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, s := range list {
		if s.Items, err = r.loadItems(s.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *SaleRepo) loadItems(saleID string) ([]*entity.SaleItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, sale_id, product_id, quantity, price, discount, total
		 FROM sale_items WHERE sale_id = $1 ORDER BY id`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var items []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.Price, &it.Discount, &it.Total); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}
