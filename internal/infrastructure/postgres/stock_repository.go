package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pro/internal/domain/entity"
	"github.com/tu-usuario/retail-pro/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
// La fila de stock se crea perezosamente: Get devuelve cantidad cero si no
// existe y GetForUpdate la materializa en cero antes de bloquearla.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un producto en una sucursal.
func (r *StockRepo) Get(branchID, productID string) (*entity.Stock, error) {
	query := `
		SELECT id, branch_id, product_id, quantity, created_at, updated_at
		FROM stocks WHERE branch_id = $1 AND product_id = $2`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, branchID, productID).Scan(
		&s.ID, &s.BranchID, &s.ProductID, &s.Quantity, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{BranchID: branchID, ProductID: productID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el stock y bloquea la fila (SELECT FOR UPDATE). Si la
// fila aún no existe se materializa en cero y se relee: el lock siempre se
// toma sobre una fila real antes del leer-modificar-escribir, de modo que dos
// transacciones concurrentes sobre el mismo par quedan serializadas.
func (r *StockRepo) GetForUpdate(branchID, productID string) (*entity.Stock, error) {
	query := `
		SELECT id, branch_id, product_id, quantity, created_at, updated_at
		FROM stocks WHERE branch_id = $1 AND product_id = $2
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, branchID, productID).Scan(
		&s.ID, &s.BranchID, &s.ProductID, &s.Quantity, &s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		if err = r.materialize(branchID, productID); err != nil {
			return nil, err
		}
		err = r.q.QueryRow(context.Background(), query, branchID, productID).Scan(
			&s.ID, &s.BranchID, &s.ProductID, &s.Quantity, &s.CreatedAt, &s.UpdatedAt,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// materialize crea la fila de stock en cero si aún no existe. DO NOTHING: si
// otra transacción la insertó primero, la relectura bloquea esa fila.
func (r *StockRepo) materialize(branchID, productID string) error {
	query := `
		INSERT INTO stocks (id, branch_id, product_id, quantity, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, 0, now(), now())
		ON CONFLICT (branch_id, product_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), query, branchID, productID); err != nil {
		return fmt.Errorf("materialize stock: %w", err)
	}
	return nil
}

// Upsert inserta o actualiza la cantidad en stock (por sucursal y producto).
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stocks (id, branch_id, product_id, quantity, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, now(), now())
		ON CONFLICT (branch_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, stock.BranchID, stock.ProductID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByBranch lista el stock completo de una sucursal.
func (r *StockRepo) ListByBranch(branchID string) ([]*entity.Stock, error) {
	query := `
		SELECT id, branch_id, product_id, quantity, created_at, updated_at
		FROM stocks WHERE branch_id = $1 ORDER BY product_id`
	rows, err := r.q.Query(context.Background(), query, branchID)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ID, &s.BranchID, &s.ProductID, &s.Quantity, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
