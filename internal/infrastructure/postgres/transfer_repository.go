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

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de TransferRepository sobre PostgreSQL (usable con pool o tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador de transferencias. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, from_branch_id, to_branch_id, status, comment, reject_reason, created_by, created_at, processed_by, processed_at, updated_at`

func scanTransfer(row pgx.Row) (*entity.Transfer, error) {
	var t entity.Transfer
	var comment, rejectReason, processedBy *string
	err := row.Scan(
		&t.ID, &t.FromBranchID, &t.ToBranchID, &t.Status, &comment, &rejectReason,
		&t.CreatedBy, &t.CreatedAt, &processedBy, &t.ProcessedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if comment != nil {
		t.Comment = *comment
	}
	if rejectReason != nil {
		t.RejectReason = *rejectReason
	}
	if processedBy != nil {
		t.ProcessedBy = *processedBy
	}
	return &t, nil
}

// Create persiste cabecera y líneas. Llamar dentro de una tx.
func (r *TransferRepo) Create(transfer *entity.Transfer) error {
	query := `
		INSERT INTO transfers (id, from_branch_id, to_branch_id, status, comment, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.FromBranchID, transfer.ToBranchID, transfer.Status,
		nullIfEmpty(transfer.Comment), transfer.CreatedBy, transfer.CreatedAt, transfer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	itemQuery := `
		INSERT INTO transfer_items (id, transfer_id, product_id, quantity, purchase_price, selling_price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, item := range transfer.Items {
		_, err := r.q.Exec(context.Background(), itemQuery,
			item.ID, item.TransferID, item.ProductID, item.Quantity, item.PurchasePrice, item.SellingPrice,
		)
		if err != nil {
			return fmt.Errorf("insert transfer item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la transferencia con sus líneas.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE id = $1`
	t, err := scanTransfer(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transferencia %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	if t.Items, err = r.loadItems(t.ID); err != nil {
		return nil, err
	}
	return t, nil
}

// GetByIDForUpdate obtiene la transferencia bloqueando la cabecera (SELECT FOR
// UPDATE): dos aceptaciones concurrentes se serializan y la segunda ve el
// estado terminal.
func (r *TransferRepo) GetByIDForUpdate(id string) (*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE id = $1 FOR UPDATE`
	t, err := scanTransfer(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transferencia %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get transfer for update: %w", err)
	}
	if t.Items, err = r.loadItems(t.ID); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateStatus persiste la transición: status, motivo de rechazo y quién/cuándo procesó.
func (r *TransferRepo) UpdateStatus(transfer *entity.Transfer) error {
	query := `
		UPDATE transfers SET status = $2, reject_reason = $3, processed_by = $4, processed_at = $5, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.Status, nullIfEmpty(transfer.RejectReason),
		nullIfEmpty(transfer.ProcessedBy), transfer.ProcessedAt,
	)
	if err != nil {
		return fmt.Errorf("update transfer status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: transferencia %s", domain.ErrNotFound, transfer.ID)
	}
	return nil
}

// List lista transferencias con sus líneas, más recientes primero.
func (r *TransferRepo) List(filter repository.TransferFilter) ([]*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE 1=1`
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.FromBranchID != "" {
		query += ` AND from_branch_id = ` + arg(filter.FromBranchID)
	}
	if filter.ToBranchID != "" {
		query += ` AND to_branch_id = ` + arg(filter.ToBranchID)
	}
	if filter.Status != "" {
		query += ` AND status = ` + arg(filter.Status)
	}
	if filter.BranchScope != "" {
		p := arg(filter.BranchScope)
		query += ` AND (from_branch_id = ` + p + ` OR to_branch_id = ` + p + `)`
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
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, t := range list {
		if t.Items, err = r.loadItems(t.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *TransferRepo) loadItems(transferID string) ([]*entity.TransferItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, transfer_id, product_id, quantity, purchase_price, selling_price
		 FROM transfer_items WHERE transfer_id = $1 ORDER BY id`, transferID)
	if err != nil {
		return nil, fmt.Errorf("list transfer items: %w", err)
	}
	defer rows.Close()
	var items []*entity.TransferItem
	for rows.Next() {
		var it entity.TransferItem
		if err := rows.Scan(&it.ID, &it.TransferID, &it.ProductID, &it.Quantity, &it.PurchasePrice, &it.SellingPrice); err != nil {
			return nil, fmt.Errorf("scan transfer item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}
