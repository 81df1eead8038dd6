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

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository sobre PostgreSQL (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador de clientes. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, name, phone, total_debt, created_at, updated_at`

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	var phone *string
	if err := row.Scan(&c.ID, &c.Name, &phone, &c.TotalDebt, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if phone != nil {
		c.Phone = *phone
	}
	return &c, nil
}

// Create persiste un cliente.
func (r *ClientRepo) Create(client *entity.Client) error {
	query := `
		INSERT INTO clients (id, name, phone, total_debt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, nullIfEmpty(client.Phone), client.TotalDebt, client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(id string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	c, err := scanClient(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// GetByIDForUpdate obtiene un cliente bloqueando su fila (SELECT FOR UPDATE).
// Serializa pagos y compensaciones concurrentes sobre el mismo cliente.
func (r *ClientRepo) GetByIDForUpdate(id string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1 FOR UPDATE`
	c, err := scanClient(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get client for update: %w", err)
	}
	return c, nil
}

// List lista todos los clientes.
func (r *ClientRepo) List() ([]*entity.Client, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+clientColumns+` FROM clients ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza los datos de contacto. El saldo solo se toca vía UpdateTotalDebt.
func (r *ClientRepo) Update(client *entity.Client) error {
	query := `
		UPDATE clients SET name = $2, phone = $3, updated_at = $4
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, nullIfEmpty(client.Phone), client.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, client.ID)
	}
	return nil
}

// UpdateTotalDebt fija el acumulado de deuda. Llamar siempre con la fila
// bloqueada (GetByIDForUpdate) y dentro de la misma tx que muta las deudas.
func (r *ClientRepo) UpdateTotalDebt(id string, totalDebt decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE clients SET total_debt = $2, updated_at = now() WHERE id = $1`,
		id, totalDebt,
	)
	if err != nil {
		return fmt.Errorf("update client total_debt: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, id)
	}
	return nil
}
