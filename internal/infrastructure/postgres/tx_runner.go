package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/retail-pro/internal/application/debt"
	"github.com/tu-usuario/retail-pro/internal/application/income"
	"github.com/tu-usuario/retail-pro/internal/application/pos"
	"github.com/tu-usuario/retail-pro/internal/application/production"
	"github.com/tu-usuario/retail-pro/internal/application/returns"
	"github.com/tu-usuario/retail-pro/internal/application/transfer"
	"github.com/tu-usuario/retail-pro/internal/domain/repository"
)

var (
	_ transfer.TxRunner = (*TxRunner)(nil)
	_ debt.TxRunner     = (*TxRunner)(nil)
	_ pos.TxRunner      = (*TxRunner)(nil)
	_ returns.TxRunner  = (*TxRunner)(nil)
	_ income.TxRunner   = (*TxRunner)(nil)

	_ production.TxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Cada Run*
// arma los repositorios que necesita ese caso de uso atados a la tx, ejecuta
// fn y hace Commit si devuelve nil o Rollback si no.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunTransfer abre la transacción de una transferencia entre sucursales.
func (r *TxRunner) RunTransfer(ctx context.Context, fn func(
	transferRepo repository.TransferRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewTransferRepository(tx), NewStockRepository(tx), NewProductRepository(tx))
	})
}

// RunDebt abre la transacción de un pago de deuda.
func (r *TxRunner) RunDebt(ctx context.Context, fn func(
	clientRepo repository.ClientRepository,
	debtRepo repository.DebtRepository,
	paymentRepo repository.DebtPaymentRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewClientRepository(tx), NewDebtRepository(tx), NewDebtPaymentRepository(tx))
	})
}

// RunSale abre la transacción de una venta.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	debtRepo repository.DebtRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewSaleRepository(tx), NewStockRepository(tx), NewProductRepository(tx), NewClientRepository(tx), NewDebtRepository(tx))
	})
}

// RunReturn abre la transacción de una devolución.
func (r *TxRunner) RunReturn(ctx context.Context, fn func(
	returnRepo repository.ReturnRepository,
	saleRepo repository.SaleRepository,
	stockRepo repository.StockRepository,
	clientRepo repository.ClientRepository,
	debtRepo repository.DebtRepository,
	paymentRepo repository.DebtPaymentRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewReturnRepository(tx), NewSaleRepository(tx), NewStockRepository(tx), NewClientRepository(tx), NewDebtRepository(tx), NewDebtPaymentRepository(tx))
	})
}

// RunIncome abre la transacción de una recepción de mercadería.
func (r *TxRunner) RunIncome(ctx context.Context, fn func(
	incomeRepo repository.IncomeRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewIncomeRepository(tx), NewStockRepository(tx), NewProductRepository(tx))
	})
}

// RunProduction abre la transacción de un consumo de material del taller.
func (r *TxRunner) RunProduction(ctx context.Context, fn func(
	productionRepo repository.ProductionRepository,
	stockRepo repository.StockRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewProductionRepository(tx), NewStockRepository(tx))
	})
}
