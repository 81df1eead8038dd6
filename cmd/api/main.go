package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/retail-pro/internal/application/auth"
	"github.com/tu-usuario/retail-pro/internal/application/debt"
	"github.com/tu-usuario/retail-pro/internal/application/expense"
	"github.com/tu-usuario/retail-pro/internal/application/income"
	"github.com/tu-usuario/retail-pro/internal/application/pos"
	"github.com/tu-usuario/retail-pro/internal/application/production"
	"github.com/tu-usuario/retail-pro/internal/application/returns"
	"github.com/tu-usuario/retail-pro/internal/application/transfer"
	"github.com/tu-usuario/retail-pro/internal/application/usecase"
	infrapdf "github.com/tu-usuario/retail-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/retail-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/retail-pro/internal/interfaces/http"
	"github.com/tu-usuario/retail-pro/pkg/config"
	"github.com/tu-usuario/retail-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	returnRepo := postgres.NewReturnRepository(pool)
	debtRepo := postgres.NewDebtRepository(pool)
	debtPaymentRepo := postgres.NewDebtPaymentRepository(pool)
	incomeRepo := postgres.NewIncomeRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	productionRepo := postgres.NewProductionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewUseCase(userRepo, branchRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	branchUC := usecase.NewBranchUseCase(branchRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo)
	clientUC := usecase.NewClientUseCase(clientRepo)
	stockUC := usecase.NewStockUseCase(stockRepo)
	transferUC := transfer.NewUseCase(txRunner, branchRepo, transferRepo)
	debtUC := debt.NewUseCase(txRunner, debtRepo, debtPaymentRepo)
	saleUC := pos.NewUseCase(txRunner, saleRepo)
	returnUC := returns.NewUseCase(txRunner, returnRepo, saleRepo)
	incomeUC := income.NewUseCase(txRunner, incomeRepo, cfg.Branch.WorkshopBranchID)
	expenseUC := expense.NewUseCase(expenseRepo, branchRepo)
	productionUC := production.NewUseCase(txRunner, productionRepo, stockRepo, cfg.Branch.WorkshopBranchID)

	// PDF: recibo de venta imprimible
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator()
	salePDFUC := pos.NewPDFUseCase(saleRepo, branchRepo, productRepo, clientRepo, receiptGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Retail Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		BranchUC:   branchUC,
		ProductUC:  productUC,
		ClientUC:   clientUC,
		StockUC:    stockUC,
		TransferUC: transferUC,
		SaleUC:     saleUC,
		SalePDFUC:  salePDFUC,
		ReturnUC:   returnUC,
		DebtUC:     debtUC,
		IncomeUC:   incomeUC,

		ExpenseUC:    expenseUC,
		ProductionUC: productionUC,

		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
