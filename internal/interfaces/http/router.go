package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/retail-pro/internal/application/auth"
	"github.com/tu-usuario/retail-pro/internal/application/debt"
	"github.com/tu-usuario/retail-pro/internal/application/expense"
	"github.com/tu-usuario/retail-pro/internal/application/income"
	"github.com/tu-usuario/retail-pro/internal/application/pos"
	"github.com/tu-usuario/retail-pro/internal/application/production"
	"github.com/tu-usuario/retail-pro/internal/application/returns"
	"github.com/tu-usuario/retail-pro/internal/application/transfer"
	"github.com/tu-usuario/retail-pro/internal/application/usecase"
	"github.com/tu-usuario/retail-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	BranchUC   *usecase.BranchUseCase
	ProductUC  *usecase.ProductUseCase
	ClientUC   *usecase.ClientUseCase
	StockUC    *usecase.StockUseCase
	TransferUC *transfer.UseCase
	SaleUC     *pos.UseCase
	SalePDFUC  *pos.PDFUseCase
	ReturnUC   *returns.UseCase
	DebtUC     *debt.UseCase
	IncomeUC   *income.UseCase

	ExpenseUC    *expense.UseCase
	ProductionUC *production.UseCase

	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Branches (mutaciones solo admin)
	branches := protected.Group("/branches")
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches.Post("/", adminOnly, branchHandler.Create)
	branches.Get("/", branchHandler.List)
	branches.Get("/:id", branchHandler.GetByID)
	branches.Put("/:id/active", adminOnly, branchHandler.SetActive)

	// Products y categorías
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/search", productHandler.Search)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", adminOnly, productHandler.Update)
	categories := protected.Group("/categories")
	categories.Post("/", adminOnly, productHandler.CreateCategory)
	categories.Get("/", productHandler.ListCategories)

	// Clients
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)

	// Stock (solo consulta; las mutaciones pasan por los flujos)
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stock.Get("/", stockHandler.ListByBranch)
	stock.Get("/:branch_id/:product_id", stockHandler.Get)

	// Transfers
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Post("/:id/accept", transferHandler.Accept)
	transfers.Post("/:id/reject", transferHandler.Reject)

	// Sales
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.SalePDFUC)
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id/receipt.pdf", saleHandler.DownloadReceipt)
	sales.Get("/:id", saleHandler.GetByID)

	// Returns
	returnsGroup := protected.Group("/returns")
	returnHandler := NewReturnHandler(deps.ReturnUC)
	returnsGroup.Post("/", returnHandler.Create)
	returnsGroup.Get("/", returnHandler.List)
	returnsGroup.Get("/:id", returnHandler.GetByID)

	// Debts
	debts := protected.Group("/debts")
	debtHandler := NewDebtHandler(deps.DebtUC)
	debts.Post("/pay", debtHandler.Pay)
	debts.Get("/client/:client_id", debtHandler.ListByClient)
	debts.Get("/client/:client_id/payments", debtHandler.ListPayments)

	// Incomes
	incomes := protected.Group("/incomes")
	incomeHandler := NewIncomeHandler(deps.IncomeUC)
	incomes.Post("/", incomeHandler.Create)
	incomes.Get("/", incomeHandler.List)

	// Expenses (baja solo admin)
	expenses := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)
	expenses.Delete("/:id", adminOnly, expenseHandler.Delete)

	// Production (taller)
	prod := protected.Group("/production")
	productionHandler := NewProductionHandler(deps.ProductionUC)
	prod.Post("/orders", productionHandler.CreateOrder)
	prod.Get("/orders", productionHandler.ListOrders)
	prod.Get("/orders/:id", productionHandler.GetOrder)
	prod.Put("/orders/:id", productionHandler.UpdateOrder)
	prod.Post("/orders/:id/materials", productionHandler.AddMaterial)
	prod.Post("/orders/:id/payments", productionHandler.AddPayment)
	prod.Post("/expenses", productionHandler.CreateExpense)
	prod.Get("/expenses", productionHandler.ListExpenses)
	prod.Get("/stock", productionHandler.WorkshopStock)
}
