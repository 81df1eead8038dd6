package repository

import "github.com/tu-usuario/retail-pro/internal/domain/entity"

// ProductionRepository define el puerto de persistencia para encargos de
// producción, sus materiales, pagos y gastos del taller.
type ProductionRepository interface {
	CreateOrder(order *entity.ProductionOrder) error
	// GetOrderByID devuelve el encargo con materiales y pagos.
	GetOrderByID(id string) (*entity.ProductionOrder, error)
	// ListOrders devuelve los encargos con detalle, más recientes primero.
	ListOrders() ([]*entity.ProductionOrder, error)
	UpdateOrder(order *entity.ProductionOrder) error

	CreateMaterial(material *entity.ProductionMaterial) error
	CreatePayment(payment *entity.ProductionPayment) error

	CreateExpense(expense *entity.ProductionExpense) error
	// ListExpenses devuelve gastos del taller ordenados por fecha descendente.
	ListExpenses(filter ExpenseFilter) ([]*entity.ProductionExpense, error)
}
