package repository

import (
	"time"

	"github.com/tu-usuario/retail-pro/internal/domain/entity"
)

// ExpenseFilter filtros opcionales para listar gastos.
type ExpenseFilter struct {
	BranchID  string
	StartDate *time.Time
	EndDate   *time.Time
}

// ExpenseRepository define el puerto de persistencia para gastos operativos.
type ExpenseRepository interface {
	Create(expense *entity.Expense) error
	GetByID(id string) (*entity.Expense, error)
	// List devuelve gastos ordenados por fecha descendente.
	List(filter ExpenseFilter) ([]*entity.Expense, error)
	Delete(id string) error
}
