package expense_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-pro/internal/application/dto"
	"github.com/tu-usuario/retail-pro/internal/application/expense"
	"github.com/tu-usuario/retail-pro/internal/domain"
	"github.com/tu-usuario/retail-pro/internal/domain/entity"
	"github.com/tu-usuario/retail-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

type fakeExpenseRepo struct {
	expenses map[string]*entity.Expense
}

func (f *fakeExpenseRepo) Create(e *entity.Expense) error { f.expenses[e.ID] = e; return nil }
func (f *fakeExpenseRepo) GetByID(id string) (*entity.Expense, error) {
	if e, ok := f.expenses[id]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("%w: gasto %s", domain.ErrNotFound, id)
}
func (f *fakeExpenseRepo) List(filter repository.ExpenseFilter) ([]*entity.Expense, error) {
	var out []*entity.Expense
	for _, e := range f.expenses {
		if filter.BranchID != "" && e.BranchID != filter.BranchID {
			continue
		}
		if filter.StartDate != nil && e.CreatedAt.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && e.CreatedAt.After(*filter.EndDate) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
func (f *fakeExpenseRepo) Delete(id string) error {
	if _, ok := f.expenses[id]; !ok {
		return fmt.Errorf("%w: gasto %s", domain.ErrNotFound, id)
	}
	delete(f.expenses, id)
	return nil
}

type fakeBranchRepo struct {
	branches map[string]*entity.Branch
}

func (f *fakeBranchRepo) Create(b *entity.Branch) error { f.branches[b.ID] = b; return nil }
func (f *fakeBranchRepo) GetByID(id string) (*entity.Branch, error) {
	if b, ok := f.branches[id]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("%w: sucursal %s", domain.ErrNotFound, id)
}
func (f *fakeBranchRepo) List() ([]*entity.Branch, error) { return nil, nil }
func (f *fakeBranchRepo) Update(*entity.Branch) error     { return nil }

type fixture struct {
	uc       *expense.UseCase
	expenses *fakeExpenseRepo
}

func newFixture() *fixture {
	expenses := &fakeExpenseRepo{expenses: make(map[string]*entity.Expense)}
	branches := &fakeBranchRepo{branches: map[string]*entity.Branch{
		"b1": {ID: "b1", Name: "Central", Active: true},
		"b2": {ID: "b2", Name: "Norte", Active: true},
	}}
	return &fixture{
		uc:       expense.NewUseCase(expenses, branches),
		expenses: expenses,
	}
}

var (
	admin    = dto.Actor{UserID: "u-admin", Role: entity.RoleAdmin}
	empleado = dto.Actor{UserID: "u-emp", BranchID: "b1", Role: entity.RoleEmployee}
)

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateExpense_EmpleadoSinSucursalExplicitaUsaLaSuya(t *testing.T) {
	fx := newFixture()

	exp, err := fx.uc.Create(context.Background(), empleado, dto.CreateExpenseRequest{
		Title:  "Flete",
		Amount: d("45.50"),
	})

	require.NoError(t, err)
	assert.Equal(t, "b1", exp.BranchID)
	assert.Equal(t, "u-emp", exp.CreatedBy)
	assert.True(t, exp.Amount.Equal(d("45.50")))
	assert.Len(t, fx.expenses.expenses, 1)
}

func TestCreateExpense_EmpleadoNoCargaEnOtraSucursal(t *testing.T) {
	fx := newFixture()

	_, err := fx.uc.Create(context.Background(), empleado, dto.CreateExpenseRequest{
		Title:    "Flete",
		Amount:   d("10"),
		BranchID: "b2",
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, fx.expenses.expenses)
}

func TestCreateExpense_AdminSinSucursalQuedaGeneral(t *testing.T) {
	fx := newFixture()

	exp, err := fx.uc.Create(context.Background(), admin, dto.CreateExpenseRequest{
		Title:  "Servicio contable",
		Amount: d("300"),
	})

	require.NoError(t, err)
	assert.Empty(t, exp.BranchID)
}

func TestCreateExpense_SucursalInexistenteFalla(t *testing.T) {
	fx := newFixture()

	_, err := fx.uc.Create(context.Background(), admin, dto.CreateExpenseRequest{
		Title:    "Flete",
		Amount:   d("10"),
		BranchID: "b-fantasma",
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateExpense_MontoCeroFalla(t *testing.T) {
	fx := newFixture()

	_, err := fx.uc.Create(context.Background(), admin, dto.CreateExpenseRequest{
		Title:  "Flete",
		Amount: decimal.Zero,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateExpense_SinTituloFalla(t *testing.T) {
	fx := newFixture()

	_, err := fx.uc.Create(context.Background(), admin, dto.CreateExpenseRequest{
		Amount: d("10"),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// List / Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestListExpenses_SinFechasDevuelveLosDelDia(t *testing.T) {
	fx := newFixture()
	fx.expenses.expenses["e-hoy"] = &entity.Expense{
		ID: "e-hoy", Title: "Hoy", Amount: d("10"), BranchID: "b1", CreatedAt: time.Now(),
	}
	fx.expenses.expenses["e-ayer"] = &entity.Expense{
		ID: "e-ayer", Title: "Ayer", Amount: d("20"), BranchID: "b1",
		CreatedAt: time.Now().AddDate(0, 0, -1),
	}

	list, err := fx.uc.List(context.Background(), admin, repository.ExpenseFilter{})

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "e-hoy", list[0].ID)
}

func TestListExpenses_EmpleadoSoloVeSuSucursal(t *testing.T) {
	fx := newFixture()
	fx.expenses.expenses["e1"] = &entity.Expense{
		ID: "e1", Title: "Propio", Amount: d("10"), BranchID: "b1", CreatedAt: time.Now(),
	}
	fx.expenses.expenses["e2"] = &entity.Expense{
		ID: "e2", Title: "Ajeno", Amount: d("20"), BranchID: "b2", CreatedAt: time.Now(),
	}

	list, err := fx.uc.List(context.Background(), empleado, repository.ExpenseFilter{BranchID: "b2"})

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "e1", list[0].ID, "el filtro pedido se pisa con la sucursal del empleado")
}

func TestDeleteExpense_SoloAdmin(t *testing.T) {
	fx := newFixture()
	fx.expenses.expenses["e1"] = &entity.Expense{ID: "e1", Title: "Flete", Amount: d("10")}

	err := fx.uc.Delete(context.Background(), empleado, "e1")

	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Len(t, fx.expenses.expenses, 1, "el gasto sigue")

	require.NoError(t, fx.uc.Delete(context.Background(), admin, "e1"))
	assert.Empty(t, fx.expenses.expenses)
}

func TestDeleteExpense_InexistenteFalla(t *testing.T) {
	fx := newFixture()

	err := fx.uc.Delete(context.Background(), admin, "e-fantasma")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
