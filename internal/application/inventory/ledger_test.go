package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-pro/internal/application/inventory"
	"github.com/tu-usuario/retail-pro/internal/domain/entity"
)

// fakeStockRepo guarda stock en memoria indexado por sucursal+producto,
// imitando la creación diferida del repositorio real: Get de una fila
// inexistente devuelve la entidad en cero.
type fakeStockRepo struct {
	rows map[string]*entity.Stock
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{rows: make(map[string]*entity.Stock)}
}

func (f *fakeStockRepo) key(branchID, productID string) string { return branchID + "|" + productID }

func (f *fakeStockRepo) Get(branchID, productID string) (*entity.Stock, error) {
	if s, ok := f.rows[f.key(branchID, productID)]; ok {
		copy := *s
		return &copy, nil
	}
	return &entity.Stock{BranchID: branchID, ProductID: productID, Quantity: decimal.Zero}, nil
}

func (f *fakeStockRepo) GetForUpdate(branchID, productID string) (*entity.Stock, error) {
	return f.Get(branchID, productID)
}

func (f *fakeStockRepo) Upsert(stock *entity.Stock) error {
	copy := *stock
	f.rows[f.key(stock.BranchID, stock.ProductID)] = &copy
	return nil
}

func (f *fakeStockRepo) ListByBranch(branchID string) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for _, s := range f.rows {
		if s.BranchID == branchID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStockRepo) set(branchID, productID string, qty string) {
	q, _ := decimal.NewFromString(qty)
	f.rows[f.key(branchID, productID)] = &entity.Stock{
		BranchID: branchID, ProductID: productID, Quantity: q,
	}
}

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestAdjust_SumaDelta(t *testing.T) {
	repo := newFakeStockRepo()
	repo.set("b1", "p1", "10")

	stock, clamped, err := inventory.Adjust(repo, "b1", "p1", d("5"), false)

	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(d("15")))
	assert.True(t, clamped.IsZero())
}

func TestAdjust_CreaFilaEnCeroSiNoExiste(t *testing.T) {
	repo := newFakeStockRepo()

	stock, clamped, err := inventory.Adjust(repo, "b1", "p-nuevo", d("3"), false)

	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(d("3")))
	assert.True(t, clamped.IsZero())

	persisted, _ := repo.Get("b1", "p-nuevo")
	assert.True(t, persisted.Quantity.Equal(d("3")), "la fila debe quedar materializada")
}

func TestAdjust_RecortaACeroYDevuelveElFaltante(t *testing.T) {
	repo := newFakeStockRepo()
	repo.set("b1", "p1", "4")

	stock, clamped, err := inventory.Adjust(repo, "b1", "p1", d("-10"), false)

	require.NoError(t, err)
	assert.True(t, stock.Quantity.IsZero(), "sin allowNegative la cantidad se fija en cero")
	assert.True(t, clamped.Equal(d("6")), "el faltante descartado se expone al caller")
}

func TestAdjust_AllowNegativePersisteElNegativo(t *testing.T) {
	repo := newFakeStockRepo()
	repo.set("b1", "p1", "4")

	stock, clamped, err := inventory.Adjust(repo, "b1", "p1", d("-10"), true)

	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(d("-6")))
	assert.True(t, clamped.IsZero())
}

func TestAdjust_CantidadesFraccionarias(t *testing.T) {
	repo := newFakeStockRepo()
	repo.set("b1", "p-kg", "2.500")

	stock, _, err := inventory.Adjust(repo, "b1", "p-kg", d("-0.750"), false)

	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(d("1.75")))
}
