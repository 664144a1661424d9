package alerts_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-backoffice/internal/application/alerts"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/internal/infrastructure/memory"
)

type fixture struct {
	products *memory.ProductRepo
	alerts   *memory.InventoryAlertRepo
	ev       *alerts.Evaluator
}

func newFixture(products ...*entity.Product) *fixture {
	pr := memory.NewProductRepo(products...)
	ar := memory.NewInventoryAlertRepo(pr)
	return &fixture{
		products: pr,
		alerts:   ar,
		ev:       alerts.NewEvaluator(&memory.TxRunner{Products: pr, Alerts: ar}, zerolog.Nop()),
	}
}

func (f *fixture) setStock(t *testing.T, id string, stock int) {
	t.Helper()
	p, err := f.products.GetByID(context.Background(), id)
	require.NoError(t, err)
	_, err = f.products.UpdateStock(context.Background(), id, stock, p.UpdatedAt)
	require.NoError(t, err)
}

func (f *fixture) active(t *testing.T, id, alertType string) bool {
	t.Helper()
	a, err := f.alerts.GetByProductAndType(context.Background(), id, alertType)
	require.NoError(t, err)
	return a != nil && a.IsActive
}

func TestEvaluate_SobreUmbralNoCreaAlertas(t *testing.T) {
	f := newFixture(&entity.Product{ID: "p", Stock: 20, LowStockThreshold: 5})

	changes, err := f.ev.Evaluate(context.Background(), "p")
	require.NoError(t, err)
	assert.Empty(t, changes)

	a, _ := f.alerts.GetByProductAndType(context.Background(), "p", entity.AlertTypeLowStock)
	assert.Nil(t, a)
}

func TestEvaluate_CicloCompleto(t *testing.T) {
	ctx := context.Background()
	f := newFixture(&entity.Product{ID: "p", Stock: 8, LowStockThreshold: 5})

	// 8 → 3: stock bajo
	f.setStock(t, "p", 3)
	changes, err := f.ev.Evaluate(ctx, "p")
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.True(t, f.active(t, "p", entity.AlertTypeLowStock))
	assert.False(t, f.active(t, "p", entity.AlertTypeOutOfStock))

	// 3 → 0: agotado reemplaza a stock bajo
	f.setStock(t, "p", 0)
	changes, err = f.ev.Evaluate(ctx, "p")
	require.NoError(t, err)
	assert.Len(t, changes, 2)
	assert.True(t, f.active(t, "p", entity.AlertTypeOutOfStock))
	assert.False(t, f.active(t, "p", entity.AlertTypeLowStock))

	// sin cambio de estado: nada que escribir
	changes, err = f.ev.Evaluate(ctx, "p")
	require.NoError(t, err)
	assert.Empty(t, changes)

	// reposición
	f.setStock(t, "p", 30)
	changes, err = f.ev.Evaluate(ctx, "p")
	require.NoError(t, err)
	assert.Len(t, changes, 1)
	assert.False(t, f.active(t, "p", entity.AlertTypeOutOfStock))

	active, err := f.alerts.ListActive(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestEvaluate_UmbralEsInclusivo(t *testing.T) {
	f := newFixture(&entity.Product{ID: "p", Stock: 5, LowStockThreshold: 5})

	_, err := f.ev.Evaluate(context.Background(), "p")
	require.NoError(t, err)
	assert.True(t, f.active(t, "p", entity.AlertTypeLowStock))
}

func TestHandleStockChanged_UsaStockAlmacenado(t *testing.T) {
	f := newFixture(&entity.Product{ID: "p", Stock: 0, LowStockThreshold: 5})

	// El evento dice 9 pero el producto ya quedó en 0.
	err := f.ev.HandleStockChanged(context.Background(), entity.StockChanged{ProductID: "p", PreviousStock: 10, NewStock: 9})
	require.NoError(t, err)
	assert.True(t, f.active(t, "p", entity.AlertTypeOutOfStock))
}

func TestHandleStockChanged_ProductoBorrado(t *testing.T) {
	f := newFixture()
	assert.NoError(t, f.ev.HandleStockChanged(context.Background(), entity.StockChanged{ProductID: "ghost"}))
}

func TestResync(t *testing.T) {
	f := newFixture(
		&entity.Product{ID: "a", Name: "a", Stock: 0, LowStockThreshold: 1},
		&entity.Product{ID: "b", Name: "b", Stock: 2, LowStockThreshold: 3},
		&entity.Product{ID: "c", Name: "c", Stock: 9, LowStockThreshold: 3},
	)

	n, err := f.ev.Resync(context.Background(), f.products)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	active, err := f.alerts.ListActive(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, entity.AlertTypeOutOfStock, active[0].Alert.AlertType)
	assert.Equal(t, "a", active[0].ProductName)
}
