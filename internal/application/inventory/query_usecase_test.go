package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-backoffice/internal/application/dto"
	"github.com/jhoicas/tienda-backoffice/internal/application/inventory"
	"github.com/jhoicas/tienda-backoffice/internal/domain"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/internal/infrastructure/memory"
	"github.com/jhoicas/tienda-backoffice/pkg/csvbatch"
)

func seedCatalog() *memory.ProductRepo {
	return memory.NewProductRepo(
		&entity.Product{ID: "a", Name: "Aceite", SKU: "ACE-1", Stock: 4, LowStockThreshold: 5},
		&entity.Product{ID: "b", Name: "Bolsa", SKU: "BOL-1", Stock: 0, LowStockThreshold: 2},
		&entity.Product{ID: "c", Name: "Café", SKU: "CAF-1", Stock: 1, LowStockThreshold: 10},
		&entity.Product{ID: "d", Name: "Dulce", SKU: "DUL-1", Stock: 50, LowStockThreshold: 5},
	)
}

func TestLowStock_AgotadosPrimeroLuegoDeficit(t *testing.T) {
	uc := inventory.NewQueryUseCase(seedCatalog(), memory.NewInventoryLogRepo(), nil)

	items, err := uc.LowStock(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, items, 3, "Dulce está sobre su umbral")

	assert.Equal(t, "b", items[0].ProductID)
	assert.True(t, items[0].OutOfStock)
	assert.Equal(t, "c", items[1].ProductID)
	assert.Equal(t, 9, items[1].Deficit)
	assert.Equal(t, "a", items[2].ProductID)
	for i, it := range items {
		assert.Equal(t, i+1, it.Priority)
	}
}

func TestProductLogs_ProductoInexistente(t *testing.T) {
	uc := inventory.NewQueryUseCase(seedCatalog(), memory.NewInventoryLogRepo(), nil)
	_, err := uc.ProductLogs(context.Background(), "zz", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSummaryYExport(t *testing.T) {
	ctx := context.Background()
	products := seedCatalog()
	logs := memory.NewInventoryLogRepo()
	ledger := inventory.NewStockLedgerUseCase(products, logs,
		inventory.WithClock(func() time.Time { return fixedNow }))

	_, err := ledger.AdjustStock(ctx, relative(0, 0))
	require.ErrorIs(t, err, domain.ErrNotFound, "testProductID no está en este catálogo")

	for _, in := range []inventory.AdjustStockInput{
		{ProductID: "a", CurrentKnownStock: 4, Mode: "relative", Value: 6, Note: "compra"},
		{ProductID: "a", CurrentKnownStock: 10, Mode: "relative", Value: -3},
		{ProductID: "b", CurrentKnownStock: 0, Mode: "relative", Value: -1},
	} {
		_, err := ledger.AdjustStock(ctx, in)
		require.NoError(t, err)
	}

	uc := inventory.NewQueryUseCase(products, logs, nil)
	sum, err := uc.Summary(ctx, fixedNow.Add(-time.Hour), fixedNow.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, sum.Items, 3)
	assert.Equal(t, dto.LogSummaryItem{ChangeType: "increase", Movements: 1, NetQuantity: 6}, sum.Items[0])
	assert.Equal(t, dto.LogSummaryItem{ChangeType: "decrease", Movements: 1, NetQuantity: -3}, sum.Items[1])
	assert.Equal(t, dto.LogSummaryItem{ChangeType: "adjustment", Movements: 1, NetQuantity: 0}, sum.Items[2])
	assert.Equal(t, 3, sum.TotalMovements)
	assert.Equal(t, 3, sum.NetQuantity)

	text, err := uc.ExportLogs(ctx, nil, nil)
	require.NoError(t, err)
	rows := csvbatch.Decode(text)
	require.Len(t, rows, 3)
	assert.Equal(t, "b", rows[0]["product_id"], "más reciente primero")
	assert.Equal(t, "adjustment", rows[0]["change_type"])
	assert.Equal(t, "compra", rows[2]["note"])
	assert.Equal(t, "6", rows[2]["quantity_change"])
}

func TestSummary_RangoInvertido(t *testing.T) {
	uc := inventory.NewQueryUseCase(seedCatalog(), memory.NewInventoryLogRepo(), nil)
	_, err := uc.Summary(context.Background(), fixedNow, fixedNow.Add(-time.Minute))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
