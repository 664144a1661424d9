package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-backoffice/internal/application/dto"
	"github.com/jhoicas/tienda-backoffice/internal/application/inventory"
	"github.com/jhoicas/tienda-backoffice/internal/application/usecase"
	"github.com/jhoicas/tienda-backoffice/internal/domain"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/internal/infrastructure/memory"
)

func newProductUC() (*usecase.ProductUseCase, *memory.ProductRepo, *memory.InventoryLogRepo) {
	products := memory.NewProductRepo()
	logs := memory.NewInventoryLogRepo()
	ledger := inventory.NewStockLedgerUseCase(products, logs)
	return usecase.NewProductUseCase(products, ledger), products, logs
}

func ptr[T any](v T) *T { return &v }

func TestCreate_StockInicialPasaPorElLibro(t *testing.T) {
	uc, _, logs := newProductUC()

	out, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name: " Silla ", Price: decimal.NewFromInt(100), InitialStock: 8, LowStockThreshold: 2, SKU: "SIL-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Silla", out.Name)
	assert.Equal(t, 8, out.Stock)
	assert.False(t, out.LowStock)

	entries := logs.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, entity.ChangeTypeIncrease, entries[0].ChangeType)
	assert.Equal(t, 8, entries[0].QuantityChange)
	assert.Equal(t, "Stock inicial", entries[0].Note)
}

func TestCreate_SinStockNoDejaLog(t *testing.T) {
	uc, _, logs := newProductUC()

	out, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: "Mesa", Price: decimal.NewFromInt(10)})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Stock)
	assert.True(t, out.LowStock, "stock 0 con umbral 0 está en el umbral")
	assert.Empty(t, logs.Entries())
}

func TestCreate_Validaciones(t *testing.T) {
	uc, _, _ := newProductUC()
	ctx := context.Background()

	cases := map[string]dto.CreateProductRequest{
		"sin nombre":        {Name: "  ", Price: decimal.NewFromInt(1)},
		"precio negativo":   {Name: "x", Price: decimal.NewFromInt(-1)},
		"oferta > precio":   {Name: "x", Price: decimal.NewFromInt(5), DiscountPrice: ptr(decimal.NewFromInt(6))},
		"umbral negativo":   {Name: "x", Price: decimal.NewFromInt(5), LowStockThreshold: -1},
		"stock inicial < 0": {Name: "x", Price: decimal.NewFromInt(5), InitialStock: -3},
	}
	for name, in := range cases {
		_, err := uc.Create(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}
}

func TestCreate_SKUDuplicado(t *testing.T) {
	uc, _, _ := newProductUC()
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{Name: "a", SKU: "X"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "b", SKU: "X"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUpdate_NoTocaStock(t *testing.T) {
	uc, products, _ := newProductUC()
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Lámpara", Price: decimal.NewFromInt(50), InitialStock: 4,
		DiscountPrice: ptr(decimal.NewFromInt(40))})
	require.NoError(t, err)

	out, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{
		Name: ptr("Lámpara LED"), LowStockThreshold: ptr(6), IsFeatured: ptr(true), ClearDiscountPrice: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Lámpara LED", out.Name)
	assert.Nil(t, out.DiscountPrice)
	assert.True(t, out.IsFeatured)
	assert.True(t, out.LowStock)

	stored, _ := products.GetByID(ctx, created.ID)
	assert.Equal(t, 4, stored.Stock)
}

func TestGetUpdateDelete_Inexistente(t *testing.T) {
	uc, _, _ := newProductUC()
	ctx := context.Background()

	_, err := uc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Update(ctx, "nope", dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, "nope"), domain.ErrNotFound)
}

func TestList_BuscaYPagina(t *testing.T) {
	uc, _, _ := newProductUC()
	ctx := context.Background()
	for _, n := range []string{"Taza roja", "Taza azul", "Plato"} {
		_, err := uc.Create(ctx, dto.CreateProductRequest{Name: n})
		require.NoError(t, err)
	}

	out, err := uc.List(ctx, "taza", dto.PageRequest{Limit: 1})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Taza azul", out.Items[0].Name)
	assert.Equal(t, 1, out.Page.Limit)
}
