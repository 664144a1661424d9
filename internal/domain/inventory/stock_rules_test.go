package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/internal/domain/inventory"
)

func TestEffectiveStock_RelativoRecortaEnCero(t *testing.T) {
	cases := []struct {
		known, delta, want int
	}{
		{3, -1, 2},
		{3, 4, 7},
		{0, -5, 0},
		{2, -2, 0},
		{2, -3, 0},
		{10, 0, 10},
	}
	for _, c := range cases {
		got := inventory.EffectiveStock(inventory.ModeRelative, c.known, c.delta)
		assert.Equal(t, c.want, got, "known=%d delta=%d", c.known, c.delta)
	}
}

func TestEffectiveStock_AbsolutoIgnoraStockConocido(t *testing.T) {
	assert.Equal(t, 12, inventory.EffectiveStock(inventory.ModeAbsolute, 3, 12))
	assert.Equal(t, 0, inventory.EffectiveStock(inventory.ModeAbsolute, 3, -4))
	assert.Equal(t, 3, inventory.EffectiveStock(inventory.ModeAbsolute, 3, 3))
}

func TestClassifyChange(t *testing.T) {
	assert.Equal(t, entity.ChangeTypeIncrease, inventory.ClassifyChange(1, 2))
	assert.Equal(t, entity.ChangeTypeDecrease, inventory.ClassifyChange(2, 1))
	assert.Equal(t, entity.ChangeTypeAdjustment, inventory.ClassifyChange(0, 0))
}

// Un decremento sobre stock cero no es "decrease": no hubo disminución real.
func TestNewLogEntry_RecorteTotalEsAdjustment(t *testing.T) {
	next := inventory.EffectiveStock(inventory.ModeRelative, 0, -5)
	e := inventory.NewLogEntry("p-1", 0, next, "")

	assert.Equal(t, 0, e.NewStock)
	assert.Equal(t, 0, e.QuantityChange)
	assert.Equal(t, entity.ChangeTypeAdjustment, e.ChangeType)
}

// El delta registrado es el efectivo, no el solicitado.
func TestNewLogEntry_DeltaEfectivo(t *testing.T) {
	next := inventory.EffectiveStock(inventory.ModeRelative, 2, -10)
	e := inventory.NewLogEntry("p-1", 2, next, "merma")

	assert.Equal(t, -2, e.QuantityChange)
	assert.Equal(t, e.PreviousStock+e.QuantityChange, e.NewStock)
	assert.Equal(t, entity.ChangeTypeDecrease, e.ChangeType)
	assert.Equal(t, "merma", e.Note)
}

// Propiedad: para todo s, d >= 0 y delta ±d, new = max(0, s+delta) y change = new - s.
func TestNewLogEntry_Propiedad(t *testing.T) {
	for s := 0; s <= 12; s++ {
		for d := -15; d <= 15; d++ {
			next := inventory.EffectiveStock(inventory.ModeRelative, s, d)
			want := s + d
			if want < 0 {
				want = 0
			}
			e := inventory.NewLogEntry("p", s, next, "")
			assert.Equal(t, want, e.NewStock)
			assert.Equal(t, want-s, e.QuantityChange)
			assert.GreaterOrEqual(t, e.NewStock, 0)
		}
	}
}

func TestValidMode(t *testing.T) {
	assert.True(t, inventory.ValidMode("relative"))
	assert.True(t, inventory.ValidMode("absolute"))
	assert.False(t, inventory.ValidMode("delta"))
	assert.False(t, inventory.ValidMode(""))
}
