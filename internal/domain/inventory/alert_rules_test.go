package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/internal/domain/inventory"
)

func alertActive(t *testing.T, states []inventory.AlertState, alertType string) bool {
	t.Helper()
	for _, s := range states {
		if s.AlertType == alertType {
			return s.Active
		}
	}
	require.FailNow(t, "tipo de alerta ausente", alertType)
	return false
}

func TestDesiredAlerts(t *testing.T) {
	cases := []struct {
		name             string
		stock, threshold int
		out, low         bool
	}{
		{"sin stock", 0, 5, true, false},
		{"bajo umbral", 2, 5, false, true},
		{"en el umbral", 5, 5, false, true},
		{"sobre el umbral", 6, 5, false, false},
		{"umbral cero con stock", 1, 0, false, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			states := inventory.DesiredAlerts(c.stock, c.threshold)
			assert.Equal(t, c.out, alertActive(t, states, entity.AlertTypeOutOfStock))
			assert.Equal(t, c.low, alertActive(t, states, entity.AlertTypeLowStock))
		})
	}
}
