package inventory

import "github.com/jhoicas/tienda-backoffice/internal/domain/entity"

// AlertState estado deseado de una alerta para un producto.
type AlertState struct {
	AlertType string
	Threshold int
	Active    bool
}

// DesiredAlerts calcula el estado de las dos alertas de un producto a partir de su stock.
//   - out_of_stock activa si stock == 0
//   - low_stock activa si 0 < stock <= umbral
func DesiredAlerts(stock, threshold int) []AlertState {
	return []AlertState{
		{AlertType: entity.AlertTypeOutOfStock, Threshold: 0, Active: stock == 0},
		{AlertType: entity.AlertTypeLowStock, Threshold: threshold, Active: stock > 0 && stock <= threshold},
	}
}
