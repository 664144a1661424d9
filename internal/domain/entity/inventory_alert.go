package entity

import "time"

// Tipos de alerta de inventario.
const (
	AlertTypeOutOfStock = "out_of_stock"
	AlertTypeLowStock   = "low_stock"
)

// InventoryAlert estado de una alerta por producto y tipo.
// Lo mantiene el evaluador de alertas; el libro de stock nunca lo escribe.
type InventoryAlert struct {
	ID        string
	ProductID string
	AlertType string
	Threshold int
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
