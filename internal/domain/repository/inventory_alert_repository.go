package repository

import (
	"context"

	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
)

// ActiveAlertItem alerta activa enriquecida con datos del producto para el panel.
type ActiveAlertItem struct {
	Alert        entity.InventoryAlert
	ProductName  string
	SKU          string
	CurrentStock int
}

// InventoryAlertRepository puerto de las alertas de inventario. Solo lo usa el evaluador de alertas.
type InventoryAlertRepository interface {
	GetByProductAndType(ctx context.Context, productID, alertType string) (*entity.InventoryAlert, error)
	Upsert(ctx context.Context, alert *entity.InventoryAlert) error
	ListActive(ctx context.Context, limit, offset int) ([]ActiveAlertItem, error)
}
