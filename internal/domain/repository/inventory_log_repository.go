package repository

import (
	"context"
	"time"

	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
)

// LogSummary agregado de movimientos por tipo de cambio.
type LogSummary struct {
	ChangeType  string
	Movements   int
	NetQuantity int
}

// InventoryLogRepository puerto del log de inventario (append-only: sin update ni delete).
type InventoryLogRepository interface {
	Append(ctx context.Context, entry *entity.InventoryLogEntry) error
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.InventoryLogEntry, error)
	ListRecent(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.InventoryLogEntry, error)
	SummarizeByType(ctx context.Context, from, to time.Time) ([]LogSummary, error)
}
