package inventory

import (
	"context"

	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
)

// StockEventPublisher difunde los cambios de stock al evaluador de alertas.
// Una falla de publicación nunca revierte el ajuste.
type StockEventPublisher interface {
	PublishStockChanged(ctx context.Context, evt entity.StockChanged) error
}

type noopPublisher struct{}

func (noopPublisher) PublishStockChanged(context.Context, entity.StockChanged) error { return nil }
