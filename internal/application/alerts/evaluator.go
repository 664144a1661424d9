// Package alerts mantiene las alertas de inventario a partir de los cambios de stock.
package alerts

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	dominv "github.com/jhoicas/tienda-backoffice/internal/domain/inventory"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción con repos de producto y alertas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		alertRepo repository.InventoryAlertRepository,
	) error) error
}

// Transition cambio aplicado a una alerta.
type Transition struct {
	ProductID string
	AlertType string
	Active    bool
	Threshold int
}

// Evaluator recalcula las alertas de un producto usando su stock almacenado,
// no el del evento: los eventos pueden llegar tarde o desordenados.
type Evaluator struct {
	tx     TxRunner
	logger zerolog.Logger
	now    func() time.Time
}

// NewEvaluator construye el evaluador.
func NewEvaluator(tx TxRunner, logger zerolog.Logger) *Evaluator {
	return &Evaluator{tx: tx, logger: logger, now: time.Now}
}

// HandleStockChanged reevalúa el producto del evento.
func (e *Evaluator) HandleStockChanged(ctx context.Context, evt entity.StockChanged) error {
	changes, err := e.Evaluate(ctx, evt.ProductID)
	if err != nil {
		return err
	}
	for _, c := range changes {
		e.logger.Info().
			Str("product_id", c.ProductID).
			Str("alert_type", c.AlertType).
			Bool("active", c.Active).
			Int("threshold", c.Threshold).
			Msg("alerta de inventario actualizada")
	}
	return nil
}

// Evaluate lleva las alertas del producto al estado deseado y devuelve los cambios.
// Un producto inexistente no es error: pudo borrarse después del evento.
func (e *Evaluator) Evaluate(ctx context.Context, productID string) ([]Transition, error) {
	var changes []Transition
	err := e.tx.Run(ctx, func(productRepo repository.ProductRepository, alertRepo repository.InventoryAlertRepository) error {
		changes = changes[:0]
		product, err := productRepo.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			e.logger.Debug().Str("product_id", productID).Msg("producto inexistente, se omite evaluación")
			return nil
		}
		now := e.now()
		for _, want := range dominv.DesiredAlerts(product.Stock, product.LowStockThreshold) {
			cur, err := alertRepo.GetByProductAndType(ctx, productID, want.AlertType)
			if err != nil {
				return err
			}
			if cur == nil && !want.Active {
				continue
			}
			if cur != nil && cur.IsActive == want.Active && cur.Threshold == want.Threshold {
				continue
			}
			alert := &entity.InventoryAlert{
				ProductID: productID,
				AlertType: want.AlertType,
				Threshold: want.Threshold,
				IsActive:  want.Active,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if cur != nil {
				alert.ID = cur.ID
				alert.CreatedAt = cur.CreatedAt
			}
			if err := alertRepo.Upsert(ctx, alert); err != nil {
				return err
			}
			changes = append(changes, Transition{
				ProductID: productID, AlertType: want.AlertType, Active: want.Active, Threshold: want.Threshold,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return changes, nil
}

// Resync reevalúa todo el catálogo por páginas. Devuelve la cantidad de alertas modificadas.
func (e *Evaluator) Resync(ctx context.Context, products repository.ProductRepository) (int, error) {
	const pageSize = 200
	total := 0
	for offset := 0; ; offset += pageSize {
		list, err := products.List(ctx, repository.ProductFilter{Limit: pageSize, Offset: offset})
		if err != nil {
			return total, err
		}
		for _, p := range list {
			changes, err := e.Evaluate(ctx, p.ID)
			if err != nil {
				return total, err
			}
			total += len(changes)
		}
		if len(list) < pageSize {
			return total, nil
		}
	}
}
