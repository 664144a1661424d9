package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/tienda-backoffice/internal/application/inventory"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
)

var _ inventory.StockEventPublisher = (*StockPublisher)(nil)

// StockPublisher publica StockChanged en Kafka con clave = product_id.
type StockPublisher struct {
	w Writer
}

// NewStockPublisher construye el publicador sobre un Writer.
func NewStockPublisher(w Writer) *StockPublisher {
	return &StockPublisher{w: w}
}

// PublishStockChanged serializa el evento y lo escribe con el contexto de traza en cabeceras.
func (p *StockPublisher) PublishStockChanged(ctx context.Context, evt entity.StockChanged) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("serializar stock_changed: %w", err)
	}
	msg := kafka.Message{
		Key:     []byte(evt.ProductID),
		Value:   payload,
		Headers: injectTraceContext(ctx),
		Time:    evt.OccurredAt,
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publicar stock_changed: %w", err)
	}
	return nil
}

// Close cierra el writer subyacente.
func (p *StockPublisher) Close() error {
	return p.w.Close()
}

// StockChangedHandler destino de los eventos (el evaluador de alertas).
type StockChangedHandler interface {
	HandleStockChanged(ctx context.Context, evt entity.StockChanged) error
}

// InProcessPublisher entrega el evento directamente al handler, sin broker.
// Se usa cuando KAFKA_BROKERS está vacío.
type InProcessPublisher struct {
	handler StockChangedHandler
}

// NewInProcessPublisher construye el publicador en proceso.
func NewInProcessPublisher(h StockChangedHandler) *InProcessPublisher {
	return &InProcessPublisher{handler: h}
}

func (p *InProcessPublisher) PublishStockChanged(ctx context.Context, evt entity.StockChanged) error {
	return p.handler.HandleStockChanged(ctx, evt)
}
