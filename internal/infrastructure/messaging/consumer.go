package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
)

const consumerTracer = "github.com/jhoicas/tienda-backoffice/internal/infrastructure/messaging"

// StockConsumer bucle de lectura del tópico de stock.
type StockConsumer struct {
	r        Reader
	handler  StockChangedHandler
	logger   zerolog.Logger
	attempts int
	backoff  time.Duration
}

// NewStockConsumer construye el consumidor. Cada mensaje se intenta hasta 3 veces.
func NewStockConsumer(r Reader, h StockChangedHandler, logger zerolog.Logger) *StockConsumer {
	return &StockConsumer{r: r, handler: h, logger: logger, attempts: 3, backoff: 500 * time.Millisecond}
}

// Run lee mensajes hasta que ctx se cancele. Los mensajes ilegibles o que agotan los
// reintentos se registran y se confirman igual para no bloquear la partición.
func (c *StockConsumer) Run(ctx context.Context) error {
	for {
		msg, err := c.r.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
				return nil
			}
			return err
		}
		c.process(ctx, msg)
		if err := c.r.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Error().Err(err).Int64("offset", msg.Offset).Msg("no se pudo confirmar el mensaje")
		}
	}
}

func (c *StockConsumer) process(ctx context.Context, msg kafka.Message) {
	msgCtx := extractTraceContext(ctx, msg.Headers)
	msgCtx, span := otel.Tracer(consumerTracer).Start(msgCtx, "inventory.alerts.consume",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.destination.name", msg.Topic),
			attribute.Int("messaging.kafka.partition", msg.Partition),
			attribute.Int64("messaging.kafka.offset", msg.Offset),
		))
	defer span.End()

	var evt entity.StockChanged
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "payload inválido")
		c.logger.Error().Err(err).Bytes("raw_value", msg.Value).Msg("stock_changed inválido, se descarta")
		return
	}
	span.SetAttributes(attribute.String("product.id", evt.ProductID))

	var err error
	for i := 0; i < c.attempts; i++ {
		if err = c.handler.HandleStockChanged(msgCtx, evt); err == nil {
			return
		}
		c.logger.Warn().Err(err).Str("product_id", evt.ProductID).Int("attempt", i+1).Msg("evaluación de alertas fallida")
		if i+1 < c.attempts {
			select {
			case <-ctx.Done():
				return
			case <-time.After(c.backoff):
			}
		}
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	c.logger.Error().Err(err).Str("product_id", evt.ProductID).Msg("se agotaron los reintentos de evaluación")
}
