package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/tienda-backoffice/internal/domain"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	dominv "github.com/jhoicas/tienda-backoffice/internal/domain/inventory"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
)

const tracerName = "github.com/jhoicas/tienda-backoffice/internal/application/inventory"

// AdjustStockInput entrada del ajuste de stock.
// CurrentKnownStock es el stock que el llamador observó; no se relee antes de escribir.
type AdjustStockInput struct {
	ProductID         string
	CurrentKnownStock int
	Mode              string // dominv.ModeRelative | dominv.ModeAbsolute
	Value             int
	Note              string
}

// AdjustStockResult resultado de un ajuste exitoso.
// AuditErr no es nil cuando el stock quedó escrito pero el log de inventario falló.
type AdjustStockResult struct {
	ProductID string
	Name      string
	NewStock  int
	Entry     *entity.InventoryLogEntry
	AuditErr  error
}

// StockLedgerUseCase único punto de escritura del stock de un producto.
//
// Orden de efectos: escribir stock → registrar en el log → publicar StockChanged.
// El log y la publicación son de mejor esfuerzo: sus fallas no revierten ni fallan el ajuste.
// Dos ajustes concurrentes sobre el mismo stock observado se pisan (última escritura gana).
type StockLedgerUseCase struct {
	productRepo repository.ProductRepository
	logRepo     repository.InventoryLogRepository
	publisher   StockEventPublisher
	logger      zerolog.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

// Option configura el caso de uso.
type Option func(*StockLedgerUseCase)

// WithPublisher publica un StockChanged tras cada escritura de stock.
func WithPublisher(p StockEventPublisher) Option {
	return func(uc *StockLedgerUseCase) {
		if p != nil {
			uc.publisher = p
		}
	}
}

// WithLogger reemplaza el logger (por defecto, nop).
func WithLogger(l zerolog.Logger) Option {
	return func(uc *StockLedgerUseCase) { uc.logger = l }
}

// WithClock fija el reloj; útil en tests.
func WithClock(now func() time.Time) Option {
	return func(uc *StockLedgerUseCase) { uc.now = now }
}

// NewStockLedgerUseCase construye el caso de uso.
func NewStockLedgerUseCase(
	productRepo repository.ProductRepository,
	logRepo repository.InventoryLogRepository,
	opts ...Option,
) *StockLedgerUseCase {
	uc := &StockLedgerUseCase{
		productRepo: productRepo,
		logRepo:     logRepo,
		publisher:   noopPublisher{},
		logger:      zerolog.Nop(),
		tracer:      otel.Tracer(tracerName),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// AdjustStock aplica un ajuste relativo o absoluto con recorte en cero y deja constancia en el log.
//
// Errores: domain.ErrInvalidInput (modo o producto vacío), domain.ErrNotFound (el producto no
// existe; nada se escribe), domain.ErrReadFailure si no se pudo leer el producto (nada se
// escribe), domain.ErrWriteFailure envolviendo el error del backend (no se escribe log).
func (uc *StockLedgerUseCase) AdjustStock(ctx context.Context, in AdjustStockInput) (*AdjustStockResult, error) {
	ctx, span := uc.tracer.Start(ctx, "inventory.adjust_stock", trace.WithAttributes(
		attribute.String("product.id", in.ProductID),
		attribute.String("stock.mode", in.Mode),
		attribute.Int("stock.known", in.CurrentKnownStock),
		attribute.Int("stock.value", in.Value),
	))
	defer span.End()

	res, err := uc.adjust(ctx, in)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("stock.new", res.NewStock),
		attribute.String("stock.change_type", res.Entry.ChangeType),
		attribute.Bool("audit.failed", res.AuditErr != nil),
	)
	return res, nil
}

func (uc *StockLedgerUseCase) adjust(ctx context.Context, in AdjustStockInput) (*AdjustStockResult, error) {
	if in.ProductID == "" || !dominv.ValidMode(in.Mode) {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		uc.logger.Error().Err(err).Str("product_id", in.ProductID).Msg("no se pudo leer el producto")
		return nil, fmt.Errorf("%w: %w", domain.ErrReadFailure, err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	next := dominv.EffectiveStock(in.Mode, in.CurrentKnownStock, in.Value)
	now := uc.now()

	// 1. Stock del producto
	updated, err := uc.productRepo.UpdateStock(ctx, in.ProductID, next, now)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		uc.logger.Error().Err(err).
			Str("product_id", in.ProductID).
			Int("target_stock", next).
			Msg("el backend rechazó la escritura del stock")
		return nil, fmt.Errorf("%w: %w", domain.ErrWriteFailure, err)
	}
	name := product.Name
	if updated != nil {
		name = updated.Name
	}

	// 2. Log de auditoría (mejor esfuerzo)
	entry := dominv.NewLogEntry(in.ProductID, in.CurrentKnownStock, next, in.Note)
	entry.ID = uuid.New().String()
	entry.CreatedAt = now
	res := &AdjustStockResult{ProductID: in.ProductID, Name: name, NewStock: next, Entry: entry}

	if err := uc.logRepo.Append(ctx, entry); err != nil {
		res.AuditErr = fmt.Errorf("%w: %w", domain.ErrLogWriteFailure, err)
		uc.logger.Warn().Err(err).
			Str("product_id", in.ProductID).
			Int("previous_stock", entry.PreviousStock).
			Int("new_stock", entry.NewStock).
			Str("change_type", entry.ChangeType).
			Msg("stock actualizado sin registro en el log de inventario")
	}

	// 3. Señal para el evaluador de alertas (mejor esfuerzo)
	evt := entity.StockChanged{
		ProductID:     in.ProductID,
		PreviousStock: entry.PreviousStock,
		NewStock:      next,
		ChangeType:    entry.ChangeType,
		OccurredAt:    now,
	}
	if err := uc.publisher.PublishStockChanged(ctx, evt); err != nil {
		uc.logger.Warn().Err(err).Str("product_id", in.ProductID).Msg("no se pudo publicar stock_changed")
	}

	uc.logger.Info().
		Str("product_id", in.ProductID).
		Str("change_type", entry.ChangeType).
		Int("quantity_change", entry.QuantityChange).
		Int("new_stock", next).
		Msg("stock ajustado")
	return res, nil
}
