package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cucumber/godog"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-backoffice/internal/application/alerts"
	"github.com/jhoicas/tienda-backoffice/internal/application/inventory"
	"github.com/jhoicas/tienda-backoffice/internal/domain"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/internal/infrastructure/memory"
	"github.com/jhoicas/tienda-backoffice/internal/infrastructure/messaging"
)

// ledgerWorld estado de un escenario: repos en memoria y evaluador de alertas en proceso.
type ledgerWorld struct {
	products *memory.ProductRepo
	logs     *memory.InventoryLogRepo
	alerts   *memory.InventoryAlertRepo
	ledger   *inventory.StockLedgerUseCase
	ids      map[string]string
	res      *inventory.AdjustStockResult
	err      error
}

func (w *ledgerWorld) reset() {
	w.products = memory.NewProductRepo()
	w.logs = memory.NewInventoryLogRepo()
	w.alerts = memory.NewInventoryAlertRepo(w.products)
	evaluator := alerts.NewEvaluator(&memory.TxRunner{Products: w.products, Alerts: w.alerts}, zerolog.Nop())
	w.ledger = inventory.NewStockLedgerUseCase(w.products, w.logs,
		inventory.WithPublisher(messaging.NewInProcessPublisher(evaluator)),
	)
	w.ids = map[string]string{}
	w.res, w.err = nil, nil
}

func (w *ledgerWorld) id(name string) string {
	if id, ok := w.ids[name]; ok {
		return id
	}
	return "no-existe-" + name
}

func (w *ledgerWorld) unProducto(name string, stock, threshold int) error {
	p := &entity.Product{
		Name:              name,
		Price:             decimal.NewFromInt(10000),
		Stock:             stock,
		LowStockThreshold: threshold,
	}
	if err := w.products.Create(context.Background(), p); err != nil {
		return err
	}
	w.ids[name] = p.ID
	return nil
}

func (w *ledgerWorld) logRechaza() error {
	w.logs.FailAppend = errors.New("log no disponible")
	return nil
}

func (w *ledgerWorld) catalogoRechaza() error {
	w.products.FailUpdateStock = errors.New("rechazado por el backend")
	return nil
}

func (w *ledgerWorld) ajusto(name, mode string, value, observed int) error {
	w.res, w.err = w.ledger.AdjustStock(context.Background(), inventory.AdjustStockInput{
		ProductID:         w.id(name),
		CurrentKnownStock: observed,
		Mode:              mode,
		Value:             value,
	})
	return nil
}

func (w *ledgerWorld) stockEs(name string, want int) error {
	p, err := w.products.GetByID(context.Background(), w.id(name))
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("producto %q no encontrado", name)
	}
	if p.Stock != want {
		return fmt.Errorf("stock esperado %d, obtenido %d", want, p.Stock)
	}
	return nil
}

func (w *ledgerWorld) entriesFor(name string) []entity.InventoryLogEntry {
	var out []entity.InventoryLogEntry
	for _, e := range w.logs.Entries() {
		if e.ProductID == w.id(name) {
			out = append(out, e)
		}
	}
	return out
}

func (w *ledgerWorld) logTiene(name string, n int) error {
	if got := len(w.entriesFor(name)); got != n {
		return fmt.Errorf("entradas esperadas %d, obtenidas %d", n, got)
	}
	return nil
}

func (w *ledgerWorld) lastEntry() (*entity.InventoryLogEntry, error) {
	if w.err != nil {
		return nil, fmt.Errorf("el ajuste falló: %w", w.err)
	}
	entries := w.logs.Entries()
	if len(entries) == 0 {
		return nil, errors.New("log vacío")
	}
	return &entries[len(entries)-1], nil
}

func (w *ledgerWorld) ultimaEntrada(changeType string, change int) error {
	e, err := w.lastEntry()
	if err != nil {
		return err
	}
	if e.ChangeType != changeType || e.QuantityChange != change {
		return fmt.Errorf("esperado %s/%d, obtenido %s/%d", changeType, change, e.ChangeType, e.QuantityChange)
	}
	if e.QuantityChange != e.NewStock-e.PreviousStock {
		return fmt.Errorf("cambio %d no cuadra con %d→%d", e.QuantityChange, e.PreviousStock, e.NewStock)
	}
	return nil
}

func (w *ledgerWorld) ultimaEntradaAnterior(prev int) error {
	e, err := w.lastEntry()
	if err != nil {
		return err
	}
	if e.PreviousStock != prev {
		return fmt.Errorf("stock anterior esperado %d, obtenido %d", prev, e.PreviousStock)
	}
	return nil
}

func (w *ledgerWorld) advertenciaAuditoria() error {
	if w.err != nil {
		return fmt.Errorf("el ajuste no debía fallar: %w", w.err)
	}
	if !errors.Is(w.res.AuditErr, domain.ErrLogWriteFailure) {
		return fmt.Errorf("advertencia esperada, obtenida %v", w.res.AuditErr)
	}
	return nil
}

func (w *ledgerWorld) fallaCon(target error) func() error {
	return func() error {
		if !errors.Is(w.err, target) {
			return fmt.Errorf("error esperado %v, obtenido %v", target, w.err)
		}
		return nil
	}
}

func (w *ledgerWorld) alerta(alertType, name, state string) error {
	a, err := w.alerts.GetByProductAndType(context.Background(), w.id(name), alertType)
	if err != nil {
		return err
	}
	switch state {
	case "no existe":
		if a != nil {
			return fmt.Errorf("alerta %s inesperada", alertType)
		}
		return nil
	case "está activa":
		if a == nil || !a.IsActive {
			return fmt.Errorf("alerta %s debía estar activa", alertType)
		}
	case "está inactiva":
		if a != nil && a.IsActive {
			return fmt.Errorf("alerta %s debía estar inactiva", alertType)
		}
	}
	return nil
}

func InitializeLedgerScenario(ctx *godog.ScenarioContext) {
	w := &ledgerWorld{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		w.reset()
		return ctx, nil
	})

	ctx.Step(`^un producto "([^"]*)" con stock (\d+) y umbral (\d+)$`, w.unProducto)
	ctx.Step(`^el log de inventario rechaza escrituras$`, w.logRechaza)
	ctx.Step(`^el catálogo rechaza escrituras de stock$`, w.catalogoRechaza)

	ctx.Step(`^ajusto "([^"]*)" en modo "([^"]*)" con valor (-?\d+) observando (\d+)$`, w.ajusto)

	ctx.Step(`^el stock de "([^"]*)" es (\d+)$`, w.stockEs)
	ctx.Step(`^el log de "([^"]*)" tiene (\d+) entradas$`, w.logTiene)
	ctx.Step(`^la última entrada es "([^"]*)" con cambio (-?\d+)$`, w.ultimaEntrada)
	ctx.Step(`^la última entrada tiene stock anterior (\d+)$`, w.ultimaEntradaAnterior)
	ctx.Step(`^el ajuste termina con advertencia de auditoría$`, w.advertenciaAuditoria)
	ctx.Step(`^el ajuste falla por escritura$`, w.fallaCon(domain.ErrWriteFailure))
	ctx.Step(`^el ajuste falla por entrada inválida$`, w.fallaCon(domain.ErrInvalidInput))
	ctx.Step(`^el ajuste falla por producto inexistente$`, w.fallaCon(domain.ErrNotFound))
	ctx.Step(`^la alerta "([^"]*)" de "([^"]*)" (está activa|está inactiva|no existe)$`, w.alerta)
}

func TestLedgerFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeLedgerScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
			Strict:   true,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
