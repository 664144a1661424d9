// Package catalog importa y exporta el catálogo en texto delimitado por comas.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-backoffice/internal/application/dto"
	"github.com/jhoicas/tienda-backoffice/internal/application/inventory"
	"github.com/jhoicas/tienda-backoffice/internal/domain"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	dominv "github.com/jhoicas/tienda-backoffice/internal/domain/inventory"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
	"github.com/jhoicas/tienda-backoffice/pkg/csvbatch"
)

// Columnas del archivo de catálogo.
const (
	ColID                = "id"
	ColName              = "name"
	ColSKU               = "sku"
	ColBrand             = "brand"
	ColPrice             = "price"
	ColDiscountPrice     = "discount_price"
	ColStock             = "stock"
	ColLowStockThreshold = "low_stock_threshold"
	ColIsFeatured        = "is_featured"
)

// Headers orden fijo de columnas de la exportación.
var Headers = []string{
	ColID, ColName, ColSKU, ColBrand, ColPrice, ColDiscountPrice, ColStock, ColLowStockThreshold, ColIsFeatured,
}

// ImportNote nota del log de inventario para ajustes hechos por importación.
const ImportNote = "Importación masiva de catálogo"

const exportPageSize = 500

// ErrTooLarge el archivo supera el límite de importación.
var ErrTooLarge = errors.New("archivo de importación demasiado grande")

// StockAdjuster el libro de stock.
type StockAdjuster interface {
	AdjustStock(ctx context.Context, in inventory.AdjustStockInput) (*inventory.AdjustStockResult, error)
}

// UseCase importación/exportación masiva del catálogo.
type UseCase struct {
	repo     repository.ProductRepository
	ledger   StockAdjuster
	maxBytes int
	logger   zerolog.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso. maxBytes <= 0 desactiva el límite.
func NewUseCase(repo repository.ProductRepository, ledger StockAdjuster, maxBytes int, logger zerolog.Logger) *UseCase {
	return &UseCase{repo: repo, ledger: ledger, maxBytes: maxBytes, logger: logger, now: time.Now}
}

// Export el catálogo completo, una fila por producto, en el orden de Headers.
func (uc *UseCase) Export(ctx context.Context) (string, error) {
	var rows []csvbatch.Row
	for offset := 0; ; offset += exportPageSize {
		page, err := uc.repo.List(ctx, repository.ProductFilter{Limit: exportPageSize, Offset: offset})
		if err != nil {
			return "", err
		}
		for _, p := range page {
			rows = append(rows, csvbatch.Row{
				ColID:                p.ID,
				ColName:              p.Name,
				ColSKU:               p.SKU,
				ColBrand:             p.Brand,
				ColPrice:             p.Price,
				ColDiscountPrice:     p.DiscountPrice,
				ColStock:             p.Stock,
				ColLowStockThreshold: p.LowStockThreshold,
				ColIsFeatured:        p.IsFeatured,
			})
		}
		if len(page) < exportPageSize {
			break
		}
	}
	return csvbatch.Encode(Headers, rows), nil
}

// Import aplica el archivo fila por fila. Los errores de una fila no detienen el lote.
//
// Filas con id actualizan el producto; sin id lo crean. Solo se tocan las columnas presentes
// en la cabecera; una columna presente y vacía limpia los campos opcionales. Un stock distinto
// del almacenado se aplica con el libro de stock (ajuste absoluto), así queda en el log.
func (uc *UseCase) Import(ctx context.Context, raw []byte, charset string) (*dto.CatalogImportResult, error) {
	if uc.maxBytes > 0 && len(raw) > uc.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes (máximo %d)", ErrTooLarge, len(raw), uc.maxBytes)
	}
	text, err := csvbatch.ToUTF8(raw, charset)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	records := csvbatch.Decode(text)
	res := &dto.CatalogImportResult{Rows: len(records), Errors: []dto.CatalogRowError{}}
	for i, rec := range records {
		if err := uc.importRow(ctx, rec, res); err != nil {
			res.Failed++
			res.Errors = append(res.Errors, dto.CatalogRowError{Row: i + 1, ID: rec[ColID], Message: err.Error()})
		}
	}
	uc.logger.Info().
		Int("rows", res.Rows).
		Int("created", res.Created).
		Int("updated", res.Updated).
		Int("stock_adjusted", res.StockAdjusted).
		Int("failed", res.Failed).
		Msg("importación de catálogo")
	return res, nil
}

func (uc *UseCase) importRow(ctx context.Context, rec csvbatch.Record, res *dto.CatalogImportResult) error {
	now := uc.now()
	id := rec[ColID]

	var product *entity.Product
	creating := id == ""
	if creating {
		product = &entity.Product{ID: uuid.New().String(), CreatedAt: now}
	} else {
		p, err := uc.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("producto %s no existe", id)
		}
		product = p
	}

	if err := applyRecord(product, rec); err != nil {
		return err
	}
	stock, hasStock, err := parseStock(rec)
	if err != nil {
		return err
	}
	if err := product.Validate(); err != nil {
		return err
	}
	product.UpdatedAt = now

	known := product.Stock
	if creating {
		known = 0
		product.Stock = 0
		if err := uc.repo.Create(ctx, product); err != nil {
			return err
		}
		res.Created++
	} else {
		if err := uc.repo.Update(ctx, product); err != nil {
			return err
		}
		res.Updated++
	}

	if hasStock && stock != known {
		if _, err := uc.ledger.AdjustStock(ctx, inventory.AdjustStockInput{
			ProductID:         product.ID,
			CurrentKnownStock: known,
			Mode:              dominv.ModeAbsolute,
			Value:             stock,
			Note:              ImportNote,
		}); err != nil {
			return fmt.Errorf("stock: %w", err)
		}
		res.StockAdjusted++
	}
	return nil
}

// applyRecord copia al producto las columnas presentes en el registro.
func applyRecord(p *entity.Product, rec csvbatch.Record) error {
	if v, ok := rec[ColName]; ok {
		p.Name = v
	}
	if v, ok := rec[ColSKU]; ok {
		p.SKU = v
	}
	if v, ok := rec[ColBrand]; ok {
		p.Brand = v
	}
	if v, ok := rec[ColPrice]; ok {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return fmt.Errorf("%w: precio %q", domain.ErrInvalidInput, v)
		}
		p.Price = d
	}
	if v, ok := rec[ColDiscountPrice]; ok {
		if v == "" {
			p.DiscountPrice = nil
		} else {
			d, err := decimal.NewFromString(v)
			if err != nil {
				return fmt.Errorf("%w: precio de oferta %q", domain.ErrInvalidInput, v)
			}
			p.DiscountPrice = &d
		}
	}
	if v, ok := rec[ColLowStockThreshold]; ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: umbral %q", domain.ErrInvalidInput, v)
		}
		p.LowStockThreshold = n
	}
	if v, ok := rec[ColIsFeatured]; ok && v != "" {
		b, err := parseBool(v)
		if err != nil {
			return err
		}
		p.IsFeatured = b
	}
	return nil
}

func parseStock(rec csvbatch.Record) (int, bool, error) {
	v, ok := rec[ColStock]
	if !ok || v == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false, fmt.Errorf("%w: stock %q", domain.ErrInvalidInput, v)
	}
	return n, true, nil
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "sí", "si", "s", "yes", "y", "x":
		return true, nil
	case "no", "n":
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%w: destacado %q", domain.ErrInvalidInput, v)
	}
	return b, nil
}
