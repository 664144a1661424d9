package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-backoffice/internal/domain"
)

// Product representa un producto del catálogo de la tienda.
// Stock nunca es negativo; solo el libro de stock lo modifica.
type Product struct {
	ID                string
	Name              string
	Price             decimal.Decimal
	DiscountPrice     *decimal.Decimal // nil = sin precio de oferta
	Stock             int
	LowStockThreshold int
	Brand             string
	SKU               string
	IsFeatured        bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock informa si el stock está en o por debajo del umbral (incluye cero).
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.LowStockThreshold
}

// Validate revisa los campos de catálogo editables.
func (p *Product) Validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	case p.Price.IsNegative():
		return fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	case p.DiscountPrice != nil && p.DiscountPrice.IsNegative():
		return fmt.Errorf("%w: el precio de oferta no puede ser negativo", domain.ErrInvalidInput)
	case p.DiscountPrice != nil && p.DiscountPrice.GreaterThan(p.Price):
		return fmt.Errorf("%w: el precio de oferta supera el precio", domain.ErrInvalidInput)
	case p.LowStockThreshold < 0:
		return fmt.Errorf("%w: el umbral de stock bajo no puede ser negativo", domain.ErrInvalidInput)
	case p.Stock < 0:
		return fmt.Errorf("%w: el stock no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}
