package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// InitialStock se registra en el log de inventario como primer movimiento.
type CreateProductRequest struct {
	Name              string           `json:"name" validate:"required,min=1,max=200"`
	Price             decimal.Decimal  `json:"price"`
	DiscountPrice     *decimal.Decimal `json:"discount_price,omitempty"`
	InitialStock      int              `json:"initial_stock" validate:"min=0"`
	LowStockThreshold int              `json:"low_stock_threshold" validate:"min=0"`
	Brand             string           `json:"brand"`
	SKU               string           `json:"sku" validate:"max=100"`
	IsFeatured        bool             `json:"is_featured"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Stock: usar /stock).
type UpdateProductRequest struct {
	Name               *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Price              *decimal.Decimal `json:"price"`
	DiscountPrice      *decimal.Decimal `json:"discount_price"`
	ClearDiscountPrice bool             `json:"clear_discount_price"`
	LowStockThreshold  *int             `json:"low_stock_threshold"`
	Brand              *string          `json:"brand"`
	SKU                *string          `json:"sku"`
	IsFeatured         *bool            `json:"is_featured"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Price             decimal.Decimal  `json:"price"`
	DiscountPrice     *decimal.Decimal `json:"discount_price,omitempty"`
	Stock             int              `json:"stock"`
	LowStockThreshold int              `json:"low_stock_threshold"`
	LowStock          bool             `json:"low_stock"`
	Brand             string           `json:"brand"`
	SKU               string           `json:"sku"`
	IsFeatured        bool             `json:"is_featured"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
