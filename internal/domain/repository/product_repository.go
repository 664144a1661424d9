package repository

import (
	"context"
	"time"

	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
)

// ProductFilter criterios de listado del catálogo.
type ProductFilter struct {
	Search string // coincide por nombre, SKU o marca
	Limit  int
	Offset int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// GetByID devuelve (nil, nil) si el producto no existe.
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// Update modifica los campos de catálogo. No toca Stock (solo vía UpdateStock).
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStock escribe el stock y devuelve la fila resultante; domain.ErrNotFound si no existe.
	UpdateStock(ctx context.Context, id string, stock int, updatedAt time.Time) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// ListLowStock devuelve productos con stock <= umbral, mayor déficit primero.
	ListLowStock(ctx context.Context, limit int) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
