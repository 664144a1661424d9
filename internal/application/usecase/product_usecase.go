package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-backoffice/internal/application/dto"
	"github.com/jhoicas/tienda-backoffice/internal/application/inventory"
	"github.com/jhoicas/tienda-backoffice/internal/domain"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	dominv "github.com/jhoicas/tienda-backoffice/internal/domain/inventory"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
)

// StockAdjuster el libro de stock; único camino para escribir Stock.
type StockAdjuster interface {
	AdjustStock(ctx context.Context, in inventory.AdjustStockInput) (*inventory.AdjustStockResult, error)
}

// ProductUseCase casos de uso CRUD para productos. Stock se maneja vía el libro de stock.
type ProductUseCase struct {
	repo   repository.ProductRepository
	ledger StockAdjuster
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, ledger StockAdjuster) *ProductUseCase {
	return &ProductUseCase{repo: repo, ledger: ledger}
}

// Create crea un nuevo producto con stock 0 y registra el stock inicial como primer movimiento.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.InitialStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:                uuid.New().String(),
		Name:              strings.TrimSpace(in.Name),
		Price:             in.Price,
		DiscountPrice:     in.DiscountPrice,
		LowStockThreshold: in.LowStockThreshold,
		Brand:             strings.TrimSpace(in.Brand),
		SKU:               strings.TrimSpace(in.SKU),
		IsFeatured:        in.IsFeatured,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	if in.InitialStock > 0 {
		res, err := uc.ledger.AdjustStock(ctx, inventory.AdjustStockInput{
			ProductID:         product.ID,
			CurrentKnownStock: 0,
			Mode:              dominv.ModeAbsolute,
			Value:             in.InitialStock,
			Note:              "Stock inicial",
		})
		if err != nil {
			return nil, err
		}
		product.Stock = res.NewStock
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza los campos de catálogo. No permite modificar Stock.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.ClearDiscountPrice {
		product.DiscountPrice = nil
	} else if in.DiscountPrice != nil {
		product.DiscountPrice = in.DiscountPrice
	}
	if in.LowStockThreshold != nil {
		product.LowStockThreshold = *in.LowStockThreshold
	}
	if in.Brand != nil {
		product.Brand = strings.TrimSpace(*in.Brand)
	}
	if in.SKU != nil {
		product.SKU = strings.TrimSpace(*in.SKU)
	}
	if in.IsFeatured != nil {
		product.IsFeatured = *in.IsFeatured
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con búsqueda y paginación.
func (uc *ProductUseCase) List(ctx context.Context, search string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, repository.ProductFilter{Search: strings.TrimSpace(search), Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  page.Response(),
	}, nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		Price:             p.Price,
		DiscountPrice:     p.DiscountPrice,
		Stock:             p.Stock,
		LowStockThreshold: p.LowStockThreshold,
		LowStock:          p.IsLowStock(),
		Brand:             p.Brand,
		SKU:               p.SKU,
		IsFeatured:        p.IsFeatured,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
