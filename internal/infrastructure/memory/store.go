// Package memory implementa los puertos de repositorio en memoria.
// Lo usan los tests de casos de uso, handlers y escenarios BDD.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-backoffice/internal/domain"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
)

var (
	_ repository.ProductRepository        = (*ProductRepo)(nil)
	_ repository.InventoryLogRepository   = (*InventoryLogRepo)(nil)
	_ repository.InventoryAlertRepository = (*InventoryAlertRepo)(nil)
	_ repository.AccessRepository         = (*AccessRepo)(nil)
)

// ProductRepo catálogo en memoria. FailGetByID y FailUpdateStock simulan fallos del backend.
type ProductRepo struct {
	mu              sync.Mutex
	items           map[string]entity.Product
	FailGetByID     error
	FailUpdateStock error
	StockWrites     int
}

// NewProductRepo crea el repositorio con los productos dados.
func NewProductRepo(products ...*entity.Product) *ProductRepo {
	r := &ProductRepo{items: make(map[string]entity.Product)}
	for _, p := range products {
		r.items[p.ID] = *p
	}
	return r
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if _, ok := r.items[p.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, it := range r.items {
		if p.SKU != "" && it.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	r.items[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailGetByID != nil {
		return nil, r.FailGetByID
	}
	p, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.items[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for id, it := range r.items {
		if id != p.ID && p.SKU != "" && it.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	next := *p
	next.Stock = cur.Stock
	next.CreatedAt = cur.CreatedAt
	r.items[p.ID] = next
	return nil
}

func (r *ProductRepo) UpdateStock(_ context.Context, id string, stock int, updatedAt time.Time) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailUpdateStock != nil {
		return nil, r.FailUpdateStock
	}
	p, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	p.Stock = stock
	p.UpdatedAt = updatedAt
	r.items[id] = p
	r.StockWrites++
	return &p, nil
}

func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	search := strings.ToLower(f.Search)
	var out []*entity.Product
	for _, p := range r.items {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.SKU), search) &&
			!strings.Contains(strings.ToLower(p.Brand), search) {
			continue
		}
		cp := p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, f.Limit, f.Offset), nil
}

func (r *ProductRepo) ListLowStock(_ context.Context, limit int) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.items {
		if p.Stock <= p.LowStockThreshold {
			cp := p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		di := out[i].LowStockThreshold - out[i].Stock
		dj := out[j].LowStockThreshold - out[j].Stock
		if di != dj {
			return di > dj
		}
		return out[i].Name < out[j].Name
	})
	return page(out, limit, 0), nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// InventoryLogRepo log en memoria. FailAppend simula la caída del registro de auditoría.
type InventoryLogRepo struct {
	mu         sync.Mutex
	entries    []entity.InventoryLogEntry
	FailAppend error
}

// NewInventoryLogRepo crea un log vacío.
func NewInventoryLogRepo() *InventoryLogRepo {
	return &InventoryLogRepo{}
}

func (r *InventoryLogRepo) Append(_ context.Context, e *entity.InventoryLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailAppend != nil {
		return r.FailAppend
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	r.entries = append(r.entries, *e)
	return nil
}

// Entries copia de todas las entradas en orden de inserción.
func (r *InventoryLogRepo) Entries() []entity.InventoryLogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.InventoryLogEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *InventoryLogRepo) ListByProduct(_ context.Context, productID string, limit, offset int) ([]*entity.InventoryLogEntry, error) {
	return r.filter(func(e entity.InventoryLogEntry) bool { return e.ProductID == productID }, limit, offset), nil
}

func (r *InventoryLogRepo) ListRecent(_ context.Context, from, to *time.Time, limit, offset int) ([]*entity.InventoryLogEntry, error) {
	return r.filter(func(e entity.InventoryLogEntry) bool { return inRange(e.CreatedAt, from, to) }, limit, offset), nil
}

func (r *InventoryLogRepo) SummarizeByType(_ context.Context, from, to time.Time) ([]repository.LogSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc := map[string]*repository.LogSummary{}
	for _, e := range r.entries {
		if !inRange(e.CreatedAt, &from, &to) {
			continue
		}
		s, ok := acc[e.ChangeType]
		if !ok {
			s = &repository.LogSummary{ChangeType: e.ChangeType}
			acc[e.ChangeType] = s
		}
		s.Movements++
		s.NetQuantity += e.QuantityChange
	}
	out := make([]repository.LogSummary, 0, len(acc))
	for _, s := range acc {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChangeType < out[j].ChangeType })
	return out, nil
}

// filter devuelve las entradas que cumplen keep, más reciente primero.
func (r *InventoryLogRepo) filter(keep func(entity.InventoryLogEntry) bool, limit, offset int) []*entity.InventoryLogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.InventoryLogEntry
	for i := len(r.entries) - 1; i >= 0; i-- {
		if e := r.entries[i]; keep(e) {
			out = append(out, &e)
		}
	}
	return page(out, limit, offset)
}

// InventoryAlertRepo alertas en memoria, una por (producto, tipo).
type InventoryAlertRepo struct {
	mu       sync.Mutex
	items    map[string]entity.InventoryAlert
	products *ProductRepo
}

// NewInventoryAlertRepo products se usa para enriquecer ListActive; puede ser nil.
func NewInventoryAlertRepo(products *ProductRepo) *InventoryAlertRepo {
	return &InventoryAlertRepo{items: make(map[string]entity.InventoryAlert), products: products}
}

func alertKey(productID, alertType string) string { return productID + "/" + alertType }

func (r *InventoryAlertRepo) GetByProductAndType(_ context.Context, productID, alertType string) (*entity.InventoryAlert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[alertKey(productID, alertType)]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *InventoryAlertRepo) Upsert(_ context.Context, a *entity.InventoryAlert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := alertKey(a.ProductID, a.AlertType)
	if cur, ok := r.items[k]; ok {
		a.ID = cur.ID
		a.CreatedAt = cur.CreatedAt
	} else if a.ID == "" {
		a.ID = uuid.New().String()
	}
	r.items[k] = *a
	return nil
}

func (r *InventoryAlertRepo) ListActive(ctx context.Context, limit, offset int) ([]repository.ActiveAlertItem, error) {
	r.mu.Lock()
	var active []entity.InventoryAlert
	for _, a := range r.items {
		if a.IsActive {
			active = append(active, a)
		}
	}
	r.mu.Unlock()

	sort.Slice(active, func(i, j int) bool {
		oi := active[i].AlertType == entity.AlertTypeOutOfStock
		oj := active[j].AlertType == entity.AlertTypeOutOfStock
		if oi != oj {
			return oi
		}
		return active[i].ProductID < active[j].ProductID
	})
	out := make([]repository.ActiveAlertItem, 0, len(active))
	for _, a := range active {
		it := repository.ActiveAlertItem{Alert: a}
		if r.products != nil {
			if p, _ := r.products.GetByID(ctx, a.ProductID); p != nil {
				it.ProductName, it.SKU, it.CurrentStock = p.Name, p.SKU, p.Stock
			}
		}
		out = append(out, it)
	}
	return page(out, limit, offset), nil
}

// AccessRepo tabla fija de administradores. Err simula la caída del RPC.
type AccessRepo struct {
	Admins map[string]bool
	Err    error
}

func (r *AccessRepo) IsAdmin(_ context.Context, userID string) (bool, error) {
	if r.Err != nil {
		return false, r.Err
	}
	return r.Admins[userID], nil
}

// TxRunner ejecuta fn sobre los repos en memoria, sin aislamiento.
type TxRunner struct {
	Products *ProductRepo
	Alerts   *InventoryAlertRepo
}

func (t *TxRunner) Run(ctx context.Context, fn func(repository.ProductRepository, repository.InventoryAlertRepository) error) error {
	return fn(t.Products, t.Alerts)
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

func page[T any](items []T, limit, offset int) []T {
	if offset > len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
