package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
)

var _ repository.InventoryAlertRepository = (*InventoryAlertRepo)(nil)

// InventoryAlertRepo alertas de inventario sobre PostgreSQL. Una fila por (product_id, alert_type).
type InventoryAlertRepo struct {
	q Querier
}

// NewInventoryAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryAlertRepository(q Querier) *InventoryAlertRepo {
	return &InventoryAlertRepo{q: q}
}

// GetByProductAndType (nil, nil) si la alerta nunca se evaluó.
func (r *InventoryAlertRepo) GetByProductAndType(ctx context.Context, productID, alertType string) (*entity.InventoryAlert, error) {
	query := `
		SELECT id, product_id, alert_type, threshold, is_active, created_at, updated_at
		FROM inventory_alerts WHERE product_id = $1 AND alert_type = $2`
	var a entity.InventoryAlert
	err := r.q.QueryRow(ctx, query, productID, alertType).Scan(
		&a.ID, &a.ProductID, &a.AlertType, &a.Threshold, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory alert: %w", err)
	}
	return &a, nil
}

// Upsert crea o actualiza la alerta del par (product_id, alert_type).
func (r *InventoryAlertRepo) Upsert(ctx context.Context, a *entity.InventoryAlert) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_alerts (id, product_id, alert_type, threshold, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (product_id, alert_type) DO UPDATE
		SET threshold = EXCLUDED.threshold, is_active = EXCLUDED.is_active, updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		a.ID, a.ProductID, a.AlertType, a.Threshold, a.IsActive, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert inventory alert: %w", err)
	}
	return nil
}

// ListActive alertas activas con datos del producto; agotados primero.
func (r *InventoryAlertRepo) ListActive(ctx context.Context, limit, offset int) ([]repository.ActiveAlertItem, error) {
	limit, offset = clampPage(limit, offset, 50, 500)
	query := `
		SELECT a.id, a.product_id, a.alert_type, a.threshold, a.is_active, a.created_at, a.updated_at,
			p.name, COALESCE(p.sku, ''), p.stock
		FROM inventory_alerts a
		JOIN products p ON p.id = a.product_id
		WHERE a.is_active
		ORDER BY (a.alert_type = 'out_of_stock') DESC, a.updated_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list active alerts: %w", err)
	}
	defer rows.Close()
	var out []repository.ActiveAlertItem
	for rows.Next() {
		var it repository.ActiveAlertItem
		a := &it.Alert
		if err := rows.Scan(&a.ID, &a.ProductID, &a.AlertType, &a.Threshold, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
			&it.ProductName, &it.SKU, &it.CurrentStock); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
