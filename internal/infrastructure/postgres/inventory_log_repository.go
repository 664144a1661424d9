package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/tienda-backoffice/internal/domain"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
)

var _ repository.InventoryLogRepository = (*InventoryLogRepo)(nil)

const logColumns = `id, product_id, change_type, quantity_change, previous_stock, new_stock, note, created_at`

// InventoryLogRepo log de inventario sobre PostgreSQL. Solo inserta y lee.
type InventoryLogRepo struct {
	q Querier
}

// NewInventoryLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryLogRepository(q Querier) *InventoryLogRepo {
	return &InventoryLogRepo{q: q}
}

// Append inserta una entrada del log. Asigna ID si viene vacío.
func (r *InventoryLogRepo) Append(ctx context.Context, e *entity.InventoryLogEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	query := `INSERT INTO inventory_logs (` + logColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.ProductID, e.ChangeType, e.QuantityChange, e.PreviousStock, e.NewStock,
		nullable(e.Note), e.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, e.ProductID)
		}
		return fmt.Errorf("append inventory log: %w", err)
	}
	return nil
}

// ListByProduct historial de un producto, más reciente primero.
func (r *InventoryLogRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.InventoryLogEntry, error) {
	limit, offset = clampPage(limit, offset, 50, 500)
	query := `
		SELECT ` + logColumns + ` FROM inventory_logs
		WHERE product_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.queryEntries(ctx, query, productID, limit, offset)
}

// ListRecent movimientos de todos los productos en un rango opcional de fechas.
func (r *InventoryLogRepo) ListRecent(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.InventoryLogEntry, error) {
	limit, offset = clampPage(limit, offset, 50, 10000)
	query := `SELECT ` + logColumns + ` FROM inventory_logs WHERE 1=1`
	args := []any{}
	pos := 1
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	return r.queryEntries(ctx, query, args...)
}

// SummarizeByType cantidad de movimientos y delta neto por tipo de cambio en [from, to].
func (r *InventoryLogRepo) SummarizeByType(ctx context.Context, from, to time.Time) ([]repository.LogSummary, error) {
	query := `
		SELECT change_type, COUNT(*), COALESCE(SUM(quantity_change), 0)
		FROM inventory_logs
		WHERE created_at >= $1 AND created_at <= $2
		GROUP BY change_type
		ORDER BY change_type`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("summarize inventory logs: %w", err)
	}
	defer rows.Close()
	var out []repository.LogSummary
	for rows.Next() {
		var s repository.LogSummary
		if err := rows.Scan(&s.ChangeType, &s.Movements, &s.NetQuantity); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *InventoryLogRepo) queryEntries(ctx context.Context, query string, args ...any) ([]*entity.InventoryLogEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryLogEntry
	for rows.Next() {
		e, err := scanLogEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory log: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func scanLogEntry(row pgx.Row) (*entity.InventoryLogEntry, error) {
	var e entity.InventoryLogEntry
	var note *string
	if err := row.Scan(&e.ID, &e.ProductID, &e.ChangeType, &e.QuantityChange,
		&e.PreviousStock, &e.NewStock, &note, &e.CreatedAt); err != nil {
		return nil, err
	}
	if note != nil {
		e.Note = *note
	}
	return &e, nil
}
