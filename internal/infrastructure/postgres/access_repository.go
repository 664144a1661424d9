package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
)

var _ repository.AccessRepository = (*AccessRepo)(nil)

// AccessRepo consulta el RPC is_admin del backend.
type AccessRepo struct {
	q Querier
}

// NewAccessRepository construye el adaptador.
func NewAccessRepository(q Querier) *AccessRepo {
	return &AccessRepo{q: q}
}

// IsAdmin devuelve false si el usuario no tiene perfil de administrador.
func (r *AccessRepo) IsAdmin(ctx context.Context, userID string) (bool, error) {
	var ok *bool
	if err := r.q.QueryRow(ctx, `SELECT public.is_admin($1)`, userID).Scan(&ok); err != nil {
		return false, fmt.Errorf("is_admin rpc: %w", err)
	}
	return ok != nil && *ok, nil
}
