package repository

import "context"

// AccessRepository expone el RPC is_admin del backend.
type AccessRepository interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}
