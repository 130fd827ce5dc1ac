package repository

import (
	"context"

	"github.com/chainsync/chainsync-lite/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// FindByEmail devuelve nil (sin error) si no existe.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
