package repository

import (
	"context"

	"github.com/chainsync/chainsync-lite/internal/domain/entity"
)

// IdempotencyRepository define el puerto para claves de idempotencia.
// Reserve se invoca dentro de la misma transacción que la mutación que
// protege; una clave ya usada retorna domain.ErrDuplicate.
type IdempotencyRepository interface {
	// Get devuelve nil (sin error) si la clave no existe.
	Get(ctx context.Context, ownerID, key string) (*entity.IdempotencyRecord, error)
	Reserve(ctx context.Context, rec *entity.IdempotencyRecord) error
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}
