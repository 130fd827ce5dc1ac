package repository

import (
	"context"

	"github.com/chainsync/chainsync-lite/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas.
// Las ventas son inmutables: solo alta, listado y borrado masivo por dueño.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Sale, error)
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}
