package repository

import (
	"context"
	"time"

	"github.com/chainsync/chainsync-lite/internal/domain/entity"
)

// ItemFilter filtros de listado de inventario.
type ItemFilter struct {
	Category string
	Location string
	Name     string // substring, case-insensitive
	Limit    int
	Offset   int
}

// ItemRepository define el puerto de persistencia para items de inventario.
// Todas las consultas están acotadas por dueño; los métodos *ForUpdate
// bloquean las filas (SELECT FOR UPDATE) y solo tienen sentido dentro de
// una transacción.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// FindByKey busca por (owner, nameKey) y, si location no es vacío,
	// también por ubicación exacta. Ordena por cantidad descendente y
	// puede devolver más de una fila si hay datos históricos duplicados.
	FindByKey(ctx context.Context, ownerID, nameKey, location string) ([]*entity.Item, error)
	FindByKeyForUpdate(ctx context.Context, ownerID, nameKey, location string) ([]*entity.Item, error)
	UpdateQuantity(ctx context.Context, id string, quantity int64, updatedAt time.Time) error
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID string, f ItemFilter) ([]*entity.Item, error)
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}
