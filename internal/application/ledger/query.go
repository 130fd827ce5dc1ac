package ledger

import (
	"context"

	"github.com/chainsync/chainsync-lite/internal/domain"
	"github.com/chainsync/chainsync-lite/internal/domain/entity"
	"github.com/chainsync/chainsync-lite/internal/domain/repository"
)

// GetItem obtiene un item del dueño por ID. Un item ajeno se reporta como
// inexistente.
func (uc *LedgerUseCase) GetItem(ctx context.Context, ownerID, itemID string) (*entity.Item, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	item, err := uc.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// ListItems lista el inventario del dueño con filtros y paginación.
func (uc *LedgerUseCase) ListItems(ctx context.Context, ownerID string, f repository.ItemFilter) ([]*entity.Item, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	return uc.items.ListByOwner(ctx, ownerID, f)
}
