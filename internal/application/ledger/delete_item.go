package ledger

import (
	"context"

	"github.com/chainsync/chainsync-lite/internal/domain"
	"github.com/chainsync/chainsync-lite/internal/domain/entity"
	"github.com/chainsync/chainsync-lite/internal/domain/repository"
)

// DeleteItem elimina un item del dueño. Verifica la propiedad (no solo la
// existencia) antes de borrar y audita la acción delete con la última
// cantidad/ubicación conocida, en la misma transacción.
func (uc *LedgerUseCase) DeleteItem(ctx context.Context, ownerID, itemID string) error {
	if ownerID == "" {
		return domain.ErrUnauthorized
	}
	if itemID == "" {
		return domain.ErrInvalidInput
	}

	err := uc.runTx(ctx, func(
		items repository.ItemRepository,
		_ repository.SaleRepository,
		audit repository.AuditRepository,
		_ repository.SettingsRepository,
		_ repository.IdempotencyRepository,
	) error {
		item, err := items.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil || item.OwnerID != ownerID {
			return domain.ErrNotFound
		}
		if err := items.Delete(ctx, item.ID); err != nil {
			return err
		}
		return wrapAuditErr(audit.Append(ctx, &entity.AuditEntry{
			OwnerID:  ownerID,
			Action:   entity.ActionDelete,
			ItemName: item.Name,
			Details: map[string]any{
				"id":       item.ID,
				"quantity": item.Quantity,
				"location": item.Location,
			},
		}))
	})
	if err != nil {
		return err
	}
	uc.publish(ownerID, entity.ActionDelete, CollectionInventory, CollectionAudit)
	return nil
}
