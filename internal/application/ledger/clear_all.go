package ledger

import (
	"context"

	"github.com/chainsync/chainsync-lite/internal/domain"
	"github.com/chainsync/chainsync-lite/internal/domain/entity"
	"github.com/chainsync/chainsync-lite/internal/domain/repository"
)

// ClearAll borra todos los datos del dueño (items, ventas, auditoría, claves
// de idempotencia) y restaura los ajustes a sus valores por defecto, como una
// sola operación masiva: o se aplica completa o no se aplica. Los datos de
// otros dueños no se tocan. Destructivo e irreversible; la confirmación
// explícita es responsabilidad del caller.
func (uc *LedgerUseCase) ClearAll(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return domain.ErrUnauthorized
	}

	err := uc.runTx(ctx, func(
		items repository.ItemRepository,
		sales repository.SaleRepository,
		audit repository.AuditRepository,
		settings repository.SettingsRepository,
		idem repository.IdempotencyRepository,
	) error {
		deletedItems, err := items.DeleteByOwner(ctx, ownerID)
		if err != nil {
			return err
		}
		deletedSales, err := sales.DeleteByOwner(ctx, ownerID)
		if err != nil {
			return err
		}
		deletedAudit, err := audit.DeleteByOwner(ctx, ownerID)
		if err != nil {
			return err
		}
		if _, err := idem.DeleteByOwner(ctx, ownerID); err != nil {
			return err
		}
		if err := settings.Upsert(ctx, entity.DefaultSettings(ownerID)); err != nil {
			return err
		}
		uc.log.Info().
			Str("owner_id", ownerID).
			Int64("items", deletedItems).
			Int64("sales", deletedSales).
			Int64("audit", deletedAudit).
			Msg("datos del dueño reiniciados")
		return nil
	})
	if err != nil {
		return err
	}
	uc.publish(ownerID, "clear",
		CollectionInventory, CollectionSales, CollectionAudit, CollectionSettings)
	return nil
}
