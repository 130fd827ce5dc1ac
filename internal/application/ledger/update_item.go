package ledger

import (
	"context"
	"time"

	"github.com/chainsync/chainsync-lite/internal/application/dto"
	"github.com/chainsync/chainsync-lite/internal/domain"
	"github.com/chainsync/chainsync-lite/internal/domain/entity"
	domledger "github.com/chainsync/chainsync-lite/internal/domain/ledger"
	"github.com/chainsync/chainsync-lite/internal/domain/repository"
)

// UpdateItem edita un item existente (valores absolutos, no deltas).
// La cantidad editada puede ser 0 pero nunca negativa. El cambio de nombre o
// ubicación respeta la regla de fusión: chocar con otra fila existente
// retorna ErrDuplicate en vez de crear un duplicado lógico.
// Audita la acción edit con los valores antes/después.
func (uc *LedgerUseCase) UpdateItem(ctx context.Context, ownerID, itemID string, in dto.UpdateItemRequest) error {
	if ownerID == "" {
		return domain.ErrUnauthorized
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		return domain.ErrInvalidInput
	}
	if in.Name != nil && domledger.NormalizeName(*in.Name) == "" {
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
		// La propiedad se verifica además de la existencia; un item ajeno
		// se reporta igual que uno inexistente.
		if item == nil || item.OwnerID != ownerID {
			return domain.ErrNotFound
		}

		before := map[string]any{
			"name":     item.Name,
			"quantity": item.Quantity,
			"category": item.Category,
			"location": item.Location,
		}
		if in.Name != nil {
			item.Name = *in.Name
		}
		if in.Quantity != nil {
			item.Quantity = *in.Quantity
		}
		if in.Category != nil {
			item.Category = *in.Category
		}
		if in.Location != nil {
			item.Location = *in.Location
		}
		if in.CustomFields != nil {
			item.CustomFields = in.CustomFields
		}
		domledger.ApplyDefaults(item)
		item.UpdatedAt = time.Now()

		if err := items.Update(ctx, item); err != nil {
			return err
		}
		return wrapAuditErr(audit.Append(ctx, &entity.AuditEntry{
			OwnerID:  ownerID,
			Action:   entity.ActionEdit,
			ItemName: item.Name,
			Details: map[string]any{
				"before": before,
				"after": map[string]any{
					"name":     item.Name,
					"quantity": item.Quantity,
					"category": item.Category,
					"location": item.Location,
				},
			},
		}))
	})
	if err != nil {
		return err
	}
	uc.publish(ownerID, entity.ActionEdit, CollectionInventory, CollectionAudit)
	return nil
}
