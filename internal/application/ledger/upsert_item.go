package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/chainsync/chainsync-lite/internal/application/dto"
	"github.com/chainsync/chainsync-lite/internal/domain"
	"github.com/chainsync/chainsync-lite/internal/domain/entity"
	domledger "github.com/chainsync/chainsync-lite/internal/domain/ledger"
	"github.com/chainsync/chainsync-lite/internal/domain/repository"
)

// UpsertItem agrega stock: si ya existe un item del dueño con el mismo nombre
// (case-insensitive) y ubicación, suma la cantidad a la fila existente; si no,
// crea la fila. Nunca produce dos filas para el mismo (dueño, nombre, ubicación).
// La entrada de auditoría (add o update_quantity, con el delta aplicado) se
// escribe en la misma transacción.
// Devuelve el ID del item resultante.
func (uc *LedgerUseCase) UpsertItem(ctx context.Context, ownerID string, in dto.UpsertItemRequest) (string, error) {
	if ownerID == "" {
		return "", domain.ErrUnauthorized
	}
	candidate := &entity.Item{
		OwnerID:      ownerID,
		Name:         in.Name,
		Quantity:     in.Quantity,
		Category:     in.Category,
		Location:     in.Location,
		CustomFields: in.CustomFields,
	}
	domledger.ApplyDefaults(candidate)
	// Validar antes de cualquier escritura: un add de 0 se rechaza, no es no-op.
	if candidate.Name == "" || in.Quantity < 1 {
		return "", domain.ErrInvalidInput
	}

	var (
		resultID string
		action   string
	)
	err := uc.runTx(ctx, func(
		items repository.ItemRepository,
		_ repository.SaleRepository,
		audit repository.AuditRepository,
		_ repository.SettingsRepository,
		idem repository.IdempotencyRepository,
	) error {
		if in.IdempotencyKey != "" {
			rec, err := idem.Get(ctx, ownerID, in.IdempotencyKey)
			if err != nil {
				return err
			}
			if rec != nil {
				// Reintento del cliente: devolver el resultado original sin re-aplicar.
				resultID = rec.ResultID
				action = ""
				return nil
			}
		}

		matches, err := items.FindByKeyForUpdate(ctx, ownerID, candidate.NameKey, candidate.Location)
		if err != nil {
			return err
		}
		if len(matches) > 1 {
			// Datos históricos con duplicados: se usa el primero y se reporta,
			// no se aborta.
			uc.log.Warn().
				Str("owner_id", ownerID).
				Str("name_key", candidate.NameKey).
				Str("location", candidate.Location).
				Int("matches", len(matches)).
				Msg("integridad de datos: más de una fila para el mismo item lógico")
		}

		now := time.Now()
		var entry *entity.AuditEntry
		if len(matches) > 0 {
			existing := matches[0]
			newQty := existing.Quantity + in.Quantity
			if err := items.UpdateQuantity(ctx, existing.ID, newQty, now); err != nil {
				return err
			}
			resultID = existing.ID
			action = entity.ActionUpdateQuantity
			entry = &entity.AuditEntry{
				OwnerID:  ownerID,
				Action:   entity.ActionUpdateQuantity,
				ItemName: existing.Name,
				Details: map[string]any{
					"quantity_change": in.Quantity,
					"new_quantity":    newQty,
					"location":        existing.Location,
				},
			}
		} else {
			candidate.CreatedAt = now
			candidate.UpdatedAt = now
			if err := items.Create(ctx, candidate); err != nil {
				return err
			}
			resultID = candidate.ID
			action = entity.ActionAdd
			entry = &entity.AuditEntry{
				OwnerID:  ownerID,
				Action:   entity.ActionAdd,
				ItemName: candidate.Name,
				Details: map[string]any{
					"quantity": in.Quantity,
					"category": candidate.Category,
					"location": candidate.Location,
				},
			}
		}
		if err := audit.Append(ctx, entry); err != nil {
			return wrapAuditErr(err)
		}

		if in.IdempotencyKey != "" {
			err := idem.Reserve(ctx, &entity.IdempotencyRecord{
				OwnerID:   ownerID,
				Key:       in.IdempotencyKey,
				Operation: entity.OpUpsertItem,
				ResultID:  resultID,
			})
			if errors.Is(err, domain.ErrDuplicate) {
				// Otro escritor reservó la clave entre el Get y el Reserve:
				// forzar el reintento, que encontrará el registro y devolverá
				// el resultado original.
				return domain.ErrConflict
			}
			return err
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if action != "" {
		uc.publish(ownerID, action, CollectionInventory, CollectionAudit)
	}
	return resultID, nil
}
