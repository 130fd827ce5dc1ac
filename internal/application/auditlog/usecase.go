package auditlog

import (
	"context"
	"fmt"

	"github.com/chainsync/chainsync-lite/internal/domain"
	"github.com/chainsync/chainsync-lite/internal/domain/entity"
	"github.com/chainsync/chainsync-lite/internal/domain/repository"
	"github.com/chainsync/chainsync-lite/pkg/logger"
)

// Las mutaciones del ledger escriben su entrada de auditoría dentro de su
// propia transacción; este caso de uso cubre el resto del contrato del log:
// appends sueltos, lectura "últimas N" y borrado masivo.
type AuditLogUseCase struct {
	repo repository.AuditRepository
	log  *logger.Logger
}

// NewAuditLogUseCase construye el caso de uso.
func NewAuditLogUseCase(repo repository.AuditRepository, log *logger.Logger) *AuditLogUseCase {
	return &AuditLogUseCase{repo: repo, log: log}
}

// Append agrega una entrada suelta al log. Un fallo aquí es un problema de
// calidad de datos, no un fallo de la operación que el usuario pidió: se
// reporta como ErrAuditAppend (envuelto) y se deja rastro en el logger, nunca
// se descarta en silencio.
func (uc *AuditLogUseCase) Append(ctx context.Context, ownerID, action, itemName string, details map[string]any) error {
	if ownerID == "" {
		return domain.ErrUnauthorized
	}
	if action == "" {
		return domain.ErrInvalidInput
	}
	if itemName == "" {
		itemName = "N/A"
	}
	entry := &entity.AuditEntry{
		OwnerID:  ownerID,
		Action:   action,
		ItemName: itemName,
		Details:  details,
	}
	if err := uc.repo.Append(ctx, entry); err != nil {
		uc.log.Error().Err(err).
			Str("owner_id", ownerID).
			Str("action", action).
			Msg("no se pudo escribir la entrada de auditoría")
		return fmt.Errorf("%w: %v", domain.ErrAuditAppend, err)
	}
	return nil
}

// RecentEntries devuelve las últimas N entradas del dueño, por timestamp
// descendente con desempate por orden de inserción.
func (uc *AuditLogUseCase) RecentEntries(ctx context.Context, ownerID string, limit int) ([]*entity.AuditEntry, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}
	return uc.repo.ListRecent(ctx, ownerID, limit)
}

// Clear borra todo el log del dueño.
func (uc *AuditLogUseCase) Clear(ctx context.Context, ownerID string) (int64, error) {
	if ownerID == "" {
		return 0, domain.ErrUnauthorized
	}
	return uc.repo.DeleteByOwner(ctx, ownerID)
}
