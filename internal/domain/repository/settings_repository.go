package repository

import (
	"context"

	"github.com/chainsync/chainsync-lite/internal/domain/entity"
)

// SettingsRepository define el puerto para los ajustes por dueño.
// Un único documento por dueño, última escritura gana.
type SettingsRepository interface {
	// Get devuelve nil (sin error) si el dueño aún no tiene ajustes guardados.
	Get(ctx context.Context, ownerID string) (*entity.Settings, error)
	Upsert(ctx context.Context, s *entity.Settings) error
	Delete(ctx context.Context, ownerID string) error
}
