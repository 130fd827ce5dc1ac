package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chainsync/chainsync-lite/internal/domain/entity"
	"github.com/chainsync/chainsync-lite/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implementa SettingsRepository sobre PostgreSQL
// (usable con pool o tx). Una fila por dueño.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador de ajustes. Pasar pool o tx (Querier).
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Get devuelve nil, nil si el dueño aún no guardó ajustes.
func (r *SettingsRepo) Get(ctx context.Context, ownerID string) (*entity.Settings, error) {
	const q = `
		SELECT owner_id, theme, shop_name, locations, categories, debug_mode, low_stock_threshold, updated_at
		FROM settings WHERE owner_id = $1`
	var s entity.Settings
	err := r.q.QueryRow(ctx, q, ownerID).Scan(
		&s.OwnerID, &s.Theme, &s.ShopName, &s.Locations, &s.Categories,
		&s.DebugMode, &s.LowStockThreshold, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

func (r *SettingsRepo) Upsert(ctx context.Context, s *entity.Settings) error {
	const q = `
		INSERT INTO settings (owner_id, theme, shop_name, locations, categories, debug_mode, low_stock_threshold, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (owner_id)
		DO UPDATE SET
			theme = EXCLUDED.theme,
			shop_name = EXCLUDED.shop_name,
			locations = EXCLUDED.locations,
			categories = EXCLUDED.categories,
			debug_mode = EXCLUDED.debug_mode,
			low_stock_threshold = EXCLUDED.low_stock_threshold,
			updated_at = now()`
	_, err := r.q.Exec(ctx, q,
		s.OwnerID, s.Theme, s.ShopName, s.Locations, s.Categories,
		s.DebugMode, s.LowStockThreshold,
	)
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}

func (r *SettingsRepo) Delete(ctx context.Context, ownerID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM settings WHERE owner_id = $1`, ownerID)
	if err != nil {
		return fmt.Errorf("delete settings: %w", err)
	}
	return nil
}
