package settings

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/chainsync/chainsync-lite/internal/application/dto"
	"github.com/chainsync/chainsync-lite/internal/domain"
	"github.com/chainsync/chainsync-lite/internal/domain/entity"
	"github.com/chainsync/chainsync-lite/internal/domain/repository"
)

// SettingsUseCase maneja los ajustes por dueño: un único documento mutable,
// última escritura gana.
type SettingsUseCase struct {
	repo repository.SettingsRepository
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo}
}

// Get devuelve los ajustes del dueño, o los valores por defecto si nunca
// guardó ninguno.
func (uc *SettingsUseCase) Get(ctx context.Context, ownerID string) (*entity.Settings, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	s, err := uc.repo.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = entity.DefaultSettings(ownerID)
	}
	return s, nil
}

// Save aplica una actualización parcial: solo los campos presentes en el
// request se escriben sobre los ajustes actuales.
func (uc *SettingsUseCase) Save(ctx context.Context, ownerID string, in dto.UpdateSettingsRequest) (*entity.Settings, error) {
	s, err := uc.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if in.Theme != nil {
		if *in.Theme != "light" && *in.Theme != "dark" {
			return nil, domain.ErrInvalidInput
		}
		s.Theme = *in.Theme
	}
	if in.ShopName != nil {
		s.ShopName = strings.TrimSpace(*in.ShopName)
	}
	if in.Locations != nil {
		s.Locations = dedupSorted(in.Locations)
	}
	if in.Categories != nil {
		s.Categories = dedupSorted(in.Categories)
	}
	if in.DebugMode != nil {
		s.DebugMode = *in.DebugMode
	}
	if in.LowStockThreshold != nil {
		if *in.LowStockThreshold < 0 {
			return nil, domain.ErrInvalidInput
		}
		s.LowStockThreshold = *in.LowStockThreshold
	}
	s.UpdatedAt = time.Now()
	if err := uc.repo.Upsert(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// AddLocation agrega una ubicación al conjunto conocido (sin duplicados).
func (uc *SettingsUseCase) AddLocation(ctx context.Context, ownerID, location string) (*entity.Settings, error) {
	return uc.addToSet(ctx, ownerID, location, func(s *entity.Settings, v string) {
		s.Locations = dedupSorted(append(s.Locations, v))
	})
}

// AddCategory agrega una categoría al conjunto conocido (sin duplicados).
func (uc *SettingsUseCase) AddCategory(ctx context.Context, ownerID, category string) (*entity.Settings, error) {
	return uc.addToSet(ctx, ownerID, category, func(s *entity.Settings, v string) {
		s.Categories = dedupSorted(append(s.Categories, v))
	})
}

func (uc *SettingsUseCase) addToSet(ctx context.Context, ownerID, value string, apply func(*entity.Settings, string)) (*entity.Settings, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, domain.ErrInvalidInput
	}
	s, err := uc.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	apply(s, value)
	s.UpdatedAt = time.Now()
	if err := uc.repo.Upsert(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func dedupSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
