package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chainsync/chainsync-lite/internal/application/dto"
	"github.com/chainsync/chainsync-lite/internal/application/settings"
	"github.com/chainsync/chainsync-lite/internal/domain/entity"
)

// SettingsHandler maneja los ajustes por dueño (protegido).
type SettingsHandler struct {
	uc *settings.SettingsUseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *settings.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

func toSettingsResponse(s *entity.Settings) dto.SettingsResponse {
	return dto.SettingsResponse{
		Theme:             s.Theme,
		ShopName:          s.ShopName,
		Locations:         s.Locations,
		Categories:        s.Categories,
		DebugMode:         s.DebugMode,
		LowStockThreshold: s.LowStockThreshold,
		UpdatedAt:         s.UpdatedAt,
	}
}

// Get godoc
// @Summary      Ajustes actuales del dueño
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SettingsResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	s, err := h.uc.Get(c.Context(), ownerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSettingsResponse(s))
}

// Update godoc
// @Summary      Actualizar ajustes (parcial, última escritura gana)
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateSettingsRequest  true  "solo los campos presentes se escriben"
// @Success      200   {object}  dto.SettingsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	var in dto.UpdateSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	s, err := h.uc.Save(c.Context(), ownerID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSettingsResponse(s))
}
