package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/chainsync/chainsync-lite/internal/application/auditlog"
	"github.com/chainsync/chainsync-lite/internal/application/dto"
)

// AuditHandler maneja la lectura y el borrado del log de mutaciones (protegido).
type AuditHandler struct {
	uc *auditlog.AuditLogUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *auditlog.AuditLogUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// List godoc
// @Summary      Últimas entradas del log de mutaciones
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máx. entradas (default 50, máx. 500)"
// @Success      200  {object}  dto.AuditListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/audit [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	limit, _ := strconv.Atoi(c.Query("limit"))

	entries, err := h.uc.RecentEntries(c.Context(), ownerID, limit)
	if err != nil {
		return respondError(c, err)
	}

	out := dto.AuditListResponse{
		Entries: make([]dto.AuditEntryResponse, 0, len(entries)),
		Limit:   limit,
	}
	for _, e := range entries {
		out.Entries = append(out.Entries, dto.AuditEntryResponse{
			ID:        e.ID,
			Action:    e.Action,
			ItemName:  e.ItemName,
			Details:   e.Details,
			CreatedAt: e.CreatedAt,
		})
	}
	return c.JSON(out)
}

// Clear godoc
// @Summary      Vaciar el log de mutaciones del dueño
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int64
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/audit [delete]
func (h *AuditHandler) Clear(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	deleted, err := h.uc.Clear(c.Context(), ownerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}
