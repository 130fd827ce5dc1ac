package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chainsync/chainsync-lite/internal/application/backup"
	"github.com/chainsync/chainsync-lite/internal/application/dto"
	"github.com/chainsync/chainsync-lite/internal/application/ledger"
)

// BackupHandler maneja backup, restore y el borrado total de datos (protegido).
type BackupHandler struct {
	uc       *backup.BackupUseCase
	ledgerUC *ledger.LedgerUseCase
}

// NewBackupHandler construye el handler.
func NewBackupHandler(uc *backup.BackupUseCase, ledgerUC *ledger.LedgerUseCase) *BackupHandler {
	return &BackupHandler{uc: uc, ledgerUC: ledgerUC}
}

// Export godoc
// @Summary      Descargar backup JSON completo
// @Tags         backup
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BackupDocument
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/backup [get]
func (h *BackupHandler) Export(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	doc, err := h.uc.Export(c.Context(), ownerID)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="backup.json"`)
	return c.JSON(doc)
}

// Restore godoc
// @Summary      Restaurar inventario desde un backup JSON
// @Description  Re-importa los items del snapshot con la regla de fusión.
//               Ventas y auditoría del snapshot no se re-aplican.
// @Tags         backup
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BackupDocument  true  "backup exportado previamente"
// @Success      200   {object}  dto.RestoreSummary
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/restore [post]
func (h *BackupHandler) Restore(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	var doc dto.BackupDocument
	if err := c.BodyParser(&doc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	summary, err := h.uc.Restore(c.Context(), ownerID, &doc)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// ClearAll godoc
// @Summary      Borrar todos los datos del dueño
// @Description  Elimina inventario, ventas, auditoría y claves de idempotencia
//               en una sola transacción y restablece los ajustes por defecto.
//               Requiere ?confirm=true; sin él no borra nada.
// @Tags         backup
// @Security     Bearer
// @Produce      json
// @Param        confirm  query  bool  true  "debe ser true"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/data [delete]
func (h *BackupHandler) ClearAll(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if c.Query("confirm") != "true" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "CONFIRM_REQUIRED", Message: "agregue ?confirm=true para borrar todos los datos"})
	}
	if err := h.ledgerUC.ClearAll(c.Context(), ownerID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "datos eliminados"})
}
