package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chainsync/chainsync-lite/internal/application/report"
)

// ReportHandler maneja resumen y exportaciones del inventario (protegido).
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen del inventario
// @Description  Totales, conteo por categoría, valor del inventario y items
//               en stock bajo según el umbral configurado.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SummaryResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	summary, err := h.uc.Summary(c.Context(), ownerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// ExportCSV godoc
// @Summary      Exportar inventario a CSV
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {string}  string  "CSV con cabecera Item Name,Quantity,Category,Location"
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/export/csv [get]
func (h *ReportHandler) ExportCSV(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	data, err := h.uc.ExportCSV(c.Context(), ownerID)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventory.csv"`)
	return c.Send(data)
}

// ExportPDF godoc
// @Summary      Exportar inventario a PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {string}  string  "Reporte PDF"
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/export/pdf [get]
func (h *ReportHandler) ExportPDF(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	data, err := h.uc.InventoryPDF(c.Context(), ownerID)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventory.pdf"`)
	return c.Send(data)
}
