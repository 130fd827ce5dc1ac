package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chainsync/chainsync-lite/internal/application/dto"
	"github.com/chainsync/chainsync-lite/internal/application/ledger"
)

// SalesHandler maneja registro y listado de ventas (protegido).
type SalesHandler struct {
	uc *ledger.LedgerUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *ledger.LedgerUseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Descuenta stock de forma atómica. Nunca vende por encima del
//               stock disponible: 409 con la cantidad disponible si no alcanza.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordSaleRequest  true  "item_name, quantity (>=1), location (opcional), idempotency_key"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SalesHandler) Create(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	var in dto.RecordSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	id, err := h.uc.RecordSale(c.Context(), ownerID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Máx. filas (default 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.SaleListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SalesHandler) List(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)

	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	sales, err := h.uc.ListSales(c.Context(), ownerID, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}

	out := dto.SaleListResponse{
		Sales:  make([]dto.SaleResponse, 0, len(sales)),
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	for _, s := range sales {
		out.Sales = append(out.Sales, dto.SaleResponse{
			ID:        s.ID,
			ItemID:    s.ItemID,
			ItemName:  s.ItemName,
			Quantity:  s.Quantity,
			CreatedAt: s.CreatedAt,
		})
	}
	return c.JSON(out)
}
