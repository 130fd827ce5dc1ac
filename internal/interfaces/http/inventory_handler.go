package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/chainsync/chainsync-lite/internal/application/dto"
	"github.com/chainsync/chainsync-lite/internal/application/ledger"
	"github.com/chainsync/chainsync-lite/internal/application/report"
	"github.com/chainsync/chainsync-lite/internal/domain/entity"
	"github.com/chainsync/chainsync-lite/internal/domain/repository"
)

// InventoryHandler maneja las peticiones HTTP del inventario (protegido).
type InventoryHandler struct {
	uc *ledger.LedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *ledger.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

func toItemResponse(it *entity.Item) dto.ItemResponse {
	return dto.ItemResponse{
		ID:           it.ID,
		Name:         it.Name,
		Quantity:     it.Quantity,
		Category:     it.Category,
		Location:     it.Location,
		CustomFields: it.CustomFields,
		CreatedAt:    it.CreatedAt,
		UpdatedAt:    it.UpdatedAt,
	}
}

// List godoc
// @Summary      Listar inventario
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "Filtrar por categoría"
// @Param        location  query  string  false  "Filtrar por ubicación"
// @Param        name      query  string  false  "Substring del nombre (case-insensitive)"
// @Param        limit     query  int     false  "Máx. filas (default 20)"
// @Param        offset    query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.ItemListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/items [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)

	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	items, err := h.uc.ListItems(c.Context(), ownerID, repository.ItemFilter{
		Category: c.Query("category"),
		Location: c.Query("location"),
		Name:     c.Query("name"),
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}

	out := dto.ItemListResponse{
		Items:  make([]dto.ItemResponse, 0, len(items)),
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	for _, it := range items {
		out.Items = append(out.Items, toItemResponse(it))
	}
	return c.JSON(out)
}

// Upsert godoc
// @Summary      Crear item o fusionar cantidades
// @Description  Si ya existe un item con el mismo nombre (case-insensitive) y
//               ubicación, las cantidades se suman en lugar de crear un duplicado.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertItemRequest  true  "name, quantity (>=1), category, location, idempotency_key"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *InventoryHandler) Upsert(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	var in dto.UpsertItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	id, err := h.uc.UpsertItem(c.Context(), ownerID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// GetByID godoc
// @Summary      Obtener item por id
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del item"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	it, err := h.uc.GetItem(c.Context(), ownerID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toItemResponse(it))
}

// Update godoc
// @Summary      Editar item (valores absolutos)
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del item"
// @Param        body  body  dto.UpdateItemRequest  true  "campos a editar; quantity es absoluto (>=0)"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateItem(c.Context(), ownerID, c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "item actualizado"})
}

// Delete godoc
// @Summary      Eliminar item
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del item"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if err := h.uc.DeleteItem(c.Context(), ownerID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "item eliminado"})
}

// ImportCSV godoc
// @Summary      Importar inventario desde CSV
// @Description  Acepta el CSV crudo en el body (o multipart "file"). Cabecera:
//               Item Name,Quantity,Category,Location. Filas inválidas se omiten.
// @Tags         items
// @Security     Bearer
// @Accept       plain
// @Produce      json
// @Success      200  {object}  dto.ImportSummary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/import/csv [post]
func (h *InventoryHandler) ImportCSV(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)

	body := c.Body()
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "archivo ilegible"})
		}
		defer f.Close()
		buf := new(bytes.Buffer)
		if _, err := buf.ReadFrom(f); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "archivo ilegible"})
		}
		body = buf.Bytes()
	}

	rows, skipped, err := report.ParseCSV(bytes.NewReader(body))
	if err != nil {
		return respondError(c, err)
	}
	summary, err := h.uc.BulkImport(c.Context(), ownerID, rows, entity.ActionBulkImport)
	if err != nil {
		return respondError(c, err)
	}
	summary.Skipped += skipped
	return c.JSON(summary)
}
