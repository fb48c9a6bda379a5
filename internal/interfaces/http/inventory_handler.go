package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-ledger/internal/application/dto"
	"github.com/jhoicas/crm-ledger/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP de inventario (protegido).
type InventoryHandler struct {
	svc *inventory.AdjustmentService
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(svc *inventory.AdjustmentService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// Adjust godoc
// @Summary      Ajuste manual de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustmentRequest  true  "item_id, change (delta con signo), reason opcional"
// @Success      201   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	var in dto.AdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.svc.ManualAdjust(c.Context(), ownerID, in.ItemID, in.Change, in.Reason)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AdjustmentResponse{ItemID: in.ItemID, Quantity: result.Quantity})
}

// AvailableStock godoc
// @Summary      Stock disponible de un artículo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id  path  string  true  "ID del artículo"
// @Success      200  {object}  dto.AdjustmentResponse
// @Router       /api/inventory/stock/{item_id} [get]
func (h *InventoryHandler) AvailableStock(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	qty, err := h.svc.AvailableStock(c.Context(), ownerID, c.Params("item_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.AdjustmentResponse{ItemID: c.Params("item_id"), Quantity: qty})
}

// ListStock godoc
// @Summary      Stock actual del owner
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockResponse
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) ListStock(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	page := parsePage(c)
	records, err := h.svc.ListStock(c.Context(), ownerID, page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.StockResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, dto.StockResponse{
			ItemID:    rec.ItemID,
			ItemName:  rec.ItemName,
			Unit:      rec.Unit,
			Quantity:  rec.Quantity,
			UpdatedAt: rec.UpdatedAt,
		})
	}
	return c.JSON(out)
}

// ListLogs godoc
// @Summary      Historial de ajustes de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id  query  string  false  "Filtrar por artículo"
// @Success      200  {array}  dto.InventoryLogResponse
// @Router       /api/inventory/logs [get]
func (h *InventoryHandler) ListLogs(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	page := parsePage(c)
	logs, err := h.svc.ListLogs(c.Context(), ownerID, c.Query("item_id"), page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.InventoryLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.InventoryLogResponse{
			ID:        l.ID,
			ItemID:    l.ItemID,
			ItemName:  l.ItemName,
			Change:    l.Change,
			Reason:    l.Reason,
			RefID:     l.RefID,
			CreatedAt: l.CreatedAt,
		})
	}
	return c.JSON(out)
}
