package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-ledger/internal/application/billing"
	"github.com/jhoicas/crm-ledger/internal/application/dto"
)

// BillHandler maneja las peticiones HTTP de compras a proveedor (protegido).
type BillHandler struct {
	uc *billing.BillUseCase
}

// NewBillHandler construye el handler.
func NewBillHandler(uc *billing.BillUseCase) *BillHandler {
	return &BillHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar compra
// @Description  La compra suma el stock de cada línea en la misma transacción. No hay
// @Description  borradores de compra: el documento queda inmutable al crearse.
// @Tags         bills
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBillRequest  true  "vendor_id y lines requeridos"
// @Success      201  {object}  dto.BillResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/bills [post]
func (h *BillHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBillRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	bill, err := h.uc.Create(c.Context(), GetOwnerID(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(bill)
}

// GetByID godoc
// @Summary      Obtener compra con líneas
// @Tags         bills
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la compra"
// @Success      200  {object}  dto.BillResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bills/{id} [get]
func (h *BillHandler) GetByID(c *fiber.Ctx) error {
	bill, err := h.uc.GetByID(c.Context(), GetOwnerID(c), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(bill)
}

// List godoc
// @Summary      Listar compras del owner
// @Tags         bills
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Máximo de resultados (default 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.BillResponse
// @Router       /api/bills [get]
func (h *BillHandler) List(c *fiber.Ctx) error {
	page := parsePage(c)
	bills, err := h.uc.List(c.Context(), GetOwnerID(c), page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(bills)
}

// Delete godoc
// @Summary      Eliminar compra
// @Description  Revierte el stock que la compra había sumado, en la misma transacción.
// @Tags         bills
// @Security     Bearer
// @Param        id  path  string  true  "ID de la compra"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bills/{id} [delete]
func (h *BillHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetOwnerID(c), c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
