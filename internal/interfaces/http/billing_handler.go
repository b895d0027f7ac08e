package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Repuestos-api/internal/application/billing"
	"github.com/jhoicas/Repuestos-api/internal/application/dto"
)

// BillingHandler facturas, sus documentos y el borrador de la sesión.
type BillingHandler struct {
	uc    *billing.BillingUseCase
	draft *billing.DraftUseCase
}

// NewBillingHandler construye el handler.
func NewBillingHandler(uc *billing.BillingUseCase, draft *billing.DraftUseCase) *BillingHandler {
	return &BillingHandler{uc: uc, draft: draft}
}

// List godoc
// @Summary      Listar facturas
// @Tags         billing
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BillResponse
// @Router       /api/billing [get]
func (h *BillingHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura con sus líneas
// @Tags         billing
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la factura"
// @Success      200  {object}  dto.BillDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/billing/{id} [get]
func (h *BillingHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Items godoc
// @Summary      Líneas de una factura
// @Tags         billing
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la factura"
// @Success      200  {array}   dto.BillItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/billing/{id}/items [get]
func (h *BillingHandler) Items(c *fiber.Ctx) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Items(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear factura
// @Description  Registra cabecera y líneas y descuenta el stock de los repuestos vendidos.
// @Tags         billing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBillRequest  true  "Cabecera y líneas"
// @Success      201   {object}  dto.BillDetailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/billing [post]
func (h *BillingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBillRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar factura
// @Tags         billing
// @Security     Bearer
// @Param        id   path  int  true  "ID de la factura"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/billing/{id} [delete]
func (h *BillingHandler) Delete(c *fiber.Ctx) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Print godoc
// @Summary      Factura imprimible (HTML)
// @Tags         billing
// @Security     Bearer
// @Produce      html
// @Param        id   path  int  true  "ID de la factura"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/billing/{id}/print [get]
func (h *BillingHandler) Print(c *fiber.Ctx) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	html, err := h.uc.Print(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(html)
}

// PDF godoc
// @Summary      Factura en PDF
// @Tags         billing
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la factura"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/billing/{id}/pdf [get]
func (h *BillingHandler) PDF(c *fiber.Ctx) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, name, err := h.uc.PDF(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(out)
}

// Export godoc
// @Summary      Exportar listado de facturas
// @Tags         billing
// @Security     Bearer
// @Produce      octet-stream
// @Param        format  query  string  true  "csv, xlsx, pdf o print"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/billing/export [get]
func (h *BillingHandler) Export(c *fiber.Ctx) error {
	f, err := h.uc.Export(c.UserContext(), c.Query("format"))
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, f)
}

// ── Borrador por sesión ──────────────────────────────────────────────────────

// Draft godoc
// @Summary      Borrador de factura de la sesión
// @Tags         billing
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DraftBillResponse
// @Router       /api/billing/draft [get]
func (h *BillingHandler) Draft(c *fiber.Ctx) error {
	out, err := h.draft.Get(c.UserContext(), GetSessionID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddDraftItem godoc
// @Summary      Agregar línea al borrador
// @Tags         billing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BillItemRequest  true  "Línea"
// @Success      200   {object}  dto.DraftBillResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/billing/draft/items [post]
func (h *BillingHandler) AddDraftItem(c *fiber.Ctx) error {
	var in dto.BillItemRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.draft.AddItem(c.UserContext(), GetSessionID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ClearDraft godoc
// @Summary      Descartar borrador
// @Tags         billing
// @Security     Bearer
// @Success      204
// @Router       /api/billing/draft [delete]
func (h *BillingHandler) ClearDraft(c *fiber.Ctx) error {
	if err := h.draft.Clear(c.UserContext(), GetSessionID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ConfirmDraft godoc
// @Summary      Confirmar borrador
// @Description  Crea la factura con las líneas del borrador y lo limpia.
// @Tags         billing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConfirmDraftRequest  true  "Cabecera"
// @Success      201   {object}  dto.BillDetailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/billing/draft/confirm [post]
func (h *BillingHandler) ConfirmDraft(c *fiber.Ctx) error {
	var in dto.ConfirmDraftRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.draft.Confirm(c.UserContext(), GetSessionID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
