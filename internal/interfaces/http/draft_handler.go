package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/invorya-admin/internal/application/dto"
	"github.com/jhoicas/invorya-admin/internal/application/editor"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
)

// DraftHandler borradores de facturas, compras y cotizaciones.
// Cada respuesta trae el borrador completo con los totales recalculados.
type DraftHandler struct {
	uc *editor.EditorUseCase
}

// NewDraftHandler construye el handler.
func NewDraftHandler(uc *editor.EditorUseCase) *DraftHandler {
	return &DraftHandler{uc: uc}
}

// Open godoc
// @Summary      Abrir borrador (nuevo o edición de un documento existente)
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenDraftRequest  true  "Tipo y documento a editar"
// @Success      201   {object}  dto.DraftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/drafts [post]
func (h *DraftHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenDraftRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Open(c.UserContext(), GetSession(c), entity.DocumentKind(in.Kind), in.DocumentID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener borrador
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      200  {object}  dto.DraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id} [get]
func (h *DraftHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(GetSession(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateHeader godoc
// @Summary      Actualizar cabecera (contraparte, fecha, estado, notas, moneda)
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID del borrador"
// @Param        body  body  dto.HeaderRequest  true  "Cabecera"
// @Success      200   {object}  dto.DraftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/header [put]
func (h *DraftHandler) UpdateHeader(c *fiber.Ctx) error {
	var in dto.HeaderRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateHeader(GetSession(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Agregar línea vacía
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      200  {object}  dto.DraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/items [post]
func (h *DraftHandler) AddItem(c *fiber.Ctx) error {
	out, err := h.uc.AddItem(GetSession(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RemoveItem godoc
// @Summary      Quitar línea (la última nunca se elimina)
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        id     path  string  true  "ID del borrador"
// @Param        index  path  int     true  "Posición de la línea"
// @Success      200  {object}  dto.DraftResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/items/{index} [delete]
func (h *DraftHandler) RemoveItem(c *fiber.Ctx) error {
	index, ok := itemIndex(c)
	if !ok {
		return invalidIndex(c)
	}
	out, err := h.uc.RemoveItem(GetSession(c), c.Params("id"), index)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SelectProduct godoc
// @Summary      Seleccionar producto de la línea (toma el precio del catálogo)
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id     path  string                     true  "ID del borrador"
// @Param        index  path  int                        true  "Posición de la línea"
// @Param        body   body  dto.SelectProductRequest   true  "Producto; vacío limpia la selección"
// @Success      200  {object}  dto.DraftResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/items/{index}/product [put]
func (h *DraftHandler) SelectProduct(c *fiber.Ctx) error {
	index, ok := itemIndex(c)
	if !ok {
		return invalidIndex(c)
	}
	var in dto.SelectProductRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.SelectProduct(c.UserContext(), GetSession(c), c.Params("id"), index, in.ProductID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetQuantity godoc
// @Summary      Cambiar cantidad (entradas inválidas se corrigen a 1)
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id     path  string                  true  "ID del borrador"
// @Param        index  path  int                     true  "Posición de la línea"
// @Param        body   body  dto.SetQuantityRequest  true  "Cantidad como número o texto"
// @Success      200  {object}  dto.DraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/items/{index}/quantity [put]
func (h *DraftHandler) SetQuantity(c *fiber.Ctx) error {
	index, ok := itemIndex(c)
	if !ok {
		return invalidIndex(c)
	}
	var in dto.SetQuantityRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.SetQuantity(GetSession(c), c.Params("id"), index, string(in.Quantity))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetUnitPrice godoc
// @Summary      Cambiar precio unitario (entradas inválidas se corrigen a 0)
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id     path  string                   true  "ID del borrador"
// @Param        index  path  int                      true  "Posición de la línea"
// @Param        body   body  dto.SetUnitPriceRequest  true  "Precio como número o texto"
// @Success      200  {object}  dto.DraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/items/{index}/price [put]
func (h *DraftHandler) SetUnitPrice(c *fiber.Ctx) error {
	index, ok := itemIndex(c)
	if !ok {
		return invalidIndex(c)
	}
	var in dto.SetUnitPriceRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.SetUnitPrice(GetSession(c), c.Params("id"), index, string(in.UnitPrice))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Validar y guardar el borrador
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/submit [post]
func (h *DraftHandler) Submit(c *fiber.Ctx) error {
	out, err := h.uc.Submit(c.UserContext(), GetSession(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Descartar el borrador sin guardar
// @Tags         drafts
// @Security     Bearer
// @Param        id   path  string  true  "ID del borrador"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id} [delete]
func (h *DraftHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(GetSession(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func itemIndex(c *fiber.Ctx) (int, bool) {
	index, err := c.ParamsInt("index")
	if err != nil {
		return 0, false
	}
	return index, true
}

func invalidIndex(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INDEX", Message: "index debe ser un entero"})
}
