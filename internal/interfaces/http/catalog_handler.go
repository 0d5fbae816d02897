package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/invorya-admin/internal/application/catalog"
	"github.com/jhoicas/invorya-admin/internal/application/dto"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
)

// CatalogHandler listados de referencia para los selectores del editor.
type CatalogHandler struct {
	uc *catalog.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// Products godoc
// @Summary      Listar productos con precio canónico
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int     false  "Límite (máx. 100)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Param        search  query  string  false  "Nombre o SKU"
// @Success      200  {object}  dto.ProductListResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/catalog/products [get]
func (h *CatalogHandler) Products(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := bindQuery(c, &page); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Products(c.UserContext(), GetSession(c), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Customers godoc
// @Summary      Listar clientes
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int     false  "Límite (máx. 100)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Param        search  query  string  false  "Nombre o NIT"
// @Success      200  {object}  dto.PartyListResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/catalog/customers [get]
func (h *CatalogHandler) Customers(c *fiber.Ctx) error {
	return h.parties(c, entity.PartyCustomer)
}

// Suppliers godoc
// @Summary      Listar proveedores
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int     false  "Límite (máx. 100)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Param        search  query  string  false  "Nombre o NIT"
// @Success      200  {object}  dto.PartyListResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/catalog/suppliers [get]
func (h *CatalogHandler) Suppliers(c *fiber.Ctx) error {
	return h.parties(c, entity.PartySupplier)
}

func (h *CatalogHandler) parties(c *fiber.Ctx, kind entity.PartyKind) error {
	var page dto.PageRequest
	if err := bindQuery(c, &page); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Parties(c.UserContext(), GetSession(c), kind, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
