package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/terraflow-api/internal/application/dto"
	"github.com/jhoicas/terraflow-api/internal/application/usecase"
	"github.com/jhoicas/terraflow-api/pkg/logger"
)

// ProductHandler maneja las peticiones HTTP para Product (solo admin).
type ProductHandler struct {
	uc  *usecase.ProductUseCase
	log *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.DataResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, msgInvalidBody)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse{Success: true, Data: out})
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.DataResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "Invalid product id")
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.DataResponse{Success: true, Data: out})
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "Filtrar por categoría"
// @Param        limit     query  int     false  "Límite (default 20, máx 100)"
// @Param        offset    query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.DataResponse
// @Router       /api/admin/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("category"), c.QueryInt("limit", 0), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.DataResponse{Success: true, Data: out})
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.DataResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "Invalid product id")
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, msgInvalidBody)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.DataResponse{Success: true, Data: out})
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "Invalid product id")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Product deleted"})
}
