package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/application/usecase"
)

// CenterHandler maneja las peticiones HTTP para Center (protegido).
type CenterHandler struct {
	uc *usecase.CenterUseCase
}

// NewCenterHandler construye el handler.
func NewCenterHandler(uc *usecase.CenterUseCase) *CenterHandler {
	return &CenterHandler{uc: uc}
}

// Create godoc
// @Summary      Crear centro
// @Tags         centers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCenterRequest  true  "Datos del centro"
// @Success      201   {object}  dto.CenterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/centers [post]
func (h *CenterHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCenterRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if strings.TrimSpace(in.Name) == "" {
		return badRequest(c, "VALIDATION", "name es requerido")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener centro por ID
// @Tags         centers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del centro"
// @Success      200  {object}  dto.CenterResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/centers/{id} [get]
func (h *CenterHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "centro no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar centros
// @Tags         centers
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.CenterListResponse
// @Router       /api/centers [get]
func (h *CenterHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.uc.List(c.UserContext(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar centro
// @Tags         centers
// @Security     Bearer
// @Param        id   path  string  true  "ID del centro"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/centers/{id} [delete]
func (h *CenterHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddFixedCost godoc
// @Summary      Agregar costo fijo
// @Tags         centers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del centro"
// @Param        body  body  dto.AddFixedCostRequest  true  "Costo fijo"
// @Success      200   {object}  dto.CenterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/centers/{id}/costs [post]
func (h *CenterHandler) AddFixedCost(c *fiber.Ctx) error {
	var in dto.AddFixedCostRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if strings.TrimSpace(in.Name) == "" {
		return badRequest(c, "VALIDATION", "name es requerido")
	}
	out, err := h.uc.AddFixedCost(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
