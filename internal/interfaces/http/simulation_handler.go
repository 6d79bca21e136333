package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/application/simulation"
)

// SimulationHandler maneja las simulaciones Monte Carlo (protegido).
type SimulationHandler struct {
	uc *simulation.UseCase
}

// NewSimulationHandler construye el handler.
func NewSimulationHandler(uc *simulation.UseCase) *SimulationHandler {
	return &SimulationHandler{uc: uc}
}

// SimulateProduct godoc
// @Summary      Simular costos de un producto
// @Description  Cada corrida muestrea los costos del plan y devuelve la métrica (variable_cost, storage_cost o eoq).
// @Tags         simulations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.SimulateProductRequest  true  "Plan de costos"
// @Success      201   {object}  dto.SimulationRunResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/simulations [post]
func (h *SimulationHandler) SimulateProduct(c *fiber.Ctx) error {
	var in dto.SimulateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.SimulateProduct(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SimulateCenter godoc
// @Summary      Simular costo fijo total de un centro
// @Tags         simulations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del centro"
// @Param        body  body  dto.SimulateCenterRequest  false  "Parámetros"
// @Success      201   {object}  dto.SimulationRunResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/centers/{id}/simulations [post]
func (h *SimulationHandler) SimulateCenter(c *fiber.Ctx) error {
	var in dto.SimulateCenterRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "INVALID_BODY", "cuerpo inválido")
		}
	}
	out, err := h.uc.SimulateCenter(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener simulación con sus muestras
// @Tags         simulations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la simulación"
// @Success      200  {object}  dto.SimulationRunResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/simulations/{id} [get]
func (h *SimulationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetRun(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "simulación no encontrada")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar simulaciones
// @Tags         simulations
// @Security     Bearer
// @Produce      json
// @Param        subject_id  query  string  false  "ID del producto o centro"
// @Param        limit       query  int     false  "Límite"   default(20)
// @Param        offset      query  int     false  "Offset"   default(0)
// @Success      200         {object}  dto.SimulationRunListResponse
// @Router       /api/simulations [get]
func (h *SimulationHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.uc.ListRuns(c.UserContext(), c.Query("subject_id"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Descargar reporte PDF de una simulación
// @Tags         simulations
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la simulación"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/simulations/{id}/report [get]
func (h *SimulationHandler) Report(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.RunReport(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
