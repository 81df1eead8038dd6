package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/retail-pro/internal/application/dto"
	"github.com/tu-usuario/retail-pro/internal/application/income"
)

// IncomeHandler maneja las recepciones de mercadería.
type IncomeHandler struct {
	uc *income.UseCase
}

// NewIncomeHandler construye el handler.
func NewIncomeHandler(uc *income.UseCase) *IncomeHandler {
	return &IncomeHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar recepción de mercadería
// @Description  Acredita el stock de la sucursal y actualiza los precios de referencia.
// @Tags         incomes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateIncomeRequest  true  "branch_id, items"
// @Success      201   {object}  entity.Income
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/incomes [post]
func (h *IncomeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIncomeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inc, err := h.uc.CreateIncome(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inc)
}

// List godoc
// @Summary      Listar recepciones de una sucursal
// @Tags         incomes
// @Security     Bearer
// @Produce      json
// @Param        branch_id  query  string  false  "sucursal (los empleados ven la suya)"
// @Success      200  {array}  entity.Income
// @Router       /api/incomes [get]
func (h *IncomeHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), GetActor(c), c.Query("branch_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
