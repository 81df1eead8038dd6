package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/retail-pro/internal/application/dto"
	"github.com/tu-usuario/retail-pro/internal/application/expense"
	"github.com/tu-usuario/retail-pro/internal/domain/repository"
)

// ExpenseHandler maneja los gastos operativos.
type ExpenseHandler struct {
	uc *expense.UseCase
}

// NewExpenseHandler construye el handler.
func NewExpenseHandler(uc *expense.UseCase) *ExpenseHandler {
	return &ExpenseHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar gasto
// @Description  Alta de gasto operativo; sin sucursal queda como gasto general.
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenseRequest  true  "title, amount, branch_id"
// @Success      201   {object}  entity.Expense
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/expenses [post]
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	exp, err := h.uc.Create(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(exp)
}

// List godoc
// @Summary      Listar gastos
// @Description  Sin fechas devuelve los gastos del día.
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        branch_id   query  string  false  "sucursal (solo admin)"
// @Param        start_date  query  string  false  "fecha mínima"
// @Param        end_date    query  string  false  "fecha máxima"
// @Success      200  {array}  entity.Expense
// @Router       /api/expenses [get]
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	filter := repository.ExpenseFilter{
		BranchID:  c.Query("branch_id"),
		StartDate: parseDateQuery(c.Query("start_date")),
		EndDate:   parseDateQuery(c.Query("end_date")),
	}
	list, err := h.uc.List(c.Context(), GetActor(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Delete godoc
// @Summary      Eliminar gasto
// @Tags         expenses
// @Security     Bearer
// @Param        id  path  string  true  "ID del gasto"
// @Success      204  "No Content"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
