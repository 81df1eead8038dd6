package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/retail-pro/internal/application/dto"
	"github.com/tu-usuario/retail-pro/internal/application/returns"
	"github.com/tu-usuario/retail-pro/internal/domain/repository"
)

// ReturnHandler maneja las devoluciones de venta.
type ReturnHandler struct {
	uc *returns.UseCase
}

// NewReturnHandler construye el handler.
func NewReturnHandler(uc *returns.UseCase) *ReturnHandler {
	return &ReturnHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar devolución
// @Description  Devuelve mercadería de una venta: repone stock y, opcionalmente, compensa deuda del cliente.
// @Tags         returns
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReturnRequest  true  "sale_id, type, items, apply_to_debt"
// @Success      201   {object}  dto.ReturnResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/returns [post]
func (h *ReturnHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ret, err := h.uc.CreateReturn(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(returns.ToResponse(ret))
}

// GetByID godoc
// @Summary      Obtener devolución
// @Tags         returns
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la devolución"
// @Success      200  {object}  dto.ReturnResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/returns/{id} [get]
func (h *ReturnHandler) GetByID(c *fiber.Ctx) error {
	ret, err := h.uc.GetByID(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(returns.ToResponse(ret))
}

// List godoc
// @Summary      Listar devoluciones con desglose
// @Description  Incluye la atribución del reembolso a los métodos de pago originales.
// @Tags         returns
// @Security     Bearer
// @Produce      json
// @Param        branch_id   query  string  false  "sucursal (solo admin)"
// @Param        sale_id     query  string  false  "venta"
// @Param        type        query  string  false  "by_receipt | by_item"
// @Param        start_date  query  string  false  "fecha mínima"
// @Param        end_date    query  string  false  "fecha máxima"
// @Success      200  {array}  dto.ReturnResponse
// @Router       /api/returns [get]
func (h *ReturnHandler) List(c *fiber.Ctx) error {
	filter := repository.ReturnFilter{
		SaleID:    c.Query("sale_id"),
		BranchID:  c.Query("branch_id"),
		Type:      c.Query("type"),
		StartDate: parseDateQuery(c.Query("start_date")),
		EndDate:   parseDateQuery(c.Query("end_date")),
	}
	list, err := h.uc.ListWithBreakdowns(c.Context(), GetActor(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
