package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/retail-pro/internal/application/usecase"
)

// StockHandler consultas de stock por sucursal.
type StockHandler struct {
	uc *usecase.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *usecase.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// ListByBranch godoc
// @Summary      Stock de una sucursal
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        branch_id  query  string  false  "sucursal (los empleados ven la suya)"
// @Success      200  {array}  dto.StockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) ListByBranch(c *fiber.Ctx) error {
	stocks, err := h.uc.ListByBranch(GetActor(c), c.Query("branch_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stocks)
}

// Get godoc
// @Summary      Stock de un producto en una sucursal
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        branch_id   path  string  true  "sucursal"
// @Param        product_id  path  string  true  "producto"
// @Success      200  {object}  dto.StockResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/stock/{branch_id}/{product_id} [get]
func (h *StockHandler) Get(c *fiber.Ctx) error {
	stock, err := h.uc.Get(GetActor(c), c.Params("branch_id"), c.Params("product_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stock)
}
