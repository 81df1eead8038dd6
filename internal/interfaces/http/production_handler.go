package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/retail-pro/internal/application/dto"
	"github.com/tu-usuario/retail-pro/internal/application/production"
	"github.com/tu-usuario/retail-pro/internal/domain/repository"
)

// ProductionHandler maneja los encargos del taller.
type ProductionHandler struct {
	uc *production.UseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *production.UseCase) *ProductionHandler {
	return &ProductionHandler{uc: uc}
}

// CreateOrder godoc
// @Summary      Registrar encargo de producción
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductionOrderRequest  true  "title, amount, customer_name"
// @Success      201   {object}  entity.ProductionOrder
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/production/orders [post]
func (h *ProductionHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.CreateProductionOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.CreateOrder(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// UpdateOrder godoc
// @Summary      Actualizar encargo (parcial)
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del encargo"
// @Param        body  body  dto.UpdateProductionOrderRequest  true  "campos a cambiar"
// @Success      200   {object}  entity.ProductionOrder
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/production/orders/{id} [put]
func (h *ProductionHandler) UpdateOrder(c *fiber.Ctx) error {
	var in dto.UpdateProductionOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.UpdateOrder(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// GetOrder godoc
// @Summary      Obtener encargo con materiales y pagos
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del encargo"
// @Success      200  {object}  entity.ProductionOrder
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production/orders/{id} [get]
func (h *ProductionHandler) GetOrder(c *fiber.Ctx) error {
	order, err := h.uc.GetOrder(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// ListOrders godoc
// @Summary      Listar encargos
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.ProductionOrder
// @Router       /api/production/orders [get]
func (h *ProductionHandler) ListOrders(c *fiber.Ctx) error {
	list, err := h.uc.ListOrders(c.Context(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// AddMaterial godoc
// @Summary      Consumir material del taller
// @Description  Debita el stock del taller y registra el material en el encargo.
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del encargo"
// @Param        body  body  dto.AddProductionMaterialRequest  true  "product_id, quantity, unit_price"
// @Success      201   {object}  entity.ProductionMaterial
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/production/orders/{id}/materials [post]
func (h *ProductionHandler) AddMaterial(c *fiber.Ctx) error {
	var in dto.AddProductionMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	material, err := h.uc.AddMaterial(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(material)
}

// AddPayment godoc
// @Summary      Registrar pago a empleado por un encargo
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del encargo"
// @Param        body  body  dto.AddProductionPaymentRequest  true  "employee_id, amount, note"
// @Success      201   {object}  entity.ProductionPayment
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/production/orders/{id}/payments [post]
func (h *ProductionHandler) AddPayment(c *fiber.Ctx) error {
	var in dto.AddProductionPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	payment, err := h.uc.AddPayment(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

// CreateExpense godoc
// @Summary      Registrar gasto del taller
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductionExpenseRequest  true  "title, amount, order_id"
// @Success      201   {object}  entity.ProductionExpense
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/production/expenses [post]
func (h *ProductionHandler) CreateExpense(c *fiber.Ctx) error {
	var in dto.CreateProductionExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	exp, err := h.uc.CreateExpense(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(exp)
}

// ListExpenses godoc
// @Summary      Listar gastos del taller
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "fecha mínima"
// @Param        end_date    query  string  false  "fecha máxima"
// @Success      200  {array}  entity.ProductionExpense
// @Router       /api/production/expenses [get]
func (h *ProductionHandler) ListExpenses(c *fiber.Ctx) error {
	filter := repository.ExpenseFilter{
		StartDate: parseDateQuery(c.Query("start_date")),
		EndDate:   parseDateQuery(c.Query("end_date")),
	}
	list, err := h.uc.ListExpenses(c.Context(), GetActor(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// WorkshopStock godoc
// @Summary      Stock disponible en el taller
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Stock
// @Router       /api/production/stock [get]
func (h *ProductionHandler) WorkshopStock(c *fiber.Ctx) error {
	list, err := h.uc.WorkshopStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
