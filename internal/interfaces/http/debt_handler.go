package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/retail-pro/internal/application/debt"
	"github.com/tu-usuario/retail-pro/internal/application/dto"
	"github.com/tu-usuario/retail-pro/internal/domain/entity"
)

// DebtHandler maneja el libro de deudas: pagos y consultas por cliente.
type DebtHandler struct {
	uc *debt.UseCase
}

// NewDebtHandler construye el handler.
func NewDebtHandler(uc *debt.UseCase) *DebtHandler {
	return &DebtHandler{uc: uc}
}

// Pay godoc
// @Summary      Registrar pago de deuda
// @Description  Aplica el pago FIFO sobre las deudas abiertas del cliente, o sobre una deuda puntual si viene debt_id. Los sobrepagos se recortan al saldo.
// @Tags         debts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PayDebtRequest  true  "client_id, amount, payment_type"
// @Success      201   {object}  dto.DebtPaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/debts/pay [post]
func (h *DebtHandler) Pay(c *fiber.Ctx) error {
	var in dto.PayDebtRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	payment, err := h.uc.PayDebt(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toDebtPaymentResponse(payment))
}

// ListByClient godoc
// @Summary      Deudas de un cliente
// @Tags         debts
// @Security     Bearer
// @Produce      json
// @Param        client_id  path  string  true  "ID del cliente"
// @Success      200  {array}  dto.DebtResponse
// @Router       /api/debts/client/{client_id} [get]
func (h *DebtHandler) ListByClient(c *fiber.Ctx) error {
	debts, err := h.uc.ListByClient(c.Context(), c.Params("client_id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.DebtResponse, 0, len(debts))
	for _, d := range debts {
		out = append(out, dto.DebtResponse{
			ID:          d.ID,
			ClientID:    d.ClientID,
			SaleID:      d.SaleID,
			Amount:      d.Amount,
			Paid:        d.Paid,
			Outstanding: d.Outstanding(),
			CreatedAt:   d.CreatedAt,
		})
	}
	return c.JSON(out)
}

// ListPayments godoc
// @Summary      Pagos registrados de un cliente
// @Tags         debts
// @Security     Bearer
// @Produce      json
// @Param        client_id  path  string  true  "ID del cliente"
// @Success      200  {array}  dto.DebtPaymentResponse
// @Router       /api/debts/client/{client_id}/payments [get]
func (h *DebtHandler) ListPayments(c *fiber.Ctx) error {
	payments, err := h.uc.ListPayments(c.Context(), c.Params("client_id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.DebtPaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toDebtPaymentResponse(p))
	}
	return c.JSON(out)
}

func toDebtPaymentResponse(p *entity.DebtPayment) dto.DebtPaymentResponse {
	return dto.DebtPaymentResponse{
		ID:          p.ID,
		ClientID:    p.ClientID,
		DebtID:      p.DebtID,
		BranchID:    p.BranchID,
		Amount:      p.Amount,
		PaymentType: p.PaymentType,
		ProcessedBy: p.ProcessedBy,
		CreatedAt:   p.CreatedAt,
	}
}
