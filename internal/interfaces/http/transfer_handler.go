package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/retail-pro/internal/application/dto"
	"github.com/tu-usuario/retail-pro/internal/application/transfer"
	"github.com/tu-usuario/retail-pro/internal/domain/entity"
	"github.com/tu-usuario/retail-pro/internal/domain/repository"
)

// TransferHandler maneja las transferencias de stock entre sucursales.
type TransferHandler struct {
	uc *transfer.UseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *transfer.UseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create godoc
// @Summary      Crear transferencia
// @Description  Crea una solicitud en estado waiting. El stock no se mueve hasta aceptarla.
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "from_branch_id, to_branch_id, items"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	t, err := h.uc.Create(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransferResponse(t))
}

// Accept godoc
// @Summary      Aceptar transferencia
// @Description  Debita el origen y acredita el destino, todo o nada. Solo desde waiting.
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la transferencia"
// @Success      200  {object}  dto.TransferResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/accept [post]
func (h *TransferHandler) Accept(c *fiber.Ctx) error {
	t, err := h.uc.Accept(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransferResponse(t))
}

// Reject godoc
// @Summary      Rechazar transferencia
// @Description  Marca la transferencia como rejected sin tocar stock. Solo desde waiting.
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la transferencia"
// @Param        body  body  dto.RejectTransferRequest  true  "reason"
// @Success      200   {object}  dto.TransferResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/reject [post]
func (h *TransferHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	t, err := h.uc.Reject(c.Context(), GetActor(c), c.Params("id"), in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransferResponse(t))
}

// GetByID godoc
// @Summary      Obtener transferencia
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la transferencia"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [get]
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	t, err := h.uc.GetByID(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransferResponse(t))
}

// List godoc
// @Summary      Listar transferencias
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        from_branch_id  query  string  false  "sucursal origen"
// @Param        to_branch_id    query  string  false  "sucursal destino"
// @Param        status          query  string  false  "waiting | done | rejected"
// @Param        start_date      query  string  false  "fecha mínima (RFC3339 o 2006-01-02)"
// @Param        end_date        query  string  false  "fecha máxima"
// @Success      200  {array}  dto.TransferResponse
// @Router       /api/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	filter := repository.TransferFilter{
		FromBranchID: c.Query("from_branch_id"),
		ToBranchID:   c.Query("to_branch_id"),
		Status:       c.Query("status"),
		StartDate:    parseDateQuery(c.Query("start_date")),
		EndDate:      parseDateQuery(c.Query("end_date")),
	}
	list, err := h.uc.List(c.Context(), GetActor(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTransferResponse(t))
	}
	return c.JSON(out)
}

func toTransferResponse(t *entity.Transfer) dto.TransferResponse {
	items := make([]dto.TransferItemResponse, 0, len(t.Items))
	for _, item := range t.Items {
		items = append(items, dto.TransferItemResponse{
			ID:            item.ID,
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			PurchasePrice: item.PurchasePrice,
			SellingPrice:  item.SellingPrice,
		})
	}
	return dto.TransferResponse{
		ID:           t.ID,
		FromBranchID: t.FromBranchID,
		ToBranchID:   t.ToBranchID,
		Status:       t.Status,
		Comment:      t.Comment,
		RejectReason: t.RejectReason,
		CreatedBy:    t.CreatedBy,
		CreatedAt:    t.CreatedAt,
		ProcessedBy:  t.ProcessedBy,
		ProcessedAt:  t.ProcessedAt,
		Items:        items,
	}
}

// parseDateQuery acepta RFC3339 o fecha corta (2006-01-02); devuelve nil si no parsea.
func parseDateQuery(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t
	}
	return nil
}
