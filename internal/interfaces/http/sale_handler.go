package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/retail-pro/internal/application/dto"
	"github.com/tu-usuario/retail-pro/internal/application/pos"
	"github.com/tu-usuario/retail-pro/internal/domain/entity"
	"github.com/tu-usuario/retail-pro/internal/domain/repository"
)

// SaleHandler maneja las ventas de caja y la descarga del recibo.
type SaleHandler struct {
	uc    *pos.UseCase
	pdfUC *pos.PDFUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *pos.UseCase, pdfUC *pos.PDFUseCase) *SaleHandler {
	return &SaleHandler{uc: uc, pdfUC: pdfUC}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Debita stock por línea y reparte el pago en efectivo/tarjeta/crédito.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "items, paid_cash, paid_card, paid_debt"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sale, err := h.uc.CreateSale(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSaleResponse(sale))
}

// GetByID godoc
// @Summary      Obtener venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.uc.GetByID(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSaleResponse(sale))
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        branch_id   query  string  false  "sucursal (solo admin)"
// @Param        seller_id   query  string  false  "vendedor"
// @Param        client_id   query  string  false  "cliente"
// @Param        start_date  query  string  false  "fecha mínima"
// @Param        end_date    query  string  false  "fecha máxima"
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	filter := repository.SaleFilter{
		BranchID:  c.Query("branch_id"),
		SellerID:  c.Query("seller_id"),
		ClientID:  c.Query("client_id"),
		StartDate: parseDateQuery(c.Query("start_date")),
		EndDate:   parseDateQuery(c.Query("end_date")),
	}
	list, err := h.uc.List(c.Context(), GetActor(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, sale := range list {
		out = append(out, toSaleResponse(sale))
	}
	return c.JSON(out)
}

// DownloadReceipt godoc
// @Summary      Descargar recibo en PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt.pdf [get]
func (h *SaleHandler) DownloadReceipt(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdfUC.DownloadReceiptPDF(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Discount:  item.Discount,
			Total:     item.Total,
		})
	}
	return dto.SaleResponse{
		ID:          s.ID,
		BranchID:    s.BranchID,
		SellerID:    s.SellerID,
		ClientID:    s.ClientID,
		TotalAmount: s.TotalAmount,
		PaidCash:    s.PaidCash,
		PaidCard:    s.PaidCard,
		PaidDebt:    s.PaidDebt,
		PaymentType: s.PaymentType,
		CreatedAt:   s.CreatedAt,
		Items:       items,
	}
}
