package pos

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pro/internal/application/dto"
	"github.com/tu-usuario/retail-pro/internal/domain"
	"github.com/tu-usuario/retail-pro/internal/domain/entity"
	"github.com/tu-usuario/retail-pro/internal/domain/repository"
)

// ReceiptLine línea de venta resuelta para el recibo (con nombre de producto).
type ReceiptLine struct {
	ProductName string
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	Discount    decimal.Decimal
	Total       decimal.Decimal
}

// ReceiptPDFGenerator puerto de generación del recibo de venta en PDF.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.Sale, branch *entity.Branch, client *entity.Client, lines []ReceiptLine) ([]byte, error)
}

// PDFUseCase genera el recibo de una venta en PDF.
type PDFUseCase struct {
	saleRepo    repository.SaleRepository
	branchRepo  repository.BranchRepository
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
	generator   ReceiptPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	saleRepo repository.SaleRepository,
	branchRepo repository.BranchRepository,
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	generator ReceiptPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		saleRepo:    saleRepo,
		branchRepo:  branchRepo,
		productRepo: productRepo,
		clientRepo:  clientRepo,
		generator:   generator,
	}
}

// DownloadReceiptPDF recupera la venta con sus líneas, resuelve los nombres de
// producto y genera el recibo. Devuelve los bytes del PDF y el nombre sugerido
// del archivo.
func (uc *PDFUseCase) DownloadReceiptPDF(ctx context.Context, actor dto.Actor, saleID string) (pdfBytes []byte, filename string, err error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener venta: %w", err)
	}
	if !actor.CanAccessBranch(sale.BranchID) {
		return nil, "", domain.ErrForbidden
	}

	branch, err := uc.branchRepo.GetByID(sale.BranchID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener sucursal: %w", err)
	}

	var client *entity.Client
	if sale.ClientID != "" {
		if client, err = uc.clientRepo.GetByID(sale.ClientID); err != nil {
			return nil, "", fmt.Errorf("recibo: obtener cliente: %w", err)
		}
	}

	lines := make([]ReceiptLine, 0, len(sale.Items))
	for _, item := range sale.Items {
		name := item.ProductID
		if product, err := uc.productRepo.GetByID(item.ProductID); err == nil {
			name = product.Name
		}
		lines = append(lines, ReceiptLine{
			ProductName: name,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Discount:    item.Discount,
			Total:       item.Total,
		})
	}

	pdfBytes, err = uc.generator.GenerateReceiptPDF(ctx, sale, branch, client, lines)
	if err != nil {
		return nil, "", err
	}
	return pdfBytes, fmt.Sprintf("recibo-%s.pdf", sale.ID), nil
}
