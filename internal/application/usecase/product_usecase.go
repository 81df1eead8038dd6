package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/retail-pro/internal/application/dto"
	"github.com/tu-usuario/retail-pro/internal/domain"
	"github.com/tu-usuario/retail-pro/internal/domain/entity"
	"github.com/tu-usuario/retail-pro/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para el catálogo de productos. El stock
// por sucursal se maneja vía movimientos, nunca por aquí.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo}
}

// Create crea un producto del catálogo.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	if in.PurchasePrice.IsNegative() || in.SalePrice.IsNegative() || in.WholesalePrice.IsNegative() {
		return nil, fmt.Errorf("%w: los precios no admiten negativos", domain.ErrInvalidInput)
	}
	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		Name:           in.Name,
		CategoryID:     in.CategoryID,
		Barcode:        in.Barcode,
		Unit:           in.Unit,
		PurchasePrice:  in.PurchasePrice,
		SalePrice:      in.SalePrice,
		WholesalePrice: in.WholesalePrice,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos paginados.
func (uc *ProductUseCase) List(limit, offset int) ([]*dto.ProductResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	products, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Update actualiza los datos comerciales de un producto.
func (uc *ProductUseCase) Update(id string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	product.Name = in.Name
	product.CategoryID = in.CategoryID
	product.Barcode = in.Barcode
	product.Unit = in.Unit
	product.PurchasePrice = in.PurchasePrice
	product.SalePrice = in.SalePrice
	product.WholesalePrice = in.WholesalePrice
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Search busca productos por nombre parcial o código de barras exacto; lo usa
// la caja para armar la venta.
func (uc *ProductUseCase) Search(query, barcode string, limit int) ([]*dto.ProductResponse, error) {
	if query == "" && barcode == "" {
		return nil, fmt.Errorf("%w: query o barcode requeridos", domain.ErrInvalidInput)
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	products, err := uc.repo.Search(query, barcode, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// CreateCategory crea una categoría del catálogo.
func (uc *ProductUseCase) CreateCategory(name string) (*entity.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	now := time.Now()
	category := &entity.Category{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories lista todas las categorías.
func (uc *ProductUseCase) ListCategories() ([]*entity.Category, error) {
	return uc.categoryRepo.List()
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		CategoryID:     p.CategoryID,
		Barcode:        p.Barcode,
		Unit:           p.Unit,
		PurchasePrice:  p.PurchasePrice,
		SalePrice:      p.SalePrice,
		WholesalePrice: p.WholesalePrice,
	}
}
