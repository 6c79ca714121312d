package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/terraflow-api/internal/application/dto"
	"github.com/jhoicas/terraflow-api/internal/domain"
	"github.com/jhoicas/terraflow-api/internal/domain/entity"
	"github.com/jhoicas/terraflow-api/internal/domain/repository"
)

const msgProductNotFound = "Product not found"

// ProductUseCase casos de uso CRUD para productos del catálogo.
type ProductUseCase struct {
	repo    repository.ProductRepository
	timeout time.Duration
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, timeout time.Duration) *ProductUseCase {
	return &ProductUseCase{repo: repo, timeout: timeout}
}

// Create crea un nuevo producto. Unit por defecto "unit".
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	product := &entity.Product{
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Category:      strings.TrimSpace(in.Category),
		Price:         in.Price,
		Unit:          strings.TrimSpace(in.Unit),
		StockQuantity: in.StockQuantity,
		MinimumStock:  in.MinimumStock,
	}
	if product.Unit == "" {
		product.Unit = "unit"
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	qctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()
	if err := uc.repo.Create(qctx, product); err != nil {
		return nil, translate(err, msgProductNotFound)
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	qctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()
	product, err := uc.repo.GetByID(qctx, id)
	if err != nil {
		return nil, translate(err, msgProductNotFound)
	}
	if product == nil {
		return nil, domain.NotFound(msgProductNotFound)
	}
	return toProductResponse(product), nil
}

// Update actualiza parcialmente un producto; los campos nil no se modifican.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	qctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()

	product, err := uc.repo.GetByID(qctx, id)
	if err != nil {
		return nil, translate(err, msgProductNotFound)
	}
	if product == nil {
		return nil, domain.NotFound(msgProductNotFound)
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Unit != nil {
		product.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.StockQuantity != nil {
		product.StockQuantity = *in.StockQuantity
	}
	if in.MinimumStock != nil {
		product.MinimumStock = *in.MinimumStock
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(qctx, product); err != nil {
		return nil, translate(err, msgProductNotFound)
	}
	return toProductResponse(product), nil
}

// List lista productos, opcionalmente por categoría, ordenados por nombre.
func (uc *ProductUseCase) List(ctx context.Context, category string, limit, offset int) ([]dto.ProductResponse, error) {
	limit, offset = pageBounds(limit, offset)
	qctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()
	list, err := uc.repo.List(qctx, repository.ProductFilter{
		Category: strings.TrimSpace(category),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, translate(err, msgProductNotFound)
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	qctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()
	return translate(uc.repo.Delete(qctx, id), msgProductNotFound)
}

func validateProduct(p *entity.Product) error {
	switch {
	case p.Name == "":
		return domain.Validation("Product name is required")
	case p.Price.IsNegative():
		return domain.Validation("Price must be zero or positive")
	case p.StockQuantity < 0 || p.MinimumStock < 0:
		return domain.Validation("Stock quantities must be zero or positive")
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		Price:         p.Price,
		Unit:          p.Unit,
		StockQuantity: p.StockQuantity,
		MinimumStock:  p.MinimumStock,
		StockStatus:   p.StockStatus(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
