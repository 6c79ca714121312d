package repository

import (
	"context"

	"github.com/jhoicas/terraflow-api/internal/domain/entity"
)

// ProductFilter criterios de listado de productos.
type ProductFilter struct {
	Category string
	Limit    int
	Offset   int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Delete(ctx context.Context, id int64) error
}
