package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/terraflow-api/internal/domain"
	"github.com/jhoicas/terraflow-api/internal/domain/entity"
	"github.com/jhoicas/terraflow-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, description, category, price, unit, stock_quantity, minimum_stock, created_at, updated_at`

// ProductRepo implementación de ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Acepta pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (name, description, category, price, unit, stock_quantity, minimum_stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		p.Name, nullIfEmpty(p.Description), nullIfEmpty(p.Category), p.Price, nullIfEmpty(p.Unit),
		p.StockQuantity, p.MinimumStock,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", translate(err))
	}
	return nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", translate(err))
	}
	return p, nil
}

// Update actualiza todos los campos editables de un producto.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, category = $4, price = $5, unit = $6,
		    stock_quantity = $7, minimum_stock = $8, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`
	err := r.q.QueryRow(ctx, query,
		p.ID, p.Name, nullIfEmpty(p.Description), nullIfEmpty(p.Category), p.Price, nullIfEmpty(p.Unit),
		p.StockQuantity, p.MinimumStock,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update product: %w", translate(err))
	}
	return nil
}

// List lista productos ordenados por nombre, opcionalmente por categoría.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE ($1::TEXT = '' OR category = $1::TEXT)
		ORDER BY name, id
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, f.Category, limitArg(f.Limit), f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", translate(err))
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", translate(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p                           entity.Product
		description, category, unit *string
	)
	err := row.Scan(&p.ID, &p.Name, &description, &category, &p.Price, &unit,
		&p.StockQuantity, &p.MinimumStock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	p.Description, p.Category, p.Unit = deref(description), deref(category), deref(unit)
	return &p, nil
}
