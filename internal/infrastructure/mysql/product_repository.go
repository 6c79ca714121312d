package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/terraflow-api/internal/domain/entity"
	"github.com/jhoicas/terraflow-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, description, category, price, unit, stock_quantity, minimum_stock, created_at, updated_at`

// ProductRepo implementación de ProductRepository sobre MySQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (name, description, category, price, unit, stock_quantity, minimum_stock)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.q.ExecContext(ctx, query,
		p.Name, nullIfEmpty(p.Description), nullIfEmpty(p.Category), p.Price, nullIfEmpty(p.Unit),
		p.StockQuantity, p.MinimumStock,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", translate(err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert product: last insert id: %w", err)
	}
	now := time.Now()
	p.ID = id
	p.CreatedAt, p.UpdatedAt = now, now
	return nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", translate(err))
	}
	return p, nil
}

// Update actualiza los campos editables. El caso de uso ya verificó que el producto existe.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET name = ?, description = ?, category = ?, price = ?, unit = ?,
		    stock_quantity = ?, minimum_stock = ?
		WHERE id = ?`
	res, err := r.q.ExecContext(ctx, query,
		p.Name, nullIfEmpty(p.Description), nullIfEmpty(p.Category), p.Price, nullIfEmpty(p.Unit),
		p.StockQuantity, p.MinimumStock, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", translate(err))
	}
	// 0 filas también significa "sin cambios" en MySQL; no se trata como error.
	if _, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	p.UpdatedAt = time.Now()
	return nil
}

// List lista productos ordenados por nombre, opcionalmente por categoría.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE (? = '' OR category = ?)
		ORDER BY name, id
		LIMIT ? OFFSET ?`
	rows, err := r.q.QueryContext(ctx, query, f.Category, f.Category, limitArg(f.Limit), f.Offset)
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
	res, err := r.q.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", translate(err))
	}
	return rowsAffectedOrNotFound(res)
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	var (
		p                           entity.Product
		description, category, unit sql.NullString
	)
	err := row.Scan(&p.ID, &p.Name, &description, &category, &p.Price, &unit,
		&p.StockQuantity, &p.MinimumStock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	p.Description, p.Category, p.Unit = description.String, category.String, unit.String
	return &p, nil
}
