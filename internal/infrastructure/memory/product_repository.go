package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/terraflow-api/internal/domain"
	"github.com/jhoicas/terraflow-api/internal/domain/entity"
	"github.com/jhoicas/terraflow-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	s *Store
}

// NewProductRepository construye el repositorio sobre el store.
func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{s: s}
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextProd++
	now := r.s.now()
	p.ID = r.s.nextProd
	p.CreatedAt, p.UpdatedAt = now, now
	cp := *p
	r.s.products[cp.ID] = &cp
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	p.UpdatedAt = r.s.now()
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		cp := *p
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	if f.Offset >= len(list) {
		return []*entity.Product{}, nil
	}
	list = list[f.Offset:]
	if f.Limit > 0 && f.Limit < len(list) {
		list = list[:f.Limit]
	}
	return list, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}
