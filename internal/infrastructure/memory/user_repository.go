package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/terraflow-api/internal/domain"
	"github.com/jhoicas/terraflow-api/internal/domain/entity"
	"github.com/jhoicas/terraflow-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct {
	s *Store
}

// NewUserRepository construye el repositorio sobre el store.
func NewUserRepository(s *Store) *UserRepo {
	return &UserRepo{s: s}
}

func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.emails[user.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	r.s.nextUser++
	now := r.s.now()
	user.ID = r.s.nextUser
	user.CreatedAt, user.UpdatedAt = now, now
	cp := *user
	r.s.users[cp.ID] = &cp
	r.s.emails[cp.Email] = cp.ID
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.emails[email]
	if !ok {
		return nil, nil
	}
	cp := *r.s.users[id]
	return &cp, nil
}

func (r *UserRepo) List(ctx context.Context, f repository.UserFilter) ([]*entity.User, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	search := strings.ToLower(f.Search)
	var all []*entity.User
	for _, u := range r.s.users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(u.FullName), search) &&
			!strings.Contains(strings.ToLower(u.Email), search) &&
			!strings.Contains(strings.ToLower(u.BusinessName), search) {
			continue
		}
		cp := *u
		all = append(all, &cp)
	}
	// created_at DESC, id DESC como en SQL
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := len(all)
	if f.Offset >= total {
		return []*entity.User{}, total, nil
	}
	end := total
	if f.Limit > 0 && f.Offset+f.Limit < total {
		end = f.Offset + f.Limit
	}
	return all[f.Offset:end], total, nil
}

func (r *UserRepo) UpdateStatus(ctx context.Context, id int64, active bool) error {
	return r.mutate(ctx, id, func(u *entity.User) { u.IsActive = active })
}

func (r *UserRepo) UpdateRole(ctx context.Context, id int64, role string) error {
	return r.mutate(ctx, id, func(u *entity.User) { u.Role = role })
}

func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(r.s.emails, u.Email)
	delete(r.s.users, id)
	return nil
}

func (r *UserRepo) mutate(ctx context.Context, id int64, fn func(*entity.User)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	fn(u)
	u.UpdatedAt = r.s.now()
	return nil
}
