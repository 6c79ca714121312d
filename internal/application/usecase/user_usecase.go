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

const msgUserNotFound = "User not found"

// UserUseCase administración de cuentas (solo admin).
type UserUseCase struct {
	repo    repository.UserRepository
	timeout time.Duration
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, timeout time.Duration) *UserUseCase {
	return &UserUseCase{repo: repo, timeout: timeout}
}

// List lista cuentas filtrando por rol y texto, más recientes primero.
func (uc *UserUseCase) List(ctx context.Context, in dto.UserListRequest) ([]dto.UserResponse, *dto.PageResponse, error) {
	if in.Role != "" && !entity.ValidRole(in.Role) {
		return nil, nil, domain.Validation("Invalid role filter")
	}
	limit, offset := pageBounds(in.Limit, in.Offset)

	qctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()
	list, total, err := uc.repo.List(qctx, repository.UserFilter{
		Role:   in.Role,
		Search: strings.TrimSpace(in.Search),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, nil, translate(err, msgUserNotFound)
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, toUserResponse(u))
	}
	return items, &dto.PageResponse{Limit: limit, Offset: offset, Total: total}, nil
}

// GetByID obtiene una cuenta por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	qctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()
	u, err := uc.repo.GetByID(qctx, id)
	if err != nil {
		return nil, translate(err, msgUserNotFound)
	}
	if u == nil {
		return nil, domain.NotFound(msgUserNotFound)
	}
	r := toUserResponse(u)
	return &r, nil
}

// SetStatus activa o desactiva una cuenta.
func (uc *UserUseCase) SetStatus(ctx context.Context, id int64, active bool) error {
	qctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()
	return translate(uc.repo.UpdateStatus(qctx, id, active), msgUserNotFound)
}

// FixRole cambia el rol de una cuenta. Único camino para crear admins además del seed.
func (uc *UserUseCase) FixRole(ctx context.Context, id int64, role string) error {
	if !entity.ValidRole(role) {
		return domain.Validation("Invalid role. Must be admin, customer or supplier")
	}
	qctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()
	return translate(uc.repo.UpdateRole(qctx, id, role), msgUserNotFound)
}

// Delete elimina una cuenta por ID.
func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	qctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()
	return translate(uc.repo.Delete(qctx, id), msgUserNotFound)
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:               u.ID,
		Role:             u.Role,
		FullName:         u.FullName,
		Email:            u.Email,
		Mobile:           u.Mobile,
		Address:          u.Address,
		BusinessName:     u.BusinessName,
		BusinessDocument: u.BusinessDocument,
		IsActive:         u.IsActive,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}
