package repository

import (
	"context"

	"github.com/jhoicas/terraflow-api/internal/domain/entity"
)

// UserFilter criterios de listado para la administración de usuarios.
type UserFilter struct {
	Role   string // vacío = todos
	Search string // coincide en full_name, email o business_name (sin distinguir mayúsculas)
	Limit  int
	Offset int
}

// UserRepository define el puerto de persistencia para User (DIP).
//
// Create devuelve domain.ErrEmailAlreadyExists ante violación de unicidad del email
// y domain.ErrStorageNotInitialized si la tabla users no existe.
// Las búsquedas devuelven (nil, nil) cuando no hay fila.
// Los métodos de mutación por ID devuelven domain.ErrNotFound si no afectan ninguna fila.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, filter UserFilter) ([]*entity.User, int, error)
	UpdateStatus(ctx context.Context, id int64, active bool) error
	UpdateRole(ctx context.Context, id int64, role string) error
	Delete(ctx context.Context, id int64) error
}
